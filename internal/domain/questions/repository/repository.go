package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	"github.com/go-playground/validator/v10"
)

const maxTopicNameLength = 32

// QuestionRepository хранит банк вопросов, загруженный при старте. Данные не меняются.
type QuestionRepository struct {
	topics []model.Topic
}

// NewQuestionRepository загружает темы из файлов <dir>/<name>.json в порядке names
func NewQuestionRepository(dir string, names []string) (*QuestionRepository, error) {
	validate := newValidator()

	topics := make([]model.Topic, 0, len(names))
	for _, name := range names {
		topic, err := loadTopic(filepath.Join(dir, name+".json"), validate)
		if err != nil {
			return nil, fmt.Errorf("failed to load topic %s: %w", name, err)
		}
		if topic.Name == "" {
			topic.Name = name
		}
		topics = append(topics, topic)
	}

	return NewQuestionRepositoryFromTopics(topics...)
}

// NewQuestionRepositoryFromTopics создает репозиторий из уже загруженных тем
func NewQuestionRepositoryFromTopics(topics ...model.Topic) (*QuestionRepository, error) {
	seen := make(map[string]bool, len(topics))
	for _, t := range topics {
		key := strings.ToLower(t.Name)
		if key == "" {
			return nil, fmt.Errorf("topic name is empty")
		}
		if strings.ContainsAny(key, ": |") {
			return nil, fmt.Errorf("topic name %q must not contain spaces, colons or pipes", t.Name)
		}
		// имя темы попадает в данные кнопок, а они ограничены 64 байтами
		if len(key) > maxTopicNameLength {
			return nil, fmt.Errorf("topic name %q is longer than %d bytes", t.Name, maxTopicNameLength)
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate topic %q", t.Name)
		}
		seen[key] = true
	}
	return &QuestionRepository{topics: topics}, nil
}

// Topics возвращает темы в порядке загрузки
func (r *QuestionRepository) Topics() []model.Topic {
	return r.topics
}

func loadTopic(filename string, validate *validator.Validate) (model.Topic, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return model.Topic{}, fmt.Errorf("failed to read question file: %w", err)
	}

	var topic model.Topic
	if err := json.Unmarshal(data, &topic); err != nil {
		return model.Topic{}, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if err := validate.Struct(topic); err != nil {
		return model.Topic{}, fmt.Errorf("invalid question bank %s: %w", filename, err)
	}

	return topic, nil
}

// newValidator создает валидатор с проверками, которые не выражаются тегами
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(questionStructLevel, model.Question{})
	return v
}

// questionStructLevel проверяет согласованность вариантов ответа и номера правильного варианта
func questionStructLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(model.Question)

	switch {
	case len(q.Options) == 0 && q.CorrectOption != nil:
		sl.ReportError(q.CorrectOption, "CorrectOption", "correctOption", "excluded_without_options", "")
	case len(q.Options) > 0 && q.CorrectOption == nil:
		sl.ReportError(q.CorrectOption, "CorrectOption", "correctOption", "required_with_options", "")
	case len(q.Options) > 0 && (*q.CorrectOption < 0 || *q.CorrectOption >= len(q.Options)):
		sl.ReportError(*q.CorrectOption, "CorrectOption", "correctOption", "option_range", "")
	}
}
