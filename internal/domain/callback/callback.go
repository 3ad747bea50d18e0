package callback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

const sep = ":"

// ErrMalformed данные кнопки не удалось разобрать
var ErrMalformed = errors.New("malformed callback data")

// Intent намерение пользователя, закодированное в данных inline-кнопки
type Intent interface {
	intent()
}

type (
	ShowMenu     struct{}
	ShowHelp     struct{}
	ShowTopics   struct{}
	PracticeMode struct{}
	TestMode     struct{}

	// PracticeTopic новый случайный вопрос темы
	PracticeTopic struct {
		Topic string
	}

	// PracticeAnswer выбор варианта в режиме практики
	PracticeAnswer struct {
		Topic       string
		QuestionID  int
		OptionIndex int
	}

	// StartInterview начать пробное интервью по теме
	StartInterview struct {
		Topic string
	}

	// SelectOption выбор варианта ответа в интервью
	SelectOption struct {
		SessionTag  string
		QuestionID  int
		OptionIndex int
	}

	// SkipQuestion пропуск вопроса интервью
	SkipQuestion struct {
		SessionTag string
		QuestionID int
	}
)

func (ShowMenu) intent()       {}
func (ShowHelp) intent()       {}
func (ShowTopics) intent()     {}
func (PracticeMode) intent()   {}
func (TestMode) intent()       {}
func (PracticeTopic) intent()  {}
func (PracticeAnswer) intent() {}
func (StartInterview) intent() {}
func (SelectOption) intent()   {}
func (SkipQuestion) intent()   {}

// Clean удаляет служебное обрамление telebot ("\f<unique>|") и пробелы
func Clean(data string) string {
	cleaned := strings.TrimSpace(data)
	cleaned = strings.ReplaceAll(cleaned, "\f", "")
	cleaned = strings.ReplaceAll(cleaned, "\\f", "")
	if i := strings.Index(cleaned, "|"); i >= 0 {
		cleaned = cleaned[i+1:]
	}
	return cleaned
}

// Parse разбирает данные кнопки в Intent
func Parse(data string) (Intent, error) {
	cleaned := Clean(data)
	parts := strings.Split(cleaned, sep)

	switch parts[0] {
	case model.MenuKey:
		return exact(parts, ShowMenu{}, cleaned)
	case model.HelpKey:
		return exact(parts, ShowHelp{}, cleaned)
	case model.TopicsKey:
		return exact(parts, ShowTopics{}, cleaned)
	case model.PracticeModeKey:
		return exact(parts, PracticeMode{}, cleaned)
	case model.TestModeKey:
		return exact(parts, TestMode{}, cleaned)
	case model.PracticeTopicKey:
		if len(parts) != 2 || parts[1] == "" {
			return nil, malformed(cleaned)
		}
		return PracticeTopic{Topic: parts[1]}, nil
	case model.StartInterviewKey:
		if len(parts) != 2 || parts[1] == "" {
			return nil, malformed(cleaned)
		}
		return StartInterview{Topic: parts[1]}, nil
	case model.PracticeAnswerKey:
		if len(parts) != 4 || parts[1] == "" {
			return nil, malformed(cleaned)
		}
		ids, err := numbers(parts[2:])
		if err != nil {
			return nil, malformed(cleaned)
		}
		return PracticeAnswer{Topic: parts[1], QuestionID: ids[0], OptionIndex: ids[1]}, nil
	case model.SelectOptionKey:
		if len(parts) != 4 || parts[1] == "" {
			return nil, malformed(cleaned)
		}
		ids, err := numbers(parts[2:])
		if err != nil {
			return nil, malformed(cleaned)
		}
		return SelectOption{SessionTag: parts[1], QuestionID: ids[0], OptionIndex: ids[1]}, nil
	case model.SkipQuestionKey:
		if len(parts) != 3 || parts[1] == "" {
			return nil, malformed(cleaned)
		}
		ids, err := numbers(parts[2:])
		if err != nil {
			return nil, malformed(cleaned)
		}
		return SkipQuestion{SessionTag: parts[1], QuestionID: ids[0]}, nil
	}

	return nil, malformed(cleaned)
}

// Encode кодирует Intent в данные кнопки
func Encode(i Intent) string {
	switch v := i.(type) {
	case ShowMenu:
		return model.MenuKey
	case ShowHelp:
		return model.HelpKey
	case ShowTopics:
		return model.TopicsKey
	case PracticeMode:
		return model.PracticeModeKey
	case TestMode:
		return model.TestModeKey
	case PracticeTopic:
		return join(model.PracticeTopicKey, v.Topic)
	case PracticeAnswer:
		return join(model.PracticeAnswerKey, v.Topic, strconv.Itoa(v.QuestionID), strconv.Itoa(v.OptionIndex))
	case StartInterview:
		return join(model.StartInterviewKey, v.Topic)
	case SelectOption:
		return join(model.SelectOptionKey, v.SessionTag, strconv.Itoa(v.QuestionID), strconv.Itoa(v.OptionIndex))
	case SkipQuestion:
		return join(model.SkipQuestionKey, v.SessionTag, strconv.Itoa(v.QuestionID))
	}
	panic(fmt.Sprintf("callback: unknown intent %T", i))
}

func exact(parts []string, i Intent, raw string) (Intent, error) {
	if len(parts) != 1 {
		return nil, malformed(raw)
	}
	return i, nil
}

func numbers(parts []string) ([]int, error) {
	result := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative value %d", n)
		}
		result[i] = n
	}
	return result, nil
}

func join(parts ...string) string {
	return strings.Join(parts, sep)
}

func malformed(raw string) error {
	return fmt.Errorf("%q: %w", raw, ErrMalformed)
}
