package service

import (
	"fmt"
	"strings"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/questions/repository"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/random"
)

// QuestionService доступ к банку вопросов: поиск тем и случайный выбор вопросов.
// Данные после загрузки не меняются, поэтому сервис безопасен для параллельного чтения.
type QuestionService struct {
	order  []string
	topics map[string]model.Topic
	rnd    random.Source
}

// NewQuestionService создает новый экземпляр QuestionService
func NewQuestionService(repo *repository.QuestionRepository, rnd random.Source) *QuestionService {
	s := &QuestionService{
		topics: make(map[string]model.Topic),
		rnd:    rnd,
	}
	for _, t := range repo.Topics() {
		key := strings.ToLower(t.Name)
		s.order = append(s.order, key)
		s.topics[key] = t
	}
	return s
}

// TopicNames возвращает имена тем в порядке загрузки
func (s *QuestionService) TopicNames() []string {
	return append([]string(nil), s.order...)
}

// Topic ищет тему без учета регистра
func (s *QuestionService) Topic(name string) (model.Topic, error) {
	topic, ok := s.topics[normalize(name)]
	if !ok {
		return model.Topic{}, fmt.Errorf("topic %q: %w", name, model.ErrTopicNotFound)
	}
	return topic, nil
}

// Summaries возвращает краткую информацию по всем темам
func (s *QuestionService) Summaries() []model.TopicSummary {
	summaries := make([]model.TopicSummary, 0, len(s.order))
	for _, key := range s.order {
		t := s.topics[key]
		summaries = append(summaries, model.TopicSummary{
			Name:          key,
			Description:   t.Description,
			QuestionCount: len(t.Questions),
		})
	}
	return summaries
}

// QuestionsByTopic возвращает вопросы темы в исходном порядке
func (s *QuestionService) QuestionsByTopic(name string) ([]model.Question, error) {
	topic, err := s.Topic(name)
	if err != nil {
		return nil, err
	}
	return topic.Questions, nil
}

// RandomQuestion выбирает случайный вопрос темы
func (s *QuestionService) RandomQuestion(name string) (model.Question, error) {
	questions, err := s.QuestionsByTopic(name)
	if err != nil {
		return model.Question{}, err
	}
	if len(questions) == 0 {
		return model.Question{}, fmt.Errorf("topic %q: %w", name, model.ErrEmptyQuestionPool)
	}
	return questions[s.rnd.Intn(len(questions))], nil
}

// RandomSample выбирает до count различных вопросов из всех тем
func (s *QuestionService) RandomSample(count int) []model.Question {
	var pool []model.Question
	for _, key := range s.order {
		pool = append(pool, s.topics[key].Questions...)
	}
	return random.Sample(s.rnd, pool, count)
}

// QuestionByID ищет вопрос темы по ID
func (s *QuestionService) QuestionByID(name string, id int) (model.Question, error) {
	questions, err := s.QuestionsByTopic(name)
	if err != nil {
		return model.Question{}, err
	}
	for _, q := range questions {
		if q.ID == id {
			return q, nil
		}
	}
	return model.Question{}, fmt.Errorf("question %d in topic %q: %w", id, name, model.ErrQuestionNotFound)
}

// QuestionsByDifficulty возвращает вопросы всех тем с заданной сложностью
func (s *QuestionService) QuestionsByDifficulty(difficulty model.Difficulty) []model.Question {
	var result []model.Question
	for _, key := range s.order {
		for _, q := range s.topics[key].Questions {
			if q.Difficulty == difficulty {
				result = append(result, q)
			}
		}
	}
	return result
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
