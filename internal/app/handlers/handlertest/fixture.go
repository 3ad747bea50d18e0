// Package handlertest собирает сервисы бота в памяти для тестов обработчиков.
package handlertest

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/flow"
	interviewService "github.com/IT-Nick/interview-prep-bot/internal/domain/interview/service"
	msgRepo "github.com/IT-Nick/interview-prep-bot/internal/domain/messages/repository"
	msgService "github.com/IT-Nick/interview-prep-bot/internal/domain/messages/service"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	questionsRepo "github.com/IT-Nick/interview-prep-bot/internal/domain/questions/repository"
	questionsService "github.com/IT-Nick/interview-prep-bot/internal/domain/questions/service"
	resultsRepo "github.com/IT-Nick/interview-prep-bot/internal/domain/results/repository"
	resultsService "github.com/IT-Nick/interview-prep-bot/internal/domain/results/service"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/sessions"
)

// SessionID идентификатор всех сессий фикстуры; Tag == "abcd1234"
const (
	SessionID  = "abcd1234-0000-0000-0000-000000000000"
	SessionTag = "abcd1234"
)

// InOrder источник случайности без перемешивания: вопросы идут в порядке банка
type InOrder struct{}

func (InOrder) Intn(int) int                { return 0 }
func (InOrder) Shuffle(int, func(i, j int)) {}

// Clock управляемые часы
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Fixture набор сервисов с банком из двух тем:
// qa (свободный ответ, затем вопрос с вариантами) и choice (два вопроса с вариантами)
type Fixture struct {
	Questions *questionsService.QuestionService
	Registry  *sessions.Registry
	Interview *interviewService.InterviewService
	Messages  *msgService.MessageService
	Results   *resultsService.ResultService
	Store     *resultsRepo.MemoryRepository
	Flow      *flow.Flow
	Clock     *Clock
	Logger    *slog.Logger
}

func intPtr(i int) *int { return &i }

// Topics банк вопросов фикстуры
func Topics() []model.Topic {
	return []model.Topic{
		{Name: "qa", Description: "QA basics", Questions: []model.Question{
			{ID: 1, Prompt: "What is regression testing?", ReferenceAnswer: "Regression testing verifies existing functionality after changes", Difficulty: model.DifficultyEasy},
			{ID: 2, Prompt: "Which level is the fastest?", ReferenceAnswer: "Unit tests are the fastest", Options: []string{"E2E", "Unit", "Manual"}, CorrectOption: intPtr(1), Difficulty: model.DifficultyMedium},
		}},
		{Name: "choice", Questions: []model.Question{
			{ID: 10, Prompt: "Pick C", ReferenceAnswer: "C", Options: []string{"A", "B", "C"}, CorrectOption: intPtr(2), Difficulty: model.DifficultyEasy},
			{ID: 11, Prompt: "Pick A", ReferenceAnswer: "A", Options: []string{"A", "B", "C"}, CorrectOption: intPtr(0), Difficulty: model.DifficultyHard},
		}},
	}
}

// New собирает фикстуру
func New(t testing.TB, reportPDF bool) *Fixture {
	t.Helper()

	repo, err := questionsRepo.NewQuestionRepositoryFromTopics(Topics()...)
	if err != nil {
		t.Fatalf("failed to build question repository: %v", err)
	}
	texts, err := msgRepo.NewTextRepository("")
	if err != nil {
		t.Fatalf("failed to build text repository: %v", err)
	}

	clock := &Clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	questions := questionsService.NewQuestionService(repo, InOrder{})
	registry := sessions.NewRegistry(questions, InOrder{},
		sessions.WithClock(clock),
		sessions.WithIDGenerator(func() string { return SessionID }),
	)
	messages := msgService.NewMessageService(texts, msgService.Settings{
		QuestionCount: sessions.DefaultQuestionCount,
		TimeLimit:     sessions.DefaultTimeLimit,
	})
	store := resultsRepo.NewMemoryRepository()
	results := resultsService.NewResultService(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &Fixture{
		Questions: questions,
		Registry:  registry,
		Interview: interviewService.NewInterviewService(registry, nil),
		Messages:  messages,
		Results:   results,
		Store:     store,
		Flow:      flow.NewFlow(messages, results, logger, nil, reportPDF),
		Clock:     clock,
		Logger:    logger,
	}
}
