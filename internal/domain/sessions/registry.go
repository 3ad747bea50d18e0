package sessions

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/random"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/timer"
)

const (
	DefaultQuestionCount = 5
	DefaultTimeLimit     = 120 * time.Second
)

// TopicSource источник вопросов для новой сессии
type TopicSource interface {
	QuestionsByTopic(name string) ([]model.Question, error)
}

// finished последняя завершенная сессия пользователя
type finished struct {
	tag      string
	answered map[int]bool
}

// Registry хранит активные сессии интервью в памяти, по одной на пользователя.
// Изменяющие операции над сессией выполняются под Lock(userID).
// Обработка событий пользователя целиком выполняется под LockEvents(userID).
type Registry struct {
	questions     TopicSource
	rnd           random.Source
	clock         timer.Clock
	newID         func() string
	questionCount int
	timeLimit     time.Duration

	mu        sync.RWMutex
	sessions  map[int64]*model.InterviewSession
	completed map[int64]finished

	locks  keyedLocks
	events keyedLocks
}

// Option настраивает Registry
type Option func(*Registry)

// WithQuestionCount задает максимальное число вопросов в сессии
func WithQuestionCount(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.questionCount = n
		}
	}
}

// WithTimeLimit задает лимит времени на вопрос
func WithTimeLimit(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeLimit = d
		}
	}
}

// WithClock подменяет часы
func WithClock(c timer.Clock) Option {
	return func(r *Registry) {
		r.clock = c
	}
}

// WithIDGenerator подменяет генератор идентификаторов сессий
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) {
		r.newID = gen
	}
}

// NewRegistry создает пустой реестр сессий
func NewRegistry(questions TopicSource, rnd random.Source, opts ...Option) *Registry {
	r := &Registry{
		questions:     questions,
		rnd:           rnd,
		clock:         timer.SystemClock{},
		newID:         uuid.NewString,
		questionCount: DefaultQuestionCount,
		timeLimit:     DefaultTimeLimit,
		sessions:      make(map[int64]*model.InterviewSession),
		completed:     make(map[int64]finished),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clock возвращает часы реестра
func (r *Registry) Clock() timer.Clock {
	return r.clock
}

// Lock захватывает мьютекс состояния пользователя и возвращает функцию освобождения
func (r *Registry) Lock(userID int64) func() {
	return r.locks.lock(userID)
}

// LockEvents захватывает мьютекс событий пользователя и возвращает функцию освобождения.
// Не пересекается с Lock, поэтому внутри него можно вызывать операции сервиса.
func (r *Registry) LockEvents(userID int64) func() {
	return r.events.lock(userID)
}

// Start создает сессию по теме, заменяя предыдущую сессию пользователя.
// Вызывающий должен держать Lock(userID).
func (r *Registry) Start(userID int64, topic string) (*model.InterviewSession, error) {
	pool, err := r.questions.QuestionsByTopic(topic)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("topic %q: %w", topic, model.ErrEmptyQuestionPool)
	}

	now := r.clock.Now()
	session := &model.InterviewSession{
		ID:                r.newID(),
		UserID:            userID,
		TopicName:         topic,
		Questions:         random.Sample(r.rnd, pool, r.questionCount),
		StartTime:         now,
		QuestionStartTime: now,
		TimeLimit:         r.timeLimit,
	}

	r.mu.Lock()
	r.sessions[userID] = session
	delete(r.completed, userID)
	r.mu.Unlock()

	return session, nil
}

// Get возвращает активную сессию пользователя
func (r *Registry) Get(userID int64) (*model.InterviewSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// Remove удаляет сессию пользователя. Повторный вызов ничего не делает.
func (r *Registry) Remove(userID int64) {
	r.mu.Lock()
	delete(r.sessions, userID)
	r.mu.Unlock()
}

// Complete удаляет завершенную сессию и запоминает ее тег и отвеченные вопросы
func (r *Registry) Complete(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		return
	}
	answered := make(map[int]bool, len(s.Results))
	for _, res := range s.Results {
		answered[res.Question.ID] = true
	}
	r.completed[userID] = finished{tag: s.Tag(), answered: answered}
	delete(r.sessions, userID)
}

// Answered сообщает, был ли вопрос отвечен в последней завершенной сессии с этим тегом
func (r *Registry) Answered(userID int64, tag string, questionID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.completed[userID]
	return ok && f.tag == tag && f.answered[questionID]
}

// Count возвращает число активных сессий
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Active возвращает копии всех активных сессий.
// Каждая копия снимается под мьютексом пользователя, поэтому не видит половину изменения.
func (r *Registry) Active() []model.InterviewSession {
	r.mu.RLock()
	ids := make([]int64, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)

	result := make([]model.InterviewSession, 0, len(ids))
	for _, id := range ids {
		unlock := r.Lock(id)
		if s, ok := r.Get(id); ok {
			result = append(result, s.Snapshot())
		}
		unlock()
	}
	return result
}
