package sessions

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/random"
)

type fakeTopics map[string][]model.Question

func (f fakeTopics) QuestionsByTopic(name string) ([]model.Question, error) {
	qs, ok := f[name]
	if !ok {
		return nil, fmt.Errorf("topic %q: %w", name, model.ErrTopicNotFound)
	}
	return qs, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func questions(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{ID: i + 1, Prompt: fmt.Sprintf("Q%d", i+1), ReferenceAnswer: "A", Difficulty: model.DifficultyEasy}
	}
	return qs
}

func newRegistry(opts ...Option) *Registry {
	topics := fakeTopics{
		"typescript": questions(10),
		"qa":         questions(3),
		"empty":      nil,
	}
	return NewRegistry(topics, random.New(7), opts...)
}

func TestStart_SelectsDistinctQuestions(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := newRegistry(WithClock(fixedClock{now: start}))

	s, err := r.Start(1, "typescript")
	require.NoError(t, err)

	assert.Len(t, s.Questions, DefaultQuestionCount)
	seen := make(map[int]bool)
	for _, q := range s.Questions {
		assert.False(t, seen[q.ID], "question %d repeated", q.ID)
		seen[q.ID] = true
	}
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Empty(t, s.Results)
	assert.Equal(t, start, s.StartTime)
	assert.Equal(t, start, s.QuestionStartTime)
	assert.Equal(t, DefaultTimeLimit, s.TimeLimit)
	assert.NotEmpty(t, s.ID)
}

func TestStart_SmallPoolUsesAllQuestions(t *testing.T) {
	r := newRegistry()

	s, err := r.Start(1, "qa")
	require.NoError(t, err)
	assert.Len(t, s.Questions, 3)
}

func TestStart_Errors(t *testing.T) {
	r := newRegistry()

	_, err := r.Start(1, "golang")
	assert.True(t, errors.Is(err, model.ErrTopicNotFound))

	_, err = r.Start(1, "empty")
	assert.True(t, errors.Is(err, model.ErrEmptyQuestionPool))

	_, ok := r.Get(1)
	assert.False(t, ok)
}

func TestStart_OverwritesExistingSession(t *testing.T) {
	ids := []string{"first-id", "second-id"}
	r := newRegistry(WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	_, err := r.Start(1, "typescript")
	require.NoError(t, err)
	_, err = r.Start(1, "qa")
	require.NoError(t, err)

	s, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, "second-id", s.ID)
	assert.Equal(t, "qa", s.TopicName)
	assert.Equal(t, 1, r.Count())
}

func TestOptions(t *testing.T) {
	r := newRegistry(WithQuestionCount(2), WithTimeLimit(30*time.Second))

	s, err := r.Start(1, "typescript")
	require.NoError(t, err)
	assert.Len(t, s.Questions, 2)
	assert.Equal(t, 30*time.Second, s.TimeLimit)
}

func TestRemove_Idempotent(t *testing.T) {
	r := newRegistry()
	_, err := r.Start(1, "qa")
	require.NoError(t, err)

	r.Remove(1)
	r.Remove(1)

	_, ok := r.Get(1)
	assert.False(t, ok)
	assert.Zero(t, r.Count())
}

func TestActive_ReturnsCopies(t *testing.T) {
	r := newRegistry()
	_, err := r.Start(2, "qa")
	require.NoError(t, err)
	_, err = r.Start(1, "typescript")
	require.NoError(t, err)

	active := r.Active()
	require.Len(t, active, 2)
	assert.Equal(t, int64(1), active[0].UserID)
	assert.Equal(t, int64(2), active[1].UserID)

	active[0].CurrentIndex = 4
	s, _ := r.Get(1)
	assert.Equal(t, 0, s.CurrentIndex)
}

func TestLock_SerializesSameUser(t *testing.T) {
	r := newRegistry()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := r.Lock(1)
			defer unlock()
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Zero(t, r.locks.size(), "idle locks must be released")
}

func TestLock_DifferentUsersIndependent(t *testing.T) {
	r := newRegistry()

	unlock1 := r.Lock(1)
	done := make(chan struct{})
	go func() {
		unlock2 := r.Lock(2)
		unlock2()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock of another user blocked")
	}
	unlock1()
}

func TestLockEvents_IndependentFromStateLock(t *testing.T) {
	r := newRegistry()

	unlockEvents := r.LockEvents(1)
	done := make(chan struct{})
	go func() {
		unlock := r.Lock(1)
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("state lock blocked by event lock")
	}
	unlockEvents()
	assert.Zero(t, r.events.size())
}

func TestComplete_RemembersAnsweredQuestions(t *testing.T) {
	r := newRegistry(WithIDGenerator(func() string { return "abcd-1234-ef56-7890" }))
	s, err := r.Start(1, "qa")
	require.NoError(t, err)
	first := s.Questions[0]
	s.Results = append(s.Results, model.QuestionResult{Question: first})

	r.Complete(1)

	_, ok := r.Get(1)
	assert.False(t, ok)
	assert.True(t, r.Answered(1, "abcd1234", first.ID))
	assert.False(t, r.Answered(1, "ffff0000", first.ID))
	assert.False(t, r.Answered(2, "abcd1234", first.ID))

	_, err = r.Start(1, "qa")
	require.NoError(t, err)
	assert.False(t, r.Answered(1, "abcd1234", first.ID), "new session forgets the previous one")
}
