package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/telegramtest"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

type countingSink struct {
	updates map[string]int
	errors  map[string]int
}

func newSink() *countingSink {
	return &countingSink{updates: map[string]int{}, errors: map[string]int{}}
}

func (s *countingSink) Update(kind string)       { s.updates[kind]++ }
func (s *countingSink) HandlerError(kind string) { s.errors[kind]++ }

type viewer struct {
	view model.QuestionView
	err  error
}

func (v viewer) Current(int64) (model.QuestionView, error) { return v.view, v.err }

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "command", Kind(telegramtest.NewMessage(1, "/start")))
	assert.Equal(t, "text", Kind(telegramtest.NewMessage(1, "hello")))
	assert.Equal(t, "callback", Kind(telegramtest.NewCallback(1, "menu")))
	assert.Equal(t, "other", Kind(&telegramtest.Context{User: &telebot.User{ID: 1}}))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := Logger(testLogger(&buf))(func(telebot.Context) error { return errors.New("boom") })

	err := handler(telegramtest.NewCallback(7, "opt:abcd1234:1:0"))

	assert.EqualError(t, err, "boom")
	assert.Contains(t, buf.String(), "update received")
	assert.Contains(t, buf.String(), "user_id=7")
	assert.Contains(t, buf.String(), "data=opt:abcd1234:1:0")
	assert.Contains(t, buf.String(), "handler failed")
}

func TestLogger_AnswerTextOnlyAtDebug(t *testing.T) {
	var buf bytes.Buffer
	handler := Logger(testLogger(&buf))(func(telebot.Context) error { return errors.New("boom") })

	require.Error(t, handler(telegramtest.NewMessage(7, "my secret answer")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=DEBUG")
	assert.Contains(t, lines[0], `text="my secret answer"`)
	assert.Contains(t, lines[1], "handler failed")
	assert.Contains(t, lines[1], "user_id=7")
	assert.NotContains(t, lines[1], "my secret answer")

	buf.Reset()
	quiet := slog.New(slog.NewTextHandler(&buf, nil))
	handler = Logger(quiet)(func(telebot.Context) error { return errors.New("boom") })
	require.Error(t, handler(telegramtest.NewMessage(7, "my secret answer")))
	assert.Contains(t, buf.String(), "handler failed")
	assert.NotContains(t, buf.String(), "my secret answer")
}

type eventLocks struct {
	mu     sync.Mutex
	locked []int64
}

func (l *eventLocks) LockEvents(userID int64) func() {
	l.mu.Lock()
	l.locked = append(l.locked, userID)
	return l.mu.Unlock
}

func TestSerialize(t *testing.T) {
	locks := &eventLocks{}
	var inside []int64
	handler := Serialize(locks)(func(c telebot.Context) error {
		if c.Sender() == nil {
			assert.True(t, locks.mu.TryLock(), "update without sender is not serialized")
			locks.mu.Unlock()
			return nil
		}
		assert.False(t, locks.mu.TryLock(), "handler must run under the event lock")
		inside = append(inside, c.Sender().ID)
		return nil
	})

	require.NoError(t, handler(telegramtest.NewMessage(3, "hello")))
	require.NoError(t, handler(telegramtest.NewCallback(4, "menu")))
	require.NoError(t, handler(&telegramtest.Context{}))

	assert.Equal(t, []int64{3, 4}, locks.locked)
	assert.Equal(t, []int64{3, 4}, inside)
	assert.True(t, locks.mu.TryLock(), "lock must be released after the handler")
}

func TestMetrics(t *testing.T) {
	sink := newSink()
	ok := Metrics(sink)(func(telebot.Context) error { return nil })
	failing := Metrics(sink)(func(telebot.Context) error { return errors.New("x") })

	require.NoError(t, ok(telegramtest.NewMessage(1, "/menu")))
	require.Error(t, failing(telegramtest.NewMessage(1, "answer")))

	assert.Equal(t, 1, sink.updates["command"])
	assert.Equal(t, 1, sink.updates["text"])
	assert.Equal(t, 1, sink.errors["error"])
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	sink := newSink()
	handler := Recover(testLogger(&buf), sink)(func(telebot.Context) error { panic("nil map") })

	err := handler(telegramtest.NewMessage(1, "/start"))

	assert.EqualError(t, err, "panic: nil map")
	assert.Contains(t, buf.String(), "recovered from panic")
	assert.Equal(t, 1, sink.errors["panic"])
}

func TestRecover_ErrorValue(t *testing.T) {
	cause := errors.New("cause")
	handler := Recover(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), nil)(func(telebot.Context) error { panic(cause) })

	err := handler(telegramtest.NewMessage(1, "/start"))
	assert.ErrorIs(t, err, cause)
}

func TestDebugUserActions(t *testing.T) {
	next := func(c telebot.Context) error { return c.Send("handled") }

	c := telegramtest.NewMessage(5, "skip")
	v := viewer{view: model.QuestionView{Topic: "qa", Index: 1, Total: 5, SessionTag: "abcd1234"}}
	require.NoError(t, DebugUserActions(true, v)(next)(c))

	texts := c.Texts()
	require.Len(t, texts, 2)
	assert.Equal(t, "DEBUG: User: Test (ID: 5), State: interview qa, question 2/5, session abcd1234, Action: Message: skip", texts[1])

	idle := telegramtest.NewCallback(5, "menu")
	require.NoError(t, DebugUserActions(true, viewer{err: model.ErrNoActiveSession})(next)(idle))
	assert.Contains(t, idle.LastText(), "State: idle, Action: Callback: menu")

	off := telegramtest.NewMessage(5, "hi")
	require.NoError(t, DebugUserActions(false, v)(next)(off))
	assert.Len(t, off.Texts(), 1)
}
