package middleware

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

// Counter учитывает обновления и ошибки обработчиков
type Counter interface {
	Update(kind string)
	HandlerError(kind string)
}

// SessionViewer показывает текущий вопрос интервью пользователя
type SessionViewer interface {
	Current(userID int64) (model.QuestionView, error)
}

// EventLocker выдает мьютекс событий пользователя
type EventLocker interface {
	LockEvents(userID int64) func()
}

// Kind тип обновления для логов и метрик: command, callback, text или other
func Kind(c telebot.Context) string {
	if c.Callback() != nil {
		return "callback"
	}
	msg := c.Message()
	if msg == nil {
		return "other"
	}
	if strings.HasPrefix(msg.Text, "/") {
		return "command"
	}
	return "text"
}

// Logger логирует входящие обновления и ошибки обработчиков.
// Текст сообщения пишется только на уровне Debug: это ответы пользователя.
func Logger(logger *slog.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			attrs := []any{slog.Int("update_id", c.Update().ID), slog.String("kind", Kind(c))}
			if user := c.Sender(); user != nil {
				attrs = append(attrs, slog.Int64("user_id", user.ID), slog.String("username", user.Username))
			}
			if cb := c.Callback(); cb != nil {
				attrs = append(attrs, slog.String("data", cb.Data))
			}
			if msg := c.Message(); msg != nil && c.Callback() == nil {
				logger.Debug("update received", append(attrs, slog.String("text", msg.Text))...)
			} else {
				logger.Debug("update received", attrs...)
			}

			err := next(c)
			if err != nil {
				logger.Error("handler failed", append(attrs, slog.Any("error", err))...)
			}
			return err
		}
	}
}

// Metrics считает обновления по типам и ошибки обработчиков
func Metrics(counter Counter) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			counter.Update(Kind(c))
			err := next(c)
			if err != nil {
				counter.HandlerError("error")
			}
			return err
		}
	}
}

// Serialize обрабатывает события одного пользователя строго по очереди,
// вместе со всеми отправками ответов. События разных пользователей идут параллельно.
func Serialize(locker EventLocker) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}
			unlock := locker.LockEvents(user.ID)
			defer unlock()
			return next(c)
		}
	}
}

// Recover перехватывает панику в обработчике, логирует ее и возвращает как ошибку
func Recover(logger *slog.Logger, counter Counter) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					switch x := r.(type) {
					case error:
						err = fmt.Errorf("panic: %w", x)
					default:
						err = fmt.Errorf("panic: %v", x)
					}
					logger.Error("recovered from panic", slog.String("kind", Kind(c)), slog.Any("error", err))
					if counter != nil {
						counter.HandlerError("panic")
					}
				}
			}()
			return next(c)
		}
	}
}

// DebugUserActions в режиме отладки после обработки отправляет пользователю
// служебное сообщение: кто он, что сделал и в каком он состоянии интервью
func DebugUserActions(enabled bool, sessions SessionViewer) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			err := next(c)
			if !enabled || c.Sender() == nil {
				return err
			}

			user := c.Sender()
			state := "idle"
			if v, cerr := sessions.Current(user.ID); cerr == nil {
				state = fmt.Sprintf("interview %s, question %d/%d, session %s", v.Topic, v.Index+1, v.Total, v.SessionTag)
			}

			var action string
			if cb := c.Callback(); cb != nil {
				action = "Callback: " + cb.Data
			} else if msg := c.Message(); msg != nil {
				action = "Message: " + msg.Text
			} else {
				action = "Unknown action"
			}

			debugMsg := fmt.Sprintf("DEBUG: User: %s (ID: %d), State: %s, Action: %s", user.FirstName, user.ID, state, action)
			if serr := c.Send(debugMsg); serr != nil && err == nil {
				err = fmt.Errorf("failed to send debug message: %w", serr)
			}
			return err
		}
	}
}
