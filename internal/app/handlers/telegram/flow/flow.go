package flow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/reply"
	interviewService "github.com/IT-Nick/interview-prep-bot/internal/domain/interview/service"
	msgService "github.com/IT-Nick/interview-prep-bot/internal/domain/messages/service"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	resultsService "github.com/IT-Nick/interview-prep-bot/internal/domain/results/service"
)

const saveTimeout = 5 * time.Second

// FailureCounter учитывает несохраненные результаты
type FailureCounter interface {
	ResultSaveFailed()
}

// Flow общая для обработчиков часть: показ шагов интервью, сохранение результатов, ответы на ошибки
type Flow struct {
	messages  *msgService.MessageService
	results   *resultsService.ResultService
	logger    *slog.Logger
	failures  FailureCounter
	reportPDF bool
}

// NewFlow создает новый экземпляр Flow
func NewFlow(
	messages *msgService.MessageService,
	results *resultsService.ResultService,
	logger *slog.Logger,
	failures FailureCounter,
	reportPDF bool,
) *Flow {
	return &Flow{
		messages:  messages,
		results:   results,
		logger:    logger,
		failures:  failures,
		reportPDF: reportPDF,
	}
}

// Messages возвращает сервис сообщений
func (f *Flow) Messages() *msgService.MessageService {
	return f.messages
}

// Begin показывает начало интервью и первый вопрос
func (f *Flow) Begin(c telebot.Context, v model.QuestionView) error {
	return reply.Send(c, f.messages.InterviewStarted(v), f.messages.Question(v))
}

// Step показывает итог ответа и следующий вопрос либо отчет.
// Завершенное интервью сохраняется в историю; ошибка хранилища только логируется.
func (f *Flow) Step(c telebot.Context, step interviewService.Step) error {
	replies := []model.Reply{f.messages.Feedback(step.Resolved)}

	if step.Next != nil {
		replies = append(replies, f.messages.Question(*step.Next))
		return reply.Send(c, replies...)
	}
	if step.Report == nil {
		return reply.Send(c, replies...)
	}

	report := *step.Report
	replies = append(replies, f.messages.Report(report))

	username := ""
	if c.Sender() != nil {
		username = c.Sender().Username
	}
	f.record(report, username)

	if f.reportPDF {
		pdf, err := f.results.ReportPDF(report, username)
		if err != nil {
			f.logger.Error("failed to render pdf report", slog.String("session_id", report.SessionID), slog.Any("error", err))
		} else {
			replies = append(replies, f.messages.ReportDocument(report, pdf))
		}
	}

	return reply.Send(c, replies...)
}

func (f *Flow) record(report model.Report, username string) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if _, err := f.results.Record(ctx, report, username); err != nil {
		f.logger.Error("failed to save interview result",
			slog.Int64("user_id", report.UserID),
			slog.String("session_id", report.SessionID),
			slog.Any("error", err),
		)
		if f.failures != nil {
			f.failures.ResultSaveFailed()
		}
	}
}

// Error сообщает пользователю о восстановимой ошибке интервью.
// Для нажатий кнопок ответ показывается всплывающим уведомлением, состояние не меняется.
// Неизвестные ошибки возвращаются вызывающему.
func (f *Flow) Error(c telebot.Context, err error, options int) error {
	var r model.Reply
	switch {
	case errors.Is(err, model.ErrNoActiveSession):
		r = f.messages.NoSession()
	case errors.Is(err, model.ErrStaleQuestion):
		r = f.messages.StaleQuestion()
	case errors.Is(err, model.ErrDuplicateAnswer):
		r = f.messages.DuplicateAnswer()
	case errors.Is(err, model.ErrInvalidOption):
		r = f.messages.InvalidOption(options)
	default:
		if sendErr := reply.Send(c, f.messages.InternalError()); sendErr != nil {
			f.logger.Error("failed to report internal error", slog.Any("error", sendErr))
		}
		return err
	}

	if c.Callback() != nil {
		return c.Respond(&telebot.CallbackResponse{Text: r.Text})
	}
	return reply.Send(c, r)
}
