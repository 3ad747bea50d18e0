package callback_handler

import (
	"errors"
	"log/slog"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/flow"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/help_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/menu_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/mock_interview_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/topic_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/topics_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/callback"
	interviewService "github.com/IT-Nick/interview-prep-bot/internal/domain/interview/service"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

const unknownActionText = "Unknown action"

// CallbackHandler разбирает данные inline-кнопок и передает их нужному обработчику
type CallbackHandler struct {
	menu      *menu_handler.MenuHandler
	help      *help_handler.HelpHandler
	topics    *topics_handler.TopicsHandler
	topic     *topic_handler.TopicHandler
	mock      *mock_interview_handler.MockInterviewHandler
	interview *interviewService.InterviewService
	flow      *flow.Flow
	logger    *slog.Logger
}

// NewCallbackHandler возвращает структуру обработчика
func NewCallbackHandler(
	menu *menu_handler.MenuHandler,
	help *help_handler.HelpHandler,
	topics *topics_handler.TopicsHandler,
	topic *topic_handler.TopicHandler,
	mock *mock_interview_handler.MockInterviewHandler,
	interview *interviewService.InterviewService,
	flow *flow.Flow,
	logger *slog.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		menu:      menu,
		help:      help,
		topics:    topics,
		topic:     topic,
		mock:      mock,
		interview: interview,
		flow:      flow,
		logger:    logger,
	}
}

// Handle обрабатывает нажатие кнопки. Неразобранные данные подтверждаются без изменения состояния.
func (h *CallbackHandler) Handle(c telebot.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}

	intent, err := callback.Parse(cb.Data)
	if err != nil {
		h.logger.Debug("malformed callback", slog.String("data", cb.Data), slog.Any("error", err))
		return c.Respond(&telebot.CallbackResponse{Text: unknownActionText})
	}

	switch i := intent.(type) {
	case callback.ShowMenu:
		return h.menu.Handle(c)
	case callback.ShowHelp:
		return h.help.Handle(c)
	case callback.ShowTopics:
		return h.topics.Handle(c)
	case callback.PracticeMode:
		return h.topics.Picker(c, true)
	case callback.TestMode:
		return h.topics.Picker(c, false)
	case callback.PracticeTopic:
		return h.topic.Practice(c, i.Topic)
	case callback.PracticeAnswer:
		return h.topic.Answer(c, i.Topic, i.QuestionID, i.OptionIndex)
	case callback.StartInterview:
		return h.mock.Start(c, i.Topic)
	case callback.SelectOption:
		step, err := h.interview.SelectOption(c.Sender().ID, i.SessionTag, i.QuestionID, i.OptionIndex)
		if err != nil {
			return h.fail(c, err)
		}
		return h.flow.Step(c, step)
	case callback.SkipQuestion:
		step, err := h.interview.SkipQuestion(c.Sender().ID, i.SessionTag, i.QuestionID)
		if err != nil {
			return h.fail(c, err)
		}
		return h.flow.Step(c, step)
	default:
		return c.Respond(&telebot.CallbackResponse{Text: unknownActionText})
	}
}

func (h *CallbackHandler) fail(c telebot.Context, err error) error {
	options := 0
	if errors.Is(err, model.ErrInvalidOption) {
		if v, curErr := h.interview.Current(c.Sender().ID); curErr == nil {
			options = len(v.Question.Options)
		}
	}
	return h.flow.Error(c, err, options)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *CallbackHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
