package mock_interview_handler

import (
	"errors"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/flow"
	"github.com/IT-Nick/interview-prep-bot/internal/app/reply"
	interviewService "github.com/IT-Nick/interview-prep-bot/internal/domain/interview/service"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

// MockInterviewHandler начинает пробное интервью (/mockinterview <topic> и кнопка "interview")
type MockInterviewHandler struct {
	interviewService *interviewService.InterviewService
	flow             *flow.Flow
}

// NewMockInterviewHandler возвращает структуру обработчика
func NewMockInterviewHandler(interviewService *interviewService.InterviewService, flow *flow.Flow) *MockInterviewHandler {
	return &MockInterviewHandler{
		interviewService: interviewService,
		flow:             flow,
	}
}

// Handle начинает интервью по теме из команды, без темы отправляет подсказку
func (h *MockInterviewHandler) Handle(c telebot.Context) error {
	topic := c.Message().Payload
	if topic == "" {
		return reply.Send(c, h.flow.Messages().InterviewUsage())
	}
	return h.Start(c, topic)
}

// Start начинает интервью. Незавершенное интервью пользователя заменяется новым.
func (h *MockInterviewHandler) Start(c telebot.Context, topic string) error {
	v, err := h.interviewService.Start(c.Sender().ID, topic)
	switch {
	case errors.Is(err, model.ErrTopicNotFound):
		return reply.Send(c, h.flow.Messages().TopicNotFound(topic))
	case errors.Is(err, model.ErrEmptyQuestionPool):
		return reply.Send(c, h.flow.Messages().EmptyTopic(topic))
	case err != nil:
		return h.flow.Error(c, err, 0)
	}
	return h.flow.Begin(c, v)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *MockInterviewHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
