package cancel_handler

import (
	"errors"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/flow"
	"github.com/IT-Nick/interview-prep-bot/internal/app/reply"
	interviewService "github.com/IT-Nick/interview-prep-bot/internal/domain/interview/service"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

// CancelHandler прерывает интервью без отчета (/cancel)
type CancelHandler struct {
	interviewService *interviewService.InterviewService
	flow             *flow.Flow
}

// NewCancelHandler возвращает структуру обработчика
func NewCancelHandler(interviewService *interviewService.InterviewService, flow *flow.Flow) *CancelHandler {
	return &CancelHandler{
		interviewService: interviewService,
		flow:             flow,
	}
}

// Handle прерывает текущее интервью без отчета
func (h *CancelHandler) Handle(c telebot.Context) error {
	err := h.interviewService.Cancel(c.Sender().ID)
	if errors.Is(err, model.ErrNoActiveSession) {
		return reply.Send(c, h.flow.Messages().NoSession())
	}
	if err != nil {
		return h.flow.Error(c, err, 0)
	}
	return reply.Send(c, h.flow.Messages().Cancelled())
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *CancelHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
