package answer_handler

import (
	"errors"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/flow"
	interviewService "github.com/IT-Nick/interview-prep-bot/internal/domain/interview/service"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

// AnswerHandler принимает набранные текстом ответы на вопросы интервью
type AnswerHandler struct {
	interviewService *interviewService.InterviewService
	flow             *flow.Flow
}

// NewAnswerHandler возвращает структуру обработчика
func NewAnswerHandler(interviewService *interviewService.InterviewService, flow *flow.Flow) *AnswerHandler {
	return &AnswerHandler{
		interviewService: interviewService,
		flow:             flow,
	}
}

// Handle обрабатывает произвольный текст. Текст без активного интервью игнорируется.
func (h *AnswerHandler) Handle(c telebot.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}

	userID := c.Sender().ID
	step, err := h.interviewService.SubmitAnswer(userID, text)
	switch {
	case errors.Is(err, model.ErrNoActiveSession):
		return nil
	case errors.Is(err, model.ErrInvalidOption):
		options := 0
		if v, curErr := h.interviewService.Current(userID); curErr == nil {
			options = len(v.Question.Options)
		}
		return h.flow.Error(c, err, options)
	case err != nil:
		return h.flow.Error(c, err, 0)
	}
	return h.flow.Step(c, step)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *AnswerHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
