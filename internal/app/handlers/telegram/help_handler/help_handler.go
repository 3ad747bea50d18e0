package help_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/reply"
	messageService "github.com/IT-Nick/interview-prep-bot/internal/domain/messages/service"
	questionsService "github.com/IT-Nick/interview-prep-bot/internal/domain/questions/service"
)

// HelpHandler справка по командам и режимам
type HelpHandler struct {
	messageService   *messageService.MessageService
	questionsService *questionsService.QuestionService
}

// NewHelpHandler возвращает структуру обработчика
func NewHelpHandler(
	messageService *messageService.MessageService,
	questionsService *questionsService.QuestionService,
) *HelpHandler {
	return &HelpHandler{
		messageService:   messageService,
		questionsService: questionsService,
	}
}

// Handle отправляет справку по командам
func (h *HelpHandler) Handle(c telebot.Context) error {
	return reply.Send(c, h.messageService.Help(h.questionsService.Summaries()))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *HelpHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
