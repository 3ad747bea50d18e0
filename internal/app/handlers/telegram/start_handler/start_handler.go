package start_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/reply"
	messageService "github.com/IT-Nick/interview-prep-bot/internal/domain/messages/service"
	questionsService "github.com/IT-Nick/interview-prep-bot/internal/domain/questions/service"
)

// StartHandler структура для обработки команды /start
type StartHandler struct {
	messageService   *messageService.MessageService
	questionsService *questionsService.QuestionService
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(
	messageService *messageService.MessageService,
	questionsService *questionsService.QuestionService,
) *StartHandler {
	return &StartHandler{
		messageService:   messageService,
		questionsService: questionsService,
	}
}

// Handle приветствует пользователя и перечисляет темы
func (h *StartHandler) Handle(c telebot.Context) error {
	return reply.Send(c, h.messageService.Welcome(h.questionsService.Summaries()))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
