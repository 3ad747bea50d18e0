package topics_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/reply"
	messageService "github.com/IT-Nick/interview-prep-bot/internal/domain/messages/service"
	questionsService "github.com/IT-Nick/interview-prep-bot/internal/domain/questions/service"
)

// TopicsHandler список тем (/topics)
type TopicsHandler struct {
	messageService   *messageService.MessageService
	questionsService *questionsService.QuestionService
}

// NewTopicsHandler возвращает структуру обработчика
func NewTopicsHandler(
	messageService *messageService.MessageService,
	questionsService *questionsService.QuestionService,
) *TopicsHandler {
	return &TopicsHandler{
		messageService:   messageService,
		questionsService: questionsService,
	}
}

// Handle отправляет список доступных тем
func (h *TopicsHandler) Handle(c telebot.Context) error {
	return reply.Send(c, h.messageService.Topics(h.questionsService.Summaries()))
}

// Picker выбор темы для практики (practice == true) или интервью
func (h *TopicsHandler) Picker(c telebot.Context, practice bool) error {
	return reply.Send(c, h.messageService.TopicPicker(practice, h.questionsService.Summaries()))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *TopicsHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
