package menu_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/reply"
	messageService "github.com/IT-Nick/interview-prep-bot/internal/domain/messages/service"
)

// MenuHandler показывает главное меню (/menu и кнопка "menu")
type MenuHandler struct {
	messageService *messageService.MessageService
}

// NewMenuHandler возвращает структуру обработчика
func NewMenuHandler(messageService *messageService.MessageService) *MenuHandler {
	return &MenuHandler{messageService: messageService}
}

// Handle отправляет главное меню
func (h *MenuHandler) Handle(c telebot.Context) error {
	return reply.Send(c, h.messageService.Menu())
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *MenuHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
