package history_handler

import (
	"context"
	"log/slog"
	"time"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/reply"
	messageService "github.com/IT-Nick/interview-prep-bot/internal/domain/messages/service"
	resultsService "github.com/IT-Nick/interview-prep-bot/internal/domain/results/service"
)

const requestTimeout = 5 * time.Second

// HistoryHandler история пробных интервью: /history и /export
type HistoryHandler struct {
	messageService *messageService.MessageService
	resultService  *resultsService.ResultService
	logger         *slog.Logger
}

// NewHistoryHandler возвращает структуру обработчика
func NewHistoryHandler(
	messageService *messageService.MessageService,
	resultService *resultsService.ResultService,
	logger *slog.Logger,
) *HistoryHandler {
	return &HistoryHandler{
		messageService: messageService,
		resultService:  resultService,
		logger:         logger,
	}
}

// Handle показывает последние результаты пользователя
func (h *HistoryHandler) Handle(c telebot.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	userID := c.Sender().ID
	records, err := h.resultService.History(ctx, userID, resultsService.DefaultHistoryLimit)
	if err != nil {
		h.logger.Error("failed to load history", slog.Int64("user_id", userID), slog.Any("error", err))
		return reply.Send(c, h.messageService.InternalError())
	}
	return reply.Send(c, h.messageService.History(records))
}

// Export отправляет всю историю пользователя файлом xlsx
func (h *HistoryHandler) Export(c telebot.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	userID := c.Sender().ID
	data, err := h.resultService.ExportHistory(ctx, userID)
	if err != nil {
		h.logger.Error("failed to export history", slog.Int64("user_id", userID), slog.Any("error", err))
		return reply.Send(c, h.messageService.InternalError())
	}
	if data == nil {
		return reply.Send(c, h.messageService.EmptyHistory())
	}
	return reply.Send(c, h.messageService.HistoryDocument(userID, data))
}

// GetHandlerFunc возвращает обработчик /history в формате telebot.HandlerFunc
func (h *HistoryHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

// GetExportHandlerFunc возвращает обработчик /export в формате telebot.HandlerFunc
func (h *HistoryHandler) GetExportHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Export(c)
	}
}
