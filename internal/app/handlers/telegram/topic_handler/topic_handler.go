package topic_handler

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/app/reply"
	messageService "github.com/IT-Nick/interview-prep-bot/internal/domain/messages/service"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	questionsService "github.com/IT-Nick/interview-prep-bot/internal/domain/questions/service"
)

// TopicHandler режим практики: /topic <name> и кнопки практики
type TopicHandler struct {
	messageService   *messageService.MessageService
	questionsService *questionsService.QuestionService
	logger           *slog.Logger
}

// NewTopicHandler возвращает структуру обработчика
func NewTopicHandler(
	messageService *messageService.MessageService,
	questionsService *questionsService.QuestionService,
	logger *slog.Logger,
) *TopicHandler {
	return &TopicHandler{
		messageService:   messageService,
		questionsService: questionsService,
		logger:           logger,
	}
}

// Handle обрабатывает /topic <name>. Без аргумента показывает список тем.
func (h *TopicHandler) Handle(c telebot.Context) error {
	topic := c.Message().Payload
	if topic == "" {
		return reply.Send(c, h.messageService.TopicUsage(h.questionsService.TopicNames()))
	}
	return h.Practice(c, topic)
}

// Practice отправляет случайный вопрос темы
func (h *TopicHandler) Practice(c telebot.Context, topic string) error {
	question, err := h.questionsService.RandomQuestion(topic)
	switch {
	case errors.Is(err, model.ErrTopicNotFound):
		return reply.Send(c, h.messageService.TopicNotFound(topic))
	case errors.Is(err, model.ErrEmptyQuestionPool):
		return reply.Send(c, h.messageService.EmptyTopic(topic))
	case err != nil:
		return fmt.Errorf("failed to pick practice question: %w", err)
	}

	return reply.Send(c, h.messageService.PracticeQuestion(topicKey(topic), question))
}

// Answer проверяет выбранный вариант вопроса практики. Состояние не хранится:
// вопрос находится по теме и ID из данных кнопки.
func (h *TopicHandler) Answer(c telebot.Context, topic string, questionID, option int) error {
	question, err := h.questionsService.QuestionByID(topic, questionID)
	if err != nil {
		h.logger.Debug("practice answer for unknown question",
			slog.String("topic", topic), slog.Int("question_id", questionID), slog.Any("error", err))
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.StaleQuestion().Text})
	}
	if !question.IsMultipleChoice() || option >= len(question.Options) {
		return c.Respond(&telebot.CallbackResponse{Text: h.messageService.InvalidOption(len(question.Options)).Text})
	}

	return reply.Send(c, h.messageService.PracticeFeedback(topicKey(topic), question, option))
}

// topicKey имя темы в том виде, в каком оно попадает в данные кнопок
func topicKey(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *TopicHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
