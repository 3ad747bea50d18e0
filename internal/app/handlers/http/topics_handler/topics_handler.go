package topics_handler

import (
	"net/http"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/dto"
	questionsService "github.com/IT-Nick/interview-prep-bot/internal/domain/questions/service"
	httpResponse "github.com/IT-Nick/interview-prep-bot/pkg/http"
)

// TopicsHandler структура для обработчика GET /topics
type TopicsHandler struct {
	questionsService *questionsService.QuestionService
}

// NewTopicsHandler создает новый экземпляр обработчика
func NewTopicsHandler(questionsService *questionsService.QuestionService) *TopicsHandler {
	return &TopicsHandler{questionsService: questionsService}
}

// ServeHTTP отдает темы и число вопросов в JSON
func (h *TopicsHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	summaries := h.questionsService.Summaries()
	response := dto.TopicsResponse{Topics: make([]dto.TopicInfo, 0, len(summaries))}
	for _, s := range summaries {
		response.Topics = append(response.Topics, dto.TopicInfo{
			Name:          s.Name,
			Description:   s.Description,
			QuestionCount: s.QuestionCount,
		})
	}
	httpResponse.WriteJSON(w, http.StatusOK, response)
}
