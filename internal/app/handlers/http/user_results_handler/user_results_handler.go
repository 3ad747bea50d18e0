package user_results_handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/dto"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	resultsService "github.com/IT-Nick/interview-prep-bot/internal/domain/results/service"
	httpResponse "github.com/IT-Nick/interview-prep-bot/pkg/http"
)

// UserResultsHandler структура для обработчика GET /users/{id}/results
type UserResultsHandler struct {
	resultService *resultsService.ResultService
}

// NewUserResultsHandler создает новый экземпляр обработчика
func NewUserResultsHandler(resultService *resultsService.ResultService) *UserResultsHandler {
	return &UserResultsHandler{resultService: resultService}
}

// ServeHTTP метод для обработки запроса. Необязательный параметр limit ограничивает число попыток.
func (h *UserResultsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpResponse.ErrorResponse(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			httpResponse.ErrorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
	}

	records, err := h.resultService.History(r.Context(), userID, limit)
	if err != nil {
		httpResponse.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get results: %v", err))
		return
	}
	if records == nil {
		records = []model.AttemptRecord{}
	}

	httpResponse.WriteJSON(w, http.StatusOK, dto.UserResultsResponse{
		UserID:   userID,
		Attempts: records,
	})
}
