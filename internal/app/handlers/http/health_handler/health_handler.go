package health_handler

import (
	"net/http"

	httpResponse "github.com/IT-Nick/interview-prep-bot/pkg/http"
)

// HealthHandler отвечает на GET /healthz
type HealthHandler struct {
	activeSessions func() int
}

// NewHealthHandler создает новый экземпляр обработчика
func NewHealthHandler(activeSessions func() int) *HealthHandler {
	return &HealthHandler{activeSessions: activeSessions}
}

// ServeHTTP отдает статус сервиса и число активных сессий
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	httpResponse.WriteJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"active_sessions": h.activeSessions(),
	})
}
