package active_sessions_handler

import (
	"net/http"
	"time"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/dto"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/sessions"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/timer"
	httpResponse "github.com/IT-Nick/interview-prep-bot/pkg/http"
)

// ActiveSessionsHandler структура для обработчика GET /sessions/active
type ActiveSessionsHandler struct {
	registry *sessions.Registry
}

// NewActiveSessionsHandler создает новый экземпляр обработчика
func NewActiveSessionsHandler(registry *sessions.Registry) *ActiveSessionsHandler {
	return &ActiveSessionsHandler{registry: registry}
}

// ServeHTTP метод для обработки запроса
func (h *ActiveSessionsHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	now := h.registry.Clock().Now()
	active := h.registry.Active()

	response := dto.ActiveSessionsResponse{
		TotalActiveUsers: len(active),
		Sessions:         make([]dto.ActiveSessionInfo, 0, len(active)),
	}
	for _, s := range active {
		response.Sessions = append(response.Sessions, sessionInfo(s, now))
	}

	httpResponse.WriteJSON(w, http.StatusOK, response)
}

func sessionInfo(s model.InterviewSession, now time.Time) dto.ActiveSessionInfo {
	correct := 0
	for _, r := range s.Results {
		if r.IsCorrect {
			correct++
		}
	}

	info := dto.ActiveSessionInfo{
		SessionID:      s.ID,
		UserID:         s.UserID,
		Topic:          s.TopicName,
		Answered:       len(s.Results),
		CorrectAnswers: correct,
		TotalQuestions: len(s.Questions),
		StartedAt:      s.StartTime.Format(time.RFC3339),
		RemainingTime:  timer.RemainingTimeStr(s.Deadline(), now),
	}
	if q, ok := s.Current(); ok {
		info.CurrentQuestion = dto.QuestionInfo{
			QuestionID: q.ID,
			Question:   q.Prompt,
			Difficulty: string(q.Difficulty),
			Options:    q.Options,
		}
	}
	return info
}
