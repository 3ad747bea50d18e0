package active_sessions_handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/handlertest"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/dto"
)

func TestActiveSessionsHandler(t *testing.T) {
	f := handlertest.New(t, false)
	_, err := f.Interview.Start(42, "choice")
	require.NoError(t, err)
	_, err = f.Interview.SubmitAnswer(42, "3")
	require.NoError(t, err)
	f.Clock.Advance(30 * time.Second)

	rec := httptest.NewRecorder()
	NewActiveSessionsHandler(f.Registry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/active", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ActiveSessionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.TotalActiveUsers)

	s := resp.Sessions[0]
	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, handlertest.SessionID, s.SessionID)
	assert.Equal(t, "choice", s.Topic)
	assert.Equal(t, 1, s.Answered)
	assert.Equal(t, 1, s.CorrectAnswers)
	assert.Equal(t, 2, s.TotalQuestions)
	assert.Equal(t, 11, s.CurrentQuestion.QuestionID)
	assert.Equal(t, "1m30s", s.RemainingTime)
}

func TestActiveSessionsHandler_Empty(t *testing.T) {
	f := handlertest.New(t, false)

	rec := httptest.NewRecorder()
	NewActiveSessionsHandler(f.Registry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/active", nil))

	assert.JSONEq(t, `{"total_active_users":0,"sessions":[]}`, rec.Body.String())
}
