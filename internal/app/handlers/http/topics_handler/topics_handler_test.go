package topics_handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/handlertest"
)

func TestTopicsHandler(t *testing.T) {
	f := handlertest.New(t, false)
	rec := httptest.NewRecorder()

	NewTopicsHandler(f.Questions).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/topics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"topics":[
		{"name":"qa","description":"QA basics","question_count":2},
		{"name":"choice","question_count":2}
	]}`, rec.Body.String())
}
