package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/callback"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/messages/repository"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

func newService(t *testing.T) *MessageService {
	t.Helper()
	texts, err := repository.NewTextRepository("")
	require.NoError(t, err)
	return NewMessageService(texts, Settings{QuestionCount: 5, TimeLimit: 2 * time.Minute})
}

func intPtr(i int) *int { return &i }

var (
	freeText = model.Question{ID: 1, Prompt: "What is the event loop?", ReferenceAnswer: "The event loop handles asynchronous callbacks", Difficulty: model.DifficultyMedium}
	choice   = model.Question{ID: 2, Prompt: "Pick B", ReferenceAnswer: "B is right", Options: []string{"A", "B", "C"}, CorrectOption: intPtr(1), Difficulty: model.DifficultyEasy}
	topics   = []model.TopicSummary{{Name: "typescript", QuestionCount: 10}, {Name: "qa", QuestionCount: 8}}
)

func payloads(r model.Reply) []string {
	var out []string
	for _, row := range r.Buttons {
		for _, b := range row {
			out = append(out, b.Payload)
		}
	}
	return out
}

func TestWelcomeListsTopics(t *testing.T) {
	r := newService(t).Welcome(topics)

	assert.Contains(t, r.Text, "Welcome to Interview Prep Bot")
	assert.Contains(t, r.Text, "• TYPESCRIPT")
	assert.Contains(t, r.Text, "• QA")
	assert.Equal(t, []string{"menu"}, payloads(r))
}

func TestMenuButtons(t *testing.T) {
	r := newService(t).Menu()

	assert.Equal(t, []string{"practice_mode", "test_mode", "view_topics", "show_help"}, payloads(r))
}

func TestHelpUsesSettings(t *testing.T) {
	r := newService(t).Help(topics)

	assert.Contains(t, r.Text, "5 random questions per test")
	assert.Contains(t, r.Text, "2m 0s per question")
	assert.Contains(t, r.Text, "TYPESCRIPT - 10 questions")
	assert.Contains(t, r.Text, "/cancel")
}

func TestTopicPicker(t *testing.T) {
	s := newService(t)

	assert.Equal(t, []string{"practice:typescript", "practice:qa", "menu"}, payloads(s.TopicPicker(true, topics)))
	assert.Equal(t, []string{"interview:typescript", "interview:qa", "menu"}, payloads(s.TopicPicker(false, topics)))
}

func TestPracticeQuestion_FreeTextShowsAnswer(t *testing.T) {
	r := newService(t).PracticeQuestion("typescript", freeText)

	assert.Contains(t, r.Text, "🟡 Difficulty: MEDIUM")
	assert.Contains(t, r.Text, freeText.ReferenceAnswer)
	assert.Contains(t, r.Text, "/topic typescript")
	assert.Equal(t, []string{"practice:typescript"}, payloads(r))
}

func TestPracticeQuestion_ChoiceHidesAnswer(t *testing.T) {
	r := newService(t).PracticeQuestion("qa", choice)

	assert.NotContains(t, r.Text, choice.ReferenceAnswer)
	assert.Equal(t, []string{"pans:qa:2:0", "pans:qa:2:1", "pans:qa:2:2"}, payloads(r))
}

func TestPracticeFeedback(t *testing.T) {
	s := newService(t)

	assert.True(t, strings.HasPrefix(s.PracticeFeedback("qa", choice, 1).Text, "✅ Correct!"))
	wrong := s.PracticeFeedback("qa", choice, 0).Text
	assert.Contains(t, wrong, "The correct answer is: B")
}

func TestQuestion(t *testing.T) {
	s := newService(t)
	v := model.QuestionView{SessionTag: "abcd1234", Topic: "qa", Index: 1, Total: 5, TimeLimit: 2 * time.Minute}

	v.Question = freeText
	r := s.Question(v)
	assert.Contains(t, r.Text, "Question 2/5")
	assert.Contains(t, r.Text, "⏱️ Time limit: 120s")
	assert.Equal(t, []string{"skip:abcd1234:1"}, payloads(r))

	v.Question = choice
	r = s.Question(v)
	assert.Equal(t, []string{"opt:abcd1234:2:0", "opt:abcd1234:2:1", "opt:abcd1234:2:2"}, payloads(r))
	for _, p := range payloads(r) {
		_, err := callback.Parse(p)
		assert.NoError(t, err)
	}
}

func TestFeedback(t *testing.T) {
	s := newService(t)

	timeout := s.Feedback(model.QuestionResult{Question: freeText, Outcome: model.OutcomeTimeout, TimeTaken: 120})
	assert.Contains(t, timeout.Text, "Time's up! (120s exceeded)")

	skipped := s.Feedback(model.QuestionResult{Question: choice, Outcome: model.OutcomeSkipped})
	assert.Contains(t, skipped.Text, "skipped")
	assert.Contains(t, skipped.Text, "Correct answer:\nB")

	good := s.Feedback(model.QuestionResult{Question: freeText, Outcome: model.OutcomeAnswered, IsCorrect: true, TimeTaken: 12})
	assert.Contains(t, good.Text, "Good answer! (12s)")
}

func TestReport(t *testing.T) {
	report := model.Report{
		Topic:        "qa",
		Correct:      2,
		Total:        5,
		Percentage:   40,
		TotalElapsed: 125 * time.Second,
		ByDifficulty: []model.DifficultyStats{{Difficulty: model.DifficultyEasy, Correct: 2, Total: 3}},
		Results: []model.QuestionResult{
			{Question: model.Question{Prompt: strings.Repeat("x", 70)}, Outcome: model.OutcomeAnswered, IsCorrect: true, TimeTaken: 3},
			{Question: freeText, Outcome: model.OutcomeTimeout, TimeTaken: 120},
		},
		Tier: model.TierNeedsPractice,
	}

	r := newService(t).Report(report)

	assert.Contains(t, r.Text, "Correct: 2/5")
	assert.Contains(t, r.Text, "Score: 40%")
	assert.Contains(t, r.Text, "Total time: 2m 5s")
	assert.Contains(t, r.Text, "EASY: 2/3 (67%)")
	assert.NotContains(t, r.Text, "MEDIUM:")
	assert.Contains(t, r.Text, "1. ✅ Correct (3s)")
	assert.Contains(t, r.Text, "2. ⏰ Timeout (120s)")
	assert.Contains(t, r.Text, strings.Repeat("x", 60)+"...")
	assert.Contains(t, r.Text, "Keep learning")
	assert.Equal(t, []string{"interview:qa", "menu"}, payloads(r))
}

func TestHistory(t *testing.T) {
	s := newService(t)

	assert.Contains(t, s.History(nil).Text, "no finished mock interviews")

	r := s.History([]model.AttemptRecord{{
		Topic: "qa", Correct: 4, Total: 5, Percentage: 80, DurationSeconds: 61,
		FinishedAt: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
	}})
	assert.Contains(t, r.Text, "2024-05-01 12:30 QA: 4/5 (80%), 1m 1s")
}

func TestDocuments(t *testing.T) {
	s := newService(t)

	doc := s.HistoryDocument(42, []byte("xlsx")).Document
	require.NotNil(t, doc)
	assert.Equal(t, "interview-history-42.xlsx", doc.FileName)

	pdf := s.ReportDocument(model.Report{Topic: "qa", FinishedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}, []byte("%PDF")).Document
	require.NotNil(t, pdf)
	assert.Equal(t, "interview-qa-20240501-120000.pdf", pdf.FileName)
	assert.Equal(t, "application/pdf", pdf.MIME)
}
