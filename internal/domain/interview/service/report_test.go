package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

func TestBuildReport(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	q := func(id int, d model.Difficulty) model.Question {
		return model.Question{ID: id, Difficulty: d}
	}
	session := &model.InterviewSession{
		ID:        "session",
		UserID:    42,
		TopicName: "qa",
		StartTime: start,
		Results: []model.QuestionResult{
			{Question: q(1, model.DifficultyHard), Outcome: model.OutcomeAnswered, IsCorrect: true},
			{Question: q(2, model.DifficultyEasy), Outcome: model.OutcomeSelected, IsCorrect: true},
			{Question: q(3, model.DifficultyEasy), Outcome: model.OutcomeAnswered},
			{Question: q(4, model.DifficultyHard), Outcome: model.OutcomeSelected},
			{Question: q(5, model.DifficultyHard), Outcome: model.OutcomeSkipped},
		},
	}

	report := BuildReport(session, start.Add(3*time.Minute+5*time.Second))

	assert.Equal(t, 2, report.Correct)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 40, report.Percentage)
	assert.Equal(t, model.TierNeedsPractice, report.Tier)
	assert.Equal(t, 185*time.Second, report.TotalElapsed)
	assert.Equal(t, []model.DifficultyStats{
		{Difficulty: model.DifficultyEasy, Correct: 1, Total: 2},
		{Difficulty: model.DifficultyHard, Correct: 1, Total: 3},
	}, report.ByDifficulty)
	assert.Equal(t, []string{"Correct", "Correct", "Incorrect", "Incorrect", "Skipped"}, labels(report.Results))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 100, Percentage(5, 5))
}

func TestTierFor(t *testing.T) {
	cases := map[int]model.Tier{
		100: model.TierOutstanding,
		90:  model.TierOutstanding,
		89:  model.TierExcellent,
		80:  model.TierExcellent,
		70:  model.TierGood,
		60:  model.TierFair,
		59:  model.TierNeedsPractice,
		0:   model.TierNeedsPractice,
	}
	for pct, want := range cases {
		assert.Equal(t, want, TierFor(pct), "percentage %d", pct)
	}
}

func labels(results []model.QuestionResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Label()
	}
	return out
}
