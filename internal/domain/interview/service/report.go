package service

import (
	"math"
	"time"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

// BuildReport подводит итог сессии на момент now
func BuildReport(s *model.InterviewSession, now time.Time) model.Report {
	report := model.Report{
		SessionID:    s.ID,
		UserID:       s.UserID,
		Topic:        s.TopicName,
		Total:        len(s.Results),
		TotalElapsed: now.Sub(s.StartTime),
		StartedAt:    s.StartTime,
		FinishedAt:   now,
		Results:      append([]model.QuestionResult(nil), s.Results...),
	}

	buckets := make(map[model.Difficulty]*model.DifficultyStats)
	for _, r := range s.Results {
		if r.IsCorrect {
			report.Correct++
		}
		b, ok := buckets[r.Question.Difficulty]
		if !ok {
			b = &model.DifficultyStats{Difficulty: r.Question.Difficulty}
			buckets[r.Question.Difficulty] = b
		}
		b.Total++
		if r.IsCorrect {
			b.Correct++
		}
	}
	for _, d := range model.Difficulties {
		if b, ok := buckets[d]; ok {
			report.ByDifficulty = append(report.ByDifficulty, *b)
		}
	}

	report.Percentage = Percentage(report.Correct, report.Total)
	report.Tier = TierFor(report.Percentage)
	return report
}

// Percentage округляет долю правильных ответов до целого процента
func Percentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// TierFor возвращает уровень оценки для процента
func TierFor(percentage int) model.Tier {
	switch {
	case percentage >= 90:
		return model.TierOutstanding
	case percentage >= 80:
		return model.TierExcellent
	case percentage >= 70:
		return model.TierGood
	case percentage >= 60:
		return model.TierFair
	default:
		return model.TierNeedsPractice
	}
}
