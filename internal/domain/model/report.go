package model

import "time"

// Tier уровень итоговой оценки по проценту правильных ответов
type Tier int

const (
	TierNeedsPractice Tier = iota // < 60
	TierFair                      // >= 60
	TierGood                      // >= 70
	TierExcellent                 // >= 80
	TierOutstanding               // >= 90
)

// DifficultyStats правильные ответы по одному уровню сложности
type DifficultyStats struct {
	Difficulty Difficulty
	Correct    int
	Total      int
}

// Report итог завершенного интервью
type Report struct {
	SessionID    string
	UserID       int64
	Topic        string
	Correct      int
	Total        int
	Percentage   int
	TotalElapsed time.Duration
	StartedAt    time.Time
	FinishedAt   time.Time
	ByDifficulty []DifficultyStats
	Results      []QuestionResult
	Tier         Tier
}
