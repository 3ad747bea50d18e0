package model

import "time"

// AttemptRecord сохраненный результат пробного интервью
type AttemptRecord struct {
	ID              string          `json:"id"`
	UserID          int64           `json:"user_id"`
	Username        string          `json:"username,omitempty"`
	Topic           string          `json:"topic"`
	Correct         int             `json:"correct"`
	Total           int             `json:"total"`
	Percentage      int             `json:"percentage"`
	DurationSeconds int             `json:"duration_seconds"`
	StartedAt       time.Time       `json:"started_at"`
	FinishedAt      time.Time       `json:"finished_at"`
	Answers         []AttemptAnswer `json:"answers"`
}

// AttemptAnswer ответ на один вопрос в сохраненном результате
type AttemptAnswer struct {
	QuestionID int        `json:"question_id"`
	Prompt     string     `json:"question"`
	Difficulty Difficulty `json:"difficulty"`
	Outcome    Outcome    `json:"outcome"`
	UserAnswer string     `json:"user_answer"`
	IsCorrect  bool       `json:"is_correct"`
	TimeTaken  int        `json:"time_taken"`
}
