package dto

// ActiveSessionsResponse структура для отчета по идущим интервью
type ActiveSessionsResponse struct {
	TotalActiveUsers int                 `json:"total_active_users"`
	Sessions         []ActiveSessionInfo `json:"sessions"`
}

type ActiveSessionInfo struct {
	SessionID       string       `json:"session_id"`
	UserID          int64        `json:"user_id"`
	Topic           string       `json:"topic"`
	CurrentQuestion QuestionInfo `json:"current_question"`
	Answered        int          `json:"answered"`
	CorrectAnswers  int          `json:"correct_answers"`
	TotalQuestions  int          `json:"total_questions"`
	StartedAt       string       `json:"started_at"`
	RemainingTime   string       `json:"remaining_time"`
}

type QuestionInfo struct {
	QuestionID int      `json:"question_id"`
	Question   string   `json:"question"`
	Difficulty string   `json:"difficulty"`
	Options    []string `json:"options,omitempty"`
}
