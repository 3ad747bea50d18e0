package dto

import "github.com/IT-Nick/interview-prep-bot/internal/domain/model"

// UserResultsResponse структура для истории пробных интервью пользователя
type UserResultsResponse struct {
	UserID   int64                 `json:"user_id"`
	Attempts []model.AttemptRecord `json:"attempts"`
}
