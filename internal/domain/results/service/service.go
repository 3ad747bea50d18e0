package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/results/export"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/timer"
)

// DefaultHistoryLimit количество попыток в /history
const DefaultHistoryLimit = 10

// Repository хранилище результатов пробных интервью
type Repository interface {
	Save(ctx context.Context, rec model.AttemptRecord) error
	// ListByUser возвращает попытки пользователя, новые в начале; limit <= 0 без ограничения
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.AttemptRecord, error)
}

// ResultService сохраняет результаты интервью и выгружает историю
type ResultService struct {
	repo  Repository
	newID func() string
}

// NewResultService создает новый экземпляр ResultService
func NewResultService(repo Repository) *ResultService {
	return &ResultService{repo: repo, newID: uuid.NewString}
}

// Record сохраняет отчет завершенного интервью
func (s *ResultService) Record(ctx context.Context, report model.Report, username string) (model.AttemptRecord, error) {
	rec := NewAttemptRecord(report, username)
	if rec.ID == "" {
		rec.ID = s.newID()
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return model.AttemptRecord{}, fmt.Errorf("failed to save attempt: %w", err)
	}
	return rec, nil
}

// History возвращает последние попытки пользователя
func (s *ResultService) History(ctx context.Context, userID int64, limit int) ([]model.AttemptRecord, error) {
	records, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts of user %d: %w", userID, err)
	}
	return records, nil
}

// ExportHistory выгружает всю историю пользователя в xlsx.
// Возвращает nil, если выгружать нечего.
func (s *ResultService) ExportHistory(ctx context.Context, userID int64) ([]byte, error) {
	records, err := s.History(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return export.HistoryXLSX(records)
}

// ReportPDF формирует PDF по отчету интервью
func (s *ResultService) ReportPDF(report model.Report, username string) ([]byte, error) {
	return export.ReportPDF(report, username)
}

// NewAttemptRecord переводит отчет в запись для хранилища. ID сессии становится ID попытки.
func NewAttemptRecord(report model.Report, username string) model.AttemptRecord {
	rec := model.AttemptRecord{
		ID:              report.SessionID,
		UserID:          report.UserID,
		Username:        username,
		Topic:           report.Topic,
		Correct:         report.Correct,
		Total:           report.Total,
		Percentage:      report.Percentage,
		DurationSeconds: timer.WholeSeconds(report.TotalElapsed),
		StartedAt:       report.StartedAt,
		FinishedAt:      report.FinishedAt,
		Answers:         make([]model.AttemptAnswer, 0, len(report.Results)),
	}
	for _, r := range report.Results {
		rec.Answers = append(rec.Answers, model.AttemptAnswer{
			QuestionID: r.Question.ID,
			Prompt:     r.Question.Prompt,
			Difficulty: r.Question.Difficulty,
			Outcome:    r.Outcome,
			UserAnswer: r.AnswerText(),
			IsCorrect:  r.IsCorrect,
			TimeTaken:  r.TimeTaken,
		})
	}
	return rec
}
