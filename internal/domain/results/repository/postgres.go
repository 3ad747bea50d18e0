package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

const createAttemptsTable = `
CREATE TABLE IF NOT EXISTS interview_attempts (
	id               TEXT PRIMARY KEY,
	user_id          BIGINT NOT NULL,
	username         TEXT NOT NULL DEFAULT '',
	topic            TEXT NOT NULL,
	correct          INT NOT NULL,
	total            INT NOT NULL,
	percentage       INT NOT NULL,
	duration_seconds INT NOT NULL,
	started_at       TIMESTAMPTZ NOT NULL,
	finished_at      TIMESTAMPTZ NOT NULL,
	answers          JSONB NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS interview_attempts_user_finished_idx
	ON interview_attempts (user_id, finished_at DESC);`

// PostgresRepository хранит результаты в таблице interview_attempts
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository создает новый экземпляр PostgresRepository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema создает таблицу результатов, если ее нет
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createAttemptsTable); err != nil {
		return fmt.Errorf("failed to create interview_attempts table: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Save(ctx context.Context, rec model.AttemptRecord) error {
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}

	query := `
		INSERT INTO interview_attempts
			(id, user_id, username, topic, correct, total, percentage, duration_seconds, started_at, finished_at, answers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.db.Exec(ctx, query,
		rec.ID, rec.UserID, rec.Username, rec.Topic, rec.Correct, rec.Total, rec.Percentage,
		rec.DurationSeconds, rec.StartedAt, rec.FinishedAt, string(answers),
	)
	if err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.AttemptRecord, error) {
	query := `
		SELECT id, user_id, username, topic, correct, total, percentage, duration_seconds, started_at, finished_at, answers
		FROM interview_attempts
		WHERE user_id = $1
		ORDER BY finished_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var records []model.AttemptRecord
	for rows.Next() {
		var (
			rec     model.AttemptRecord
			answers []byte
		)
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Username, &rec.Topic, &rec.Correct, &rec.Total, &rec.Percentage,
			&rec.DurationSeconds, &rec.StartedAt, &rec.FinishedAt, &answers,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		if err := json.Unmarshal(answers, &rec.Answers); err != nil {
			return nil, fmt.Errorf("failed to decode answers of attempt %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempts: %w", err)
	}
	return records, nil
}
