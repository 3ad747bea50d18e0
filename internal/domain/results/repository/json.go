package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

// JSONRepository сохраняет результаты в JSON-файл. Файл перечитывается при каждом обращении.
type JSONRepository struct {
	filename string
	mu       sync.Mutex
}

// NewJSONRepository создает JSONRepository и пустой файл, если его нет
func NewJSONRepository(filename string) (*JSONRepository, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(filename, []byte("{}"), 0o644); err != nil {
			return nil, fmt.Errorf("failed to create results file %s: %w", filename, err)
		}
	}
	return &JSONRepository{filename: filename}, nil
}

func (j *JSONRepository) load() (map[int64][]model.AttemptRecord, error) {
	data, err := os.ReadFile(j.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file %s: %w", j.filename, err)
	}
	m := make(map[int64][]model.AttemptRecord)
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse results file %s: %w", j.filename, err)
	}
	return m, nil
}

func (j *JSONRepository) save(m map[int64][]model.AttemptRecord) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	tmp := j.filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, j.filename); err != nil {
		return fmt.Errorf("failed to replace results file %s: %w", j.filename, err)
	}
	return nil
}

func (j *JSONRepository) Save(_ context.Context, rec model.AttemptRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	m, err := j.load()
	if err != nil {
		return err
	}
	m[rec.UserID] = append(m[rec.UserID], rec)
	return j.save(m)
}

func (j *JSONRepository) ListByUser(_ context.Context, userID int64, limit int) ([]model.AttemptRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	m, err := j.load()
	if err != nil {
		return nil, err
	}
	return newestFirst(m[userID], limit), nil
}
