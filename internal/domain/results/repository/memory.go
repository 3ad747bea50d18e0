package repository

import (
	"context"
	"sync"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

// MemoryRepository хранит результаты в памяти процесса
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[int64][]model.AttemptRecord
}

// NewMemoryRepository создает новый MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[int64][]model.AttemptRecord)}
}

func (m *MemoryRepository) Save(_ context.Context, rec model.AttemptRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[rec.UserID] = append(m.data[rec.UserID], rec)
	return nil
}

func (m *MemoryRepository) ListByUser(_ context.Context, userID int64, limit int) ([]model.AttemptRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return newestFirst(m.data[userID], limit), nil
}

// newestFirst возвращает копию записей в обратном порядке, не больше limit (limit <= 0 без ограничения)
func newestFirst(records []model.AttemptRecord, limit int) []model.AttemptRecord {
	n := len(records)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]model.AttemptRecord, 0, n)
	for i := len(records) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, records[i])
	}
	return result
}
