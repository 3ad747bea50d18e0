package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

const (
	defaultRedisPrefix = "prepbot"
	maxRedisAttempts   = 100
)

// RedisRepository хранит результаты пользователя в списке <prefix>:attempts:<userID>, новые в начале
type RedisRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisRepository создает RedisRepository. ttl == 0 означает хранение без срока.
func NewRedisRepository(client *redis.Client, prefix string, ttl time.Duration) *RedisRepository {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisRepository{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisRepository) key(userID int64) string {
	return fmt.Sprintf("%s:attempts:%d", r.prefix, userID)
}

func (r *RedisRepository) Save(ctx context.Context, rec model.AttemptRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode attempt: %w", err)
	}

	key := r.key(rec.UserID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, maxRedisAttempts-1)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save attempt to redis: %w", err)
	}
	return nil
}

func (r *RedisRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.AttemptRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	items, err := r.client.LRange(ctx, r.key(userID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read attempts from redis: %w", err)
	}

	records := make([]model.AttemptRecord, 0, len(items))
	for _, item := range items {
		var rec model.AttemptRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode attempt: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
