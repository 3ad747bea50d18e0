package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	resultsRepo "github.com/IT-Nick/interview-prep-bot/internal/domain/results/repository"
	resultsService "github.com/IT-Nick/interview-prep-bot/internal/domain/results/service"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/config"
)

// InitDatabase устанавливает подключение к базе данных
func InitDatabase(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	return db, nil
}

// InitRedis устанавливает подключение к Redis
func InitRedis(ctx context.Context, url string) (*redis.Client, error) {
	const op = "app.InitRedis"

	if url == "" {
		return nil, fmt.Errorf("%s: redis url is empty", op)
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse redis url: %w", op, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: failed to ping redis: %w", op, err)
	}

	return client, nil
}

// initResultRepository выбирает хранилище результатов по storage.type.
// Возвращаемая функция закрывает подключения хранилища.
func (app *App) initResultRepository(ctx context.Context) (resultsService.Repository, func() error, error) {
	storage := app.config.Storage
	noop := func() error { return nil }

	switch storage.Type {
	case config.StorageJSON:
		repo, err := resultsRepo.NewJSONRepository(storage.JSONPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, noop, nil

	case config.StoragePostgres:
		db, err := InitDatabase(ctx, storage.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := resultsRepo.NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		app.logger.Info("database connected")
		return repo, func() error { db.Close(); return nil }, nil

	case config.StorageRedis:
		client, err := InitRedis(ctx, storage.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		app.logger.Info("redis connected", slog.String("prefix", storage.Redis.Prefix))
		return resultsRepo.NewRedisRepository(client, storage.Redis.Prefix, storage.Redis.TTL), client.Close, nil

	case config.StorageMemory, "":
		return resultsRepo.NewMemoryRepository(), noop, nil
	}

	return nil, nil, errors.New("unknown storage type: " + storage.Type)
}
