package config

import (
	"context"
	"fmt"
	"os"

	"task-editor/internal/persistence"
	"task-editor/internal/repository/postgres"
	"task-editor/internal/repository/redis"
	"task-editor/internal/repository/sqlite"
)

// Storage is a blob store the CLI can also clear and close.
type Storage interface {
	persistence.BlobStore
	Remove(ctx context.Context, key string) error
	Close() error
}

// CreateStorage opens the blob store selected by config.Storage.Backend.
func CreateStorage(ctx context.Context, config *Config) (Storage, error) {
	switch config.Storage.Backend {
	case BackendSQLite:
		if err := os.MkdirAll(config.Storage.Dir, os.FileMode(config.Storage.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
		repo, err := sqlite.New(ctx, config.GetDatabasePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	case BackendMemory:
		return CreateTestStorage(ctx)
	case BackendRedis:
		store, err := redis.New(ctx, config.Storage.RedisURL, "te:")
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store, nil
	case BackendPostgres:
		store, err := postgres.New(ctx, config.Storage.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return store, nil
	default:
		return nil, &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q", config.Storage.Backend)}
	}
}

// CreateTestStorage creates an in-memory store for testing
func CreateTestStorage(ctx context.Context) (Storage, error) {
	repo, err := sqlite.NewInMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	return repo, nil
}

// CreateBridge wires a persistence bridge over store using the configured key and timeout.
func CreateBridge(store persistence.BlobStore, config *Config) (*persistence.Bridge, error) {
	return persistence.NewBridge(store, config.Storage.Key, persistence.WithTimeout(config.Storage.Timeout))
}
