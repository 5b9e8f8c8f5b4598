// Package redis stores string blobs by key in Redis.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"task-editor/internal/errors"
	"task-editor/internal/logging"
)

// Store is a blob store over a single Redis client. Keys are written without
// expiry and can be namespaced with a prefix.
type Store struct {
	client *redis.Client
	prefix string
}

// New connects to the Redis server at url and checks it answers a ping.
func New(ctx context.Context, url, prefix string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.NewInvalidInputError("storage.redis_url", url, err.Error())
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.FromStorage("connect to redis", err)
	}

	logging.FromContext(ctx).Debug("Redis client initialized", "addr", opts.Addr, "db", opts.DB)
	return NewWithClient(client, prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// Get returns the value stored under key. A missing key is reported with
// ok == false and no error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.FromStorage("redis get", err)
	}
	return value, true, nil
}

// Set replaces the value stored under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return errors.FromStorage("redis set", err)
	}
	return nil
}

// Remove deletes key. Deleting a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.FromStorage("redis del", err)
	}
	return nil
}

// Close releases the client connections.
func (s *Store) Close() error {
	return s.client.Close()
}
