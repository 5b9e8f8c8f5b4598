// Package postgres stores string blobs by key in a PostgreSQL table.
package postgres

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"task-editor/internal/errors"
	"task-editor/internal/logging"
)

// Store is a PostgreSQL-backed blob store.
type Store struct {
	pool *pgxpool.Pool
}

// New opens a pool for url and makes sure the blob table exists.
func New(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, errors.NewInvalidInputError("storage.postgres_url", "<redacted>", err.Error())
	}

	store := NewStore(pool)
	if err := store.EnsureTable(ctx); err != nil {
		pool.Close()
		return nil, errors.FromStorage("create blob table", err)
	}

	logging.FromContext(ctx).Debug("Postgres pool initialized", "max_conns", pool.Config().MaxConns)
	return store, nil
}

// NewStore wraps an existing pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureTable creates the te_blobs table if it doesn't exist.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS te_blobs (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// Get returns the value stored under key, with ok == false when absent.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM te_blobs WHERE key = $1`, key).Scan(&value)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.FromStorage("postgres get", err)
	}
	return value, true, nil
}

// Set replaces the value stored under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO te_blobs (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	if err != nil {
		return errors.FromStorage("postgres set", err)
	}
	return nil
}

// Remove deletes the row for key. Deleting a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM te_blobs WHERE key = $1`, key); err != nil {
		return errors.FromStorage("postgres delete", err)
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
