// Package sqlite stores string blobs by key in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"task-editor/internal/errors"
	"task-editor/internal/logging"
	"task-editor/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteRepository is a key/value blob store backed by the blobs table.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository instance
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	// Every connection to :memory: gets its own database, so pin the pool to one.
	if dbPath == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	logging.Debugf("opened sqlite store at %s", dbPath)
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// NewInMemory creates a repository whose data lives only as long as the process.
func NewInMemory(ctx context.Context) (*SQLiteRepository, error) {
	return New(ctx, MemoryPath)
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get returns the value stored under key. The boolean is false when nothing
// has been stored yet.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	blob, err := r.Stat(ctx, key)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return blob.Value, true, nil
}

// Stat returns the stored blob with its write time.
func (r *SQLiteRepository) Stat(ctx context.Context, key string) (*Blob, error) {
	query := `SELECT key, value, updated_at FROM blobs WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanBlob, "blob", key, key)
}

// Set replaces the value stored under key.
func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO blobs (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return Execute(ctx, r.db, query, key, value, FormatTimeForDB(r.now()))
}

// Remove deletes the value stored under key. Removing an absent key is not an error.
func (r *SQLiteRepository) Remove(ctx context.Context, key string) error {
	return Execute(ctx, r.db, `DELETE FROM blobs WHERE key = ?`, key)
}
