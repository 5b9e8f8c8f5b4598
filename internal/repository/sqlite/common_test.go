package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"testing"

	"task-editor/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleDatabaseError(t *testing.T) {
	originalErr := stderrors.New("database connection failed")
	result := HandleDatabaseError("test operation", originalErr)

	assert.NotNil(t, result)
	assert.True(t, errors.IsErrorType(result, errors.ErrorTypeStorage))
	assert.Contains(t, result.Error(), "test operation")
	assert.Contains(t, result.Error(), "database connection failed")
}

func TestHandleDatabaseError_Deadline(t *testing.T) {
	result := HandleDatabaseError("read", fmt.Errorf("query: %w", context.DeadlineExceeded))

	assert.True(t, errors.IsErrorType(result, errors.ErrorTypeTimeout))
}

type stubScanner struct {
	values []interface{}
	err    error
}

func (s stubScanner) Scan(dest ...interface{}) error {
	if s.err != nil {
		return s.err
	}
	for i, d := range dest {
		*(d.(*string)) = s.values[i].(string)
	}
	return nil
}

func TestQuerySingle_NotFound(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE blobs (key TEXT PRIMARY KEY, value TEXT, updated_at TEXT)`)
	require.NoError(t, err)

	_, err = QuerySingle(context.Background(), db, `SELECT key, value, updated_at FROM blobs WHERE key = ?`, ScanBlob, "blob", "x", "x")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}
