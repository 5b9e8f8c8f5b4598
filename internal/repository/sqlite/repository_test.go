package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "te.db")

	repo, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestGet_Absent(t *testing.T) {
	repo := setupTestDB(t)

	value, ok, err := repo.Get(context.Background(), "tasks")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSetAndGet(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "tasks", `[]`))
	require.NoError(t, repo.Set(ctx, "tasks", `[{"id":1}]`))

	value, ok, err := repo.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, value)

	other, ok, err := repo.Get(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, other)
}

func TestStat_RecordsWriteTime(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	repo.now = func() time.Time { return at }

	require.NoError(t, repo.Set(ctx, "tasks", `[]`))

	blob, err := repo.Stat(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, "tasks", blob.Key)
	assert.True(t, at.Equal(blob.UpdatedAt))
}

func TestRemove(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "tasks", `[]`))
	require.NoError(t, repo.Remove(ctx, "tasks"))
	require.NoError(t, repo.Remove(ctx, "tasks"))

	_, ok, err := repo.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "te.db")
	ctx := context.Background()

	repo, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, "tasks", `[1]`))
	require.NoError(t, repo.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1]`, value)
}

func TestInMemory(t *testing.T) {
	ctx := context.Background()
	repo, err := NewInMemory(ctx)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Set(ctx, "tasks", `[]`))
	value, ok, err := repo.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, value)
}

func TestGet_CancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := repo.Get(ctx, "tasks")
	assert.Error(t, err)
}
