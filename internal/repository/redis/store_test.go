package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-editor/internal/errors"
)

// setupStore connects to the server named by TE_TEST_REDIS_URL under a
// unique prefix so runs never see each other's keys.
func setupStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TE_TEST_REDIS_URL not set")
	}

	store, err := New(context.Background(), url, "te-test:"+uuid.NewString()+":")
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Remove(context.Background(), "tasks")
		store.Close()
	})
	return store
}

func TestStore_GetMissing(t *testing.T) {
	store := setupStore(t)

	value, ok, err := store.Get(context.Background(), "tasks")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestStore_SetGetRemove(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tasks", `[{"id":1}]`))

	value, ok, err := store.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, value)

	require.NoError(t, store.Remove(ctx, "tasks"))
	_, ok, err = store.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(context.Background(), "not a url", "")

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewWithClient(client, "")
	defer store.Close()

	_, _, err := store.Get(context.Background(), "tasks")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))

	err = store.Set(context.Background(), "tasks", "[]")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
}

func TestStore_KeyPrefix(t *testing.T) {
	store := NewWithClient(redis.NewClient(&redis.Options{}), "app:")
	defer store.Close()

	assert.Equal(t, "app:tasks", store.key("tasks"))
}
