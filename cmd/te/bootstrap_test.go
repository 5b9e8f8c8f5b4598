package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-editor/internal/config"
)

func TestNewApp_Memory(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Storage.Backend = config.BackendMemory
	cfg.Tasks.IDStrategy = "sequence"

	app, cleanup, err := newApp(context.Background(), cfg, true)
	require.NoError(t, err)
	defer cleanup()

	assert.Same(t, cfg, app.Config())
	require.NoError(t, app.Run(context.Background(), []string{"add", "Name", "Details"}))
}

func TestNewApp_SQLiteFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.Storage.Dir = dir
	cfg.Tasks.IDStrategy = "sequence"
	ctx := context.Background()

	app, cleanup, err := newApp(ctx, cfg, true)
	require.NoError(t, err)
	require.NoError(t, app.Run(ctx, []string{"add", "Persisted", "Across runs"}))
	require.NoError(t, cleanup())

	app, cleanup, err = newApp(ctx, cfg, true)
	require.NoError(t, err)
	defer cleanup()
	require.NoError(t, app.Run(ctx, []string{"add", "Second", "Gets the next id"}))

	store, err := config.CreateStorage(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()
	blob, ok, err := store.Get(ctx, cfg.Storage.Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, blob, `"id":1`)
	assert.Contains(t, blob, `"id":2`)
}

func TestNewApp_UnknownLogFormat(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Storage.Backend = config.BackendMemory
	cfg.Application.LogFormat = "xml"

	_, _, err := newApp(context.Background(), cfg, true)

	assert.Error(t, err)
}
