package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_QuietByDefault(t *testing.T) {
	t.Setenv(DebugEnv, "")
	buf := &bytes.Buffer{}

	logger, err := New(Options{Output: buf})
	require.NoError(t, err)

	logger.Info("loaded tasks", "count", 3)
	assert.Empty(t, buf.String())

	logger.Warn("save failed", "key", "tasks")
	assert.Contains(t, buf.String(), "save failed")
	assert.Contains(t, buf.String(), "key=tasks")
}

func TestNew_VerboseJSON(t *testing.T) {
	buf := &bytes.Buffer{}

	logger, err := New(Options{Format: FormatJSON, Verbose: true, Output: buf})
	require.NoError(t, err)

	logger.Debug("loaded tasks", "count", 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded tasks", entry["msg"])
	assert.EqualValues(t, 3, entry["count"])
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(Options{Format: "xml"})

	assert.Error(t, err)
}

func TestFromContext_Default(t *testing.T) {
	assert.Same(t, defaultLogger, FromContext(context.Background()))
}

func TestWithSessionID(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Options{Format: FormatLogfmt, Verbose: true, Output: buf})
	require.NoError(t, err)

	ctx, id := WithSessionID(WithContext(context.Background(), logger))
	require.NotEmpty(t, id)

	FromContext(ctx).Debug("hello")
	assert.Contains(t, buf.String(), "session_id="+id)
}
