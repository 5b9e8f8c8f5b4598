package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Log output formats.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

const sessionIDKey = "session_id"

// Options configures New.
type Options struct {
	Format  string
	Verbose bool
	Output  io.Writer
}

var defaultLogger = slog.New(log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel}))

// New builds a slog.Logger whose handler is a charmbracelet logger.
// Verbose or TE_DEBUG lowers the level to debug; otherwise only warnings and
// errors are written so normal command output stays clean.
func New(opts Options) (*slog.Logger, error) {
	formatter, err := formatterFor(opts.Format)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := log.WarnLevel
	if opts.Verbose || DebugEnabled() {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: level == log.DebugLevel,
		Prefix:          "te",
	})
	return slog.New(handler), nil
}

func formatterFor(format string) (log.Formatter, error) {
	switch format {
	case "", FormatText:
		return log.TextFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown log format %q", format)
	}
}

type contextKey struct{}

var loggerKey = &contextKey{}

// FromContext returns the logger from context, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return defaultLogger
}

// WithContext returns a new context that carries the given logger.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// WithSessionID tags the context logger with a fresh session id and returns
// the id alongside the new context.
func WithSessionID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	l := FromContext(ctx).With(sessionIDKey, id)
	return WithContext(ctx, l), id
}
