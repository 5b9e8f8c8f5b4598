package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"task-editor/internal/config"
	"task-editor/internal/domain"
	"task-editor/internal/errors"
	"task-editor/internal/logging"
	"task-editor/internal/services"
)

// BlobRemover deletes the stored blob. config.Storage satisfies it.
type BlobRemover interface {
	Remove(ctx context.Context, key string) error
}

// App bundles what the command handlers need: the task service, the blob
// store for reset, configuration and the output streams.
type App struct {
	service  services.TaskService
	store    BlobRemover
	config   *config.Config
	logger   *slog.Logger
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	registry *CommandRegistry
	errors   *ErrorHandler
	warned   bool
}

// AppOption customises an App.
type AppOption func(*App)

// WithOutput redirects normal and diagnostic output.
func WithOutput(out, errOut io.Writer) AppOption {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

// WithInput sets where the shell reads commands from.
func WithInput(in io.Reader) AppOption {
	return func(a *App) {
		a.in = in
	}
}

// WithLogger sets the logger attached to every command's context.
func WithLogger(logger *slog.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithStore sets the blob store used by reset.
func WithStore(store BlobRemover) AppOption {
	return func(a *App) {
		a.store = store
	}
}

// NewApp creates an App around service. A nil cfg uses defaults.
func NewApp(service services.TaskService, cfg *config.Config, opts ...AppOption) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		service: service,
		config:  cfg,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
		errors:  NewErrorHandler(),
	}
	for _, opt := range opts {
		opt(app)
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes a registered command by name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// Context attaches the app's logger to ctx.
func (a *App) Context(ctx context.Context) context.Context {
	if a.logger == nil {
		return ctx
	}
	return logging.WithContext(ctx, a.logger)
}

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// warnLoadError tells the user, once, that the stored list could not be
// read and the session started empty.
func (a *App) warnLoadError(ctx context.Context) {
	err := a.service.LoadError()
	if err == nil || a.warned {
		return
	}
	a.warned = true
	logging.FromContext(ctx).Debug("showing load warning", "error", err)
	fmt.Fprintf(a.errOut, "warning: %s\n", errors.GetUserMessage(err))
}

// formatTime renders a creation time per the display settings.
func (a *App) formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	if a.config.Display.RelativeTime {
		return humanize.Time(t)
	}
	return t.Local().Format(a.config.Display.TimeFormat)
}

// parseID reads a task id argument. Any id the store can hold is accepted,
// including negative numbers and words.
func parseID(arg string) (domain.TaskID, error) {
	id, ok := domain.ParseTaskID(arg)
	if !ok {
		return "", errors.NewInvalidInputError("id", arg, "must not be empty")
	}
	return id, nil
}
