package cli

import (
	"context"
	"strings"

	"task-editor/internal/domain"
	"task-editor/internal/logging"
)

// ListOptions narrows and formats a listing.
type ListOptions struct {
	Text      string
	Completed *bool
	Format    string
}

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute lists tasks whose name or description contains the joined args.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	return c.List(ctx, ListOptions{Text: strings.Join(args, " ")})
}

// List prints the tasks accepted by opts in insertion order. An empty
// format falls back to the configured default.
func (c *ListCommand) List(ctx context.Context, opts ListOptions) error {
	format := opts.Format
	if format == "" {
		format = c.app.config.Display.ListFormat
	}

	c.app.warnLoadError(ctx)

	tasks := c.app.service.List(domain.ListFilter{
		Completed: opts.Completed,
		Text:      opts.Text,
	})
	logging.FromContext(ctx).Debug("listing tasks", "count", len(tasks), "format", format)

	return c.app.writeTasks(tasks, format)
}
