package cli

import (
	"context"

	"task-editor/internal/errors"
	"task-editor/internal/logging"
)

// ResetCommand deletes the stored task blob. It is the way out when the
// stored data cannot be read.
type ResetCommand struct {
	app *App
}

// NewResetCommand creates a new reset command handler
func NewResetCommand(app *App) *ResetCommand {
	return &ResetCommand{app: app}
}

// Execute runs the reset command.
func (c *ResetCommand) Execute(ctx context.Context, args []string) error {
	if c.app.store == nil {
		return errors.NewInvalidStateError("reset", "no storage is configured")
	}

	key := c.app.config.Storage.Key
	if err := c.app.store.Remove(ctx, key); err != nil {
		return c.app.errors.Handle("reset", errors.FromStorage("remove", err))
	}

	logging.FromContext(ctx).Info("stored tasks removed", "key", key)
	c.app.printf("Removed stored tasks under key %q\n", key)
	return nil
}
