package cli

import (
	"context"

	"task-editor/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command. Deleting an unknown id succeeds and
// leaves storage untouched.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: te delete ID")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if _, err := c.app.service.GetTask(id); err != nil {
		if c.app.errors.IsNotFoundError(err) {
			c.app.printf("No task %s; nothing to delete\n", id)
			return nil
		}
		return c.app.errors.Handle("delete task", err)
	}

	if err := c.app.service.DeleteTask(ctx, id); err != nil {
		return c.app.errors.Handle("delete task", err)
	}

	c.app.printf("Deleted task %s\n", id)
	return nil
}
