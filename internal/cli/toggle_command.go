package cli

import (
	"context"

	"task-editor/internal/errors"
)

// ToggleCommand flips a task between active and completed.
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute runs the toggle command. args is the task id.
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "toggle", "usage: te toggle ID")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	task, err := c.app.service.ToggleComplete(ctx, id)
	if err != nil {
		return c.app.errors.Handle("toggle task", err)
	}

	if task.Completed {
		c.app.printf("Completed task %s: %s\n", task.ID, task.Name)
	} else {
		c.app.printf("Reopened task %s: %s\n", task.ID, task.Name)
	}
	return nil
}
