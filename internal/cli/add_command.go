package cli

import (
	"context"

	"task-editor/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute runs the add command. args are NAME and DESCRIPTION.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "add", "usage: te add NAME DESCRIPTION")
	}

	task, err := c.app.service.AddTask(ctx, args[0], args[1])
	if err != nil {
		return c.app.errors.Handle("add task", err)
	}

	c.app.printf("Added task %s: %s\n", task.ID, task.Name)
	return nil
}
