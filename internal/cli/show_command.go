package cli

import (
	"context"

	"task-editor/internal/errors"
)

// ShowCommand prints one task in full.
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute runs the show command. args is the task id.
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "show", "usage: te show ID")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	c.app.warnLoadError(ctx)

	task, err := c.app.service.GetTask(id)
	if err != nil {
		return c.app.errors.Handle("show task", err)
	}

	c.app.writeTaskDetail(*task)
	return nil
}
