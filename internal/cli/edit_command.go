package cli

import (
	"context"

	"task-editor/internal/domain"
	"task-editor/internal/errors"
)

// EditCommand replaces a task's name and description.
type EditCommand struct {
	app *App
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute runs the edit command. args are ID, NAME and DESCRIPTION.
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.NewInvalidInputError("command", "edit", "usage: te edit ID NAME DESCRIPTION")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return c.Edit(ctx, id, &args[1], &args[2])
}

// Edit updates task id. A nil field keeps the task's current value.
func (c *EditCommand) Edit(ctx context.Context, id domain.TaskID, name, description *string) error {
	if name == nil && description == nil {
		return errors.NewInvalidInputError("edit", id, "nothing to change; pass --name or --description")
	}

	current, err := c.app.service.GetTask(id)
	if err != nil {
		return c.app.errors.Handle("edit task", err)
	}

	newName, newDescription := current.Name, current.Description
	if name != nil {
		newName = *name
	}
	if description != nil {
		newDescription = *description
	}

	task, err := c.app.service.UpdateTask(ctx, id, newName, newDescription)
	if err != nil {
		return c.app.errors.Handle("edit task", err)
	}

	c.app.printf("Updated task %s: %s\n", task.ID, task.Name)
	return nil
}
