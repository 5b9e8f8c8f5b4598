package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"task-editor/internal/domain"
	"task-editor/internal/errors"
	"task-editor/internal/logging"
)

const shellHelp = `commands:
  add NAME | DESCRIPTION   add a task
  edit ID                  load a task into the form
  name TEXT                set the form's name
  desc TEXT                set the form's description
  submit                   save the form (adds, or updates the task being edited)
  cancel                   clear the form and stop editing
  show ID                  print one task
  toggle ID                complete or reopen a task
  delete ID                delete a task
  list [TEXT]              list tasks
  stats                    show counts
  help                     show this help
  quit                     leave the shell
`

// ShellCommand runs an interactive session over the task service. It keeps a
// form draft and drives the service's edit cursor with it.
type ShellCommand struct {
	app *App
}

// NewShellCommand creates a new shell command handler
func NewShellCommand(app *App) *ShellCommand {
	return &ShellCommand{app: app}
}

// formDraft holds the field values typed so far. editing is the id loaded by
// "edit", or empty for a new task.
type formDraft struct {
	name        string
	description string
	editing     domain.TaskID
}

// Execute reads commands from the app's input until EOF or quit.
func (c *ShellCommand) Execute(ctx context.Context, args []string) error {
	return c.Run(ctx, c.app.in)
}

// Run reads commands from in until EOF or quit.
func (c *ShellCommand) Run(ctx context.Context, in io.Reader) error {
	logger := logging.FromContext(ctx)
	logger.Debug("shell started")

	c.app.warnLoadError(ctx)

	var draft formDraft
	scanner := bufio.NewScanner(in)
	for {
		c.app.printf("%s", c.prompt())
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		verb, rest := splitVerb(line)
		if verb == "quit" || verb == "exit" {
			break
		}
		if err := c.dispatch(ctx, &draft, verb, rest); err != nil {
			fmt.Fprintf(c.app.errOut, "error: %v\n", c.app.errors.HandleSimple(err))
		}
		c.syncDraft(&draft)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	logger.Debug("shell finished")
	return nil
}

func (c *ShellCommand) dispatch(ctx context.Context, draft *formDraft, verb, rest string) error {
	switch verb {
	case "help":
		c.app.printf("%s", shellHelp)
		return nil
	case "add":
		name, description, ok := strings.Cut(rest, "|")
		if !ok {
			return errors.NewInvalidInputError("command", "add", "usage: add NAME | DESCRIPTION")
		}
		return c.app.Run(ctx, []string{"add", strings.TrimSpace(name), strings.TrimSpace(description)})
	case "edit":
		return c.startEdit(draft, rest)
	case "name":
		draft.name = rest
		return nil
	case "desc", "description":
		draft.description = rest
		return nil
	case "submit":
		return c.submit(ctx, draft)
	case "cancel":
		c.app.service.CancelEdit()
		*draft = formDraft{}
		c.app.printf("Form cleared\n")
		return nil
	case "list", "show", "toggle", "delete", "stats":
		return c.app.Run(ctx, append([]string{verb}, strings.Fields(rest)...))
	default:
		return errors.NewInvalidInputError("command", verb, "unknown command; type help")
	}
}

func (c *ShellCommand) startEdit(draft *formDraft, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	task, err := c.app.service.StartEdit(id)
	if err != nil {
		return c.app.errors.HandleSimple(err)
	}

	*draft = formDraft{name: task.Name, description: task.Description, editing: task.ID}
	c.app.printf("Editing task %s: %s\n", task.ID, task.Name)
	return nil
}

func (c *ShellCommand) submit(ctx context.Context, draft *formDraft) error {
	result, err := c.app.service.Submit(ctx, draft.name, draft.description)
	if err != nil {
		if c.app.errors.IsValidationError(err) {
			return c.app.errors.HandleSimple(err)
		}
		return c.app.errors.Handle("submit", err)
	}

	*draft = formDraft{}
	if result.Updated {
		c.app.printf("Updated task %s: %s\n", result.Task.ID, result.Task.Name)
	} else {
		c.app.printf("Added task %s: %s\n", result.Task.ID, result.Task.Name)
	}
	return nil
}

// syncDraft drops an edit draft whose task is no longer being edited, which
// happens when that task is deleted.
func (c *ShellCommand) syncDraft(draft *formDraft) {
	if draft.editing.IsZero() {
		return
	}
	if task, ok := c.app.service.EditingTask(); ok && task.ID == draft.editing {
		return
	}
	c.app.printf("Edit of task %s ended\n", draft.editing)
	*draft = formDraft{}
}

func (c *ShellCommand) prompt() string {
	if task, ok := c.app.service.EditingTask(); ok {
		return fmt.Sprintf("te[edit %s]> ", task.ID)
	}
	return "te> "
}

func splitVerb(line string) (string, string) {
	verb, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(verb), strings.TrimSpace(rest)
}
