package cli

import (
	"context"
	"maps"
	"slices"
	"strings"

	"task-editor/internal/errors"
)

// Command is one te verb bound to an App.
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// builtins lists every verb the registry knows and how to bind it.
var builtins = map[string]func(*App) Command{
	"add":    func(a *App) Command { return NewAddCommand(a) },
	"list":   func(a *App) Command { return NewListCommand(a) },
	"show":   func(a *App) Command { return NewShowCommand(a) },
	"edit":   func(a *App) Command { return NewEditCommand(a) },
	"toggle": func(a *App) Command { return NewToggleCommand(a) },
	"delete": func(a *App) Command { return NewDeleteCommand(a) },
	"stats":  func(a *App) Command { return NewStatsCommand(a) },
	"reset":  func(a *App) Command { return NewResetCommand(a) },
	"shell":  func(a *App) Command { return NewShellCommand(a) },
}

// CommandRegistry dispatches verbs by name. The shell reuses it so a line
// typed at the prompt behaves like the same words on the command line.
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry binds every built-in command to app.
func NewCommandRegistry(app *App) *CommandRegistry {
	r := &CommandRegistry{commands: make(map[string]Command, len(builtins))}
	for name, bind := range builtins {
		r.Register(name, bind(app))
	}
	return r
}

// Register adds or replaces the command for name.
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

func (r *CommandRegistry) Lookup(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Execute runs the command registered as name.
func (r *CommandRegistry) Execute(ctx context.Context, name string, args []string) error {
	command, ok := r.Lookup(name)
	if !ok {
		return errors.NewInvalidInputError("command", name, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names returns the registered names sorted.
func (r *CommandRegistry) Names() []string {
	return slices.Sorted(maps.Keys(r.commands))
}

// GetUsage returns a one-line synopsis listing every verb.
func (r *CommandRegistry) GetUsage() string {
	return "usage: te <" + strings.Join(r.Names(), "|") + "> [args]"
}
