package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"task-editor/internal/config"
	"task-editor/internal/errors"
	"task-editor/internal/logging"
)

// skipOpenAnnotation marks commands that must work even when the stored
// tasks cannot be loaded.
const skipOpenAnnotation = "te/skip-open"

// AppFactory builds the App for a resolved configuration. When open is false
// the task service is left unloaded. cleanup releases the blob store.
type AppFactory func(ctx context.Context, cfg *config.Config, open bool) (app *App, cleanup func() error, err error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory AppFactory
	app     *App
	cleanup func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, factory AppFactory) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "te",
		Short: "A command-line task editor",
		Long: `Task Editor (te) keeps a list of tasks, each with a name, a description
and a completed flag. Every change is saved immediately.

EXAMPLES:
  te add "Write report" "Quarterly numbers for finance"
  te list                                  # All tasks
  te list --active "report"                # Active tasks mentioning "report"
  te edit 1712345678901 --name "Write Q3 report"
  te toggle 1712345678901                  # Complete or reopen
  te delete 1712345678901
  te shell                                 # Interactive form

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  The config file is $TE_CONFIG, or config.toml in the storage directory.

  Storage:
    TE_STORAGE_BACKEND       sqlite, redis, postgres or memory (default: sqlite)
    TE_STORAGE_KEY           Key the task list is stored under (default: tasks)
    TE_STORAGE_DIR           SQLite directory (default: ~/.te)
    TE_STORAGE_FILENAME      SQLite filename (default: te.db)
    TE_REDIS_URL             Redis URL (default: redis://localhost:6379/0)
    TE_POSTGRES_URL          PostgreSQL URL
    TE_STORAGE_TIMEOUT       Per-operation storage timeout (default: 5s)

  Tasks:
    TE_ID_STRATEGY           clock or sequence (default: clock)
    TE_TASK_NAME_MAX         Maximum name length, 0 for none (default: 0)
    TE_TASK_DESCRIPTION_MAX  Maximum description length, 0 for none (default: 0)

  Display:
    TE_TIME_DISPLAY_FORMAT   Time format (default: 2006-01-02 15:04)
    TE_DISPLAY_RELATIVE_TIME Show times as "3 hours ago" (default: true)
    TE_LIST_DEFAULT_FORMAT   table, json or csv (default: table)

  Application:
    TE_APP_TIMEOUT           Timeout for one command (default: 30s)
    TE_APP_VERBOSE           Debug logging (default: false)
    TE_LOG_FORMAT            text, json or logfmt (default: text)
    TE_DEBUG                 Any value enables debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and releases the store afterwards.
func (r *RootCommand) Execute(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.cleanup != nil {
		if closeErr := r.cleanup(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close storage: %w", closeErr)
		}
		r.cleanup = nil
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("backend", "", "Storage backend: sqlite, redis, postgres, memory (overrides TE_STORAGE_BACKEND)")
	flags.String("key", "", "Storage key (overrides TE_STORAGE_KEY)")
	flags.String("dir", "", "SQLite directory (overrides TE_STORAGE_DIR)")
	flags.String("filename", "", "SQLite filename (overrides TE_STORAGE_FILENAME)")
	flags.String("redis-url", "", "Redis URL (overrides TE_REDIS_URL)")
	flags.String("postgres-url", "", "PostgreSQL URL (overrides TE_POSTGRES_URL)")
	flags.Duration("storage-timeout", 0, "Storage operation timeout (overrides TE_STORAGE_TIMEOUT)")

	// Tasks configuration
	flags.String("id-strategy", "", "Id strategy: clock or sequence (overrides TE_ID_STRATEGY)")

	// Display configuration
	flags.String("time-format", "", "Time display format (overrides TE_TIME_DISPLAY_FORMAT)")
	flags.Bool("relative-time", true, "Show relative times (overrides TE_DISPLAY_RELATIVE_TIME)")

	// Application configuration
	flags.Duration("timeout", 0, "Command timeout (overrides TE_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides TE_APP_VERBOSE)")
	flags.String("log-format", "", "Log format: text, json, logfmt (overrides TE_LOG_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	addCmd := &cobra.Command{
		Use:   "add NAME DESCRIPTION",
		Short: "Add a task",
		Long:  "Add a task with the given name and description. Both must contain more than whitespace and are stored exactly as given.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, args)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list [TEXT]",
		Short: "List tasks",
		Long: `List tasks in the order they were added.

TEXT filters by a case-insensitive match on name or description.

Examples:
  te list                       # All tasks
  te list --completed           # Completed tasks only
  te list "invoice" --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			active, _ := cmd.Flags().GetBool("active")
			completed, _ := cmd.Flags().GetBool("completed")
			format, _ := cmd.Flags().GetString("format")
			if active && completed {
				return fmt.Errorf("--active and --completed cannot be combined")
			}

			opts := ListOptions{Format: format}
			if len(args) > 0 {
				opts.Text = args[0]
			}
			if active || completed {
				opts.Completed = &completed
			}

			return r.run(cmd, func(ctx context.Context) error {
				return NewListCommand(r.app).List(ctx, opts)
			})
		},
	}
	listCmd.Flags().Bool("active", false, "Only tasks that are not completed")
	listCmd.Flags().Bool("completed", false, "Only completed tasks")
	listCmd.Flags().StringP("format", "f", "", "Output format: table, json, csv (overrides TE_LIST_DEFAULT_FORMAT)")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, args)
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a task's name or description",
		Long:  "Change a task's name, description or both. A field that is not given keeps its current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var name, description *string
			if cmd.Flags().Changed("name") {
				value, _ := cmd.Flags().GetString("name")
				name = &value
			}
			if cmd.Flags().Changed("description") {
				value, _ := cmd.Flags().GetString("description")
				description = &value
			}

			return r.run(cmd, func(ctx context.Context) error {
				return NewEditCommand(r.app).Edit(ctx, id, name, description)
			})
		},
	}
	editCmd.Flags().StringP("name", "n", "", "New name")
	editCmd.Flags().StringP("description", "d", "", "New description")

	toggleCmd := &cobra.Command{
		Use:   "toggle ID",
		Short: "Complete or reopen a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, args)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task",
		Long:  "Delete a task. Deleting an id that does not exist is not an error.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, args)
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var statsArgs []string
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				statsArgs = []string{FormatJSON}
			}
			return r.dispatch(cmd, statsArgs)
		},
	}
	statsCmd.Flags().Bool("json", false, "Print counts as JSON")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove all stored tasks",
		Long: `Remove the stored task list. Use this when the stored data cannot be read.

This operation cannot be undone.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipOpenAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, args)
		},
	}

	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session with a task form.

Use "edit ID" to load a task, "name" and "desc" to change the form,
then "submit". Type "help" inside the shell for all commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The shell waits on the user, so no command timeout applies.
			WithInput(cmd.InOrStdin())(r.app)
			return r.app.Run(r.app.Context(cmd.Context()), []string{cmd.Name()})
		},
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		showCmd,
		editCmd,
		toggleCmd,
		deleteCmd,
		statsCmd,
		resetCmd,
		shellCmd,
	)
}

// run executes fn under the application timeout with the app's logger attached.
func (r *RootCommand) run(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(r.app.Context(cmd.Context()), r.app.config.Application.Timeout)
	defer cancel()
	err := fn(ctx)
	if err != nil && !errors.IsUserError(err) {
		logging.FromContext(ctx).Error("command failed",
			"command", cmd.Name(), "code", r.app.errors.GetErrorCode(err), "error", err)
	}
	return err
}

// dispatch runs the registry command named like cmd with the parsed args.
func (r *RootCommand) dispatch(cmd *cobra.Command, args []string) error {
	return r.run(cmd, func(ctx context.Context) error {
		return r.app.Run(ctx, append([]string{cmd.Name()}, args...))
	})
}

// setup resolves configuration from flags and builds the App.
func (r *RootCommand) setup(cmd *cobra.Command) error {
	cfg, err := r.loader.LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return err
	}

	open := cmd.Annotations[skipOpenAnnotation] != "true"
	app, cleanup, err := r.factory(cmd.Context(), cfg, open)
	if err != nil {
		return err
	}
	r.app = app
	r.cleanup = cleanup
	return nil
}

// getOverridesFromFlags collects the global flags the user actually set.
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		value, _ := flags.GetString(name)
		return &value
	}

	overrides.Backend = stringFlag("backend")
	overrides.Key = stringFlag("key")
	overrides.Dir = stringFlag("dir")
	overrides.Filename = stringFlag("filename")
	overrides.RedisURL = stringFlag("redis-url")
	overrides.PostgresURL = stringFlag("postgres-url")
	overrides.IDStrategy = stringFlag("id-strategy")
	overrides.TimeFormat = stringFlag("time-format")
	overrides.LogFormat = stringFlag("log-format")

	if flags.Changed("storage-timeout") {
		value, _ := flags.GetDuration("storage-timeout")
		overrides.StorageTimeout = &value
	}
	if flags.Changed("relative-time") {
		value, _ := flags.GetBool("relative-time")
		overrides.RelativeTime = &value
	}
	if flags.Changed("timeout") {
		value, _ := flags.GetDuration("timeout")
		overrides.Timeout = &value
	}
	if flags.Changed("verbose") {
		value, _ := flags.GetBool("verbose")
		overrides.Verbose = &value
	}

	return overrides
}
