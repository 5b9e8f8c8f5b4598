package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
)

// StatsCommand prints task counts.
type StatsCommand struct {
	app *App
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app}
}

// Execute runs the stats command. A single "json" argument switches to JSON.
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	c.app.warnLoadError(ctx)

	stats := c.app.service.Stats()
	if len(args) == 1 && args[0] == FormatJSON {
		data, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
		c.app.printf("%s\n", data)
		return nil
	}

	c.app.printf("Tasks (%s)\n", humanize.Comma(int64(stats.Total)))
	c.app.printf("  active:    %s\n", humanize.Comma(int64(stats.Active)))
	c.app.printf("  completed: %s\n", humanize.Comma(int64(stats.Completed)))
	return nil
}
