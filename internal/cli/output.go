package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"task-editor/internal/domain"
	"task-editor/internal/errors"
	"task-editor/internal/persistence"
)

// List output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

const descriptionColumnWidth = 40

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// taskView is the machine-readable shape of a task in json and csv output.
// The id is written the way the store writes it.
type taskView struct {
	ID          persistence.RecordID `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Completed   bool                 `json:"completed"`
	CreatedAt   string               `json:"createdAt,omitempty"`
}

func newTaskView(task domain.Task) taskView {
	view := taskView{
		ID:          persistence.RecordID(task.ID),
		Name:        task.Name,
		Description: task.Description,
		Completed:   task.Completed,
	}
	if !task.CreatedAt.IsZero() {
		view.CreatedAt = task.CreatedAt.UTC().Format(time.RFC3339)
	}
	return view
}

// writeTasks renders tasks in one of the list formats.
func (a *App) writeTasks(tasks []domain.Task, format string) error {
	switch format {
	case FormatTable:
		a.writeTable(tasks)
		return nil
	case FormatJSON:
		return writeJSON(a.out, tasks)
	case FormatCSV:
		return writeCSV(a.out, tasks)
	default:
		return errors.NewInvalidInputError("format", format, "must be one of table, json, csv")
	}
}

func (a *App) writeTable(tasks []domain.Task) {
	if len(tasks) == 0 {
		a.printf("No tasks found\n")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DONE", "NAME", "DESCRIPTION", "CREATED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, task := range tasks {
		t.Row(
			task.ID.String(),
			checkbox(task.Completed),
			task.Name,
			summarize(task.Description, descriptionColumnWidth),
			a.formatTime(task.CreatedAt),
		)
	}
	fmt.Fprintln(a.out, t.Render())
}

// writeTaskDetail prints every field of one task.
func (a *App) writeTaskDetail(task domain.Task) {
	status := "active"
	if task.Completed {
		status = "completed"
	}
	a.printf("ID:          %s\n", task.ID)
	a.printf("Name:        %s\n", task.Name)
	a.printf("Status:      %s\n", status)
	a.printf("Created:     %s\n", a.formatTime(task.CreatedAt))
	a.printf("Description:\n")
	for _, line := range strings.Split(task.Description, "\n") {
		a.printf("  %s\n", line)
	}
}

func writeJSON(w io.Writer, tasks []domain.Task) error {
	views := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, newTaskView(task))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(views); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, tasks []domain.Task) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"id", "name", "description", "completed", "created_at"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, task := range tasks {
		view := newTaskView(task)
		row := []string{
			string(view.ID),
			view.Name,
			view.Description,
			strconv.FormatBool(view.Completed),
			view.CreatedAt,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// summarize flattens text to one line and cuts it to max runes.
func summarize(text string, max int) string {
	line := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(line) <= max {
		return line
	}
	runes := []rune(line)
	return string(runes[:max-1]) + "…"
}
