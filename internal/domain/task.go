package domain

import (
	"strings"
	"time"
)

// Task represents a task in the domain model.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID          TaskID
	Name        string
	Description string
	Completed   bool
	CreatedAt   time.Time
}

// NewTask creates an incomplete Task stamped with createdAt.
func NewTask(id TaskID, name, description string, createdAt time.Time) Task {
	return Task{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   createdAt,
	}
}

// IsValid checks the invariants every stored task satisfies: an id, and a
// name and description with non-whitespace content.
func (t Task) IsValid() bool {
	return !t.ID.IsZero() && strings.TrimSpace(t.Name) != "" && strings.TrimSpace(t.Description) != ""
}

// WithContent returns a copy with name and description replaced.
func (t Task) WithContent(name, description string) Task {
	t.Name = name
	t.Description = description
	return t
}

// Toggled returns a copy with the completion flag flipped.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}

// Matches reports whether text occurs in the name or description, ignoring case.
func (t Task) Matches(text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Name), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}
