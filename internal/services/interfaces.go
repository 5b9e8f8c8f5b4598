package services

import (
	"context"

	"task-editor/internal/domain"
)

// Persister loads and saves the whole task collection.
type Persister interface {
	Load(ctx context.Context) ([]domain.Task, error)
	Save(ctx context.Context, tasks []domain.Task) error
}

// SubmitResult describes what a form submission did.
type SubmitResult struct {
	Task    *domain.Task `json:"task"`
	Updated bool         `json:"updated"`
}

// TaskService owns the task collection and the editing cursor. It is not
// safe for concurrent use.
type TaskService interface {
	// Lifecycle
	Open(ctx context.Context) error
	IsOpen() bool
	LoadError() error

	// Read operations
	Tasks() []domain.Task
	List(filter domain.ListFilter) []domain.Task
	GetTask(id domain.TaskID) (*domain.Task, error)
	Stats() domain.Stats

	// Mutations; each one saves the new collection before returning
	AddTask(ctx context.Context, name, description string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id domain.TaskID, name, description string) (*domain.Task, error)
	DeleteTask(ctx context.Context, id domain.TaskID) error
	ToggleComplete(ctx context.Context, id domain.TaskID) (*domain.Task, error)

	// Editing cursor
	StartEdit(id domain.TaskID) (*domain.Task, error)
	EditingTask() (*domain.Task, bool)
	CancelEdit()
	Submit(ctx context.Context, name, description string) (*SubmitResult, error)
}
