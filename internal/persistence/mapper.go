package persistence

import (
	"fmt"
	"time"

	"task-editor/internal/domain"
)

// TimeLayout is the layout createdAt is written in.
const TimeLayout = time.RFC3339Nano

// TaskMapper converts between domain tasks and stored records.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to its stored form. A zero CreatedAt is
// left out.
func (m *TaskMapper) ToRecord(task domain.Task) Record {
	record := Record{
		ID:          RecordID(task.ID),
		Name:        task.Name,
		Description: task.Description,
		Completed:   task.Completed,
	}
	if !task.CreatedAt.IsZero() {
		record.CreatedAt = task.CreatedAt.UTC().Format(TimeLayout)
	}
	return record
}

// FromRecord converts a stored record to a domain Task.
func (m *TaskMapper) FromRecord(record Record) (domain.Task, error) {
	var createdAt time.Time
	if record.CreatedAt != "" {
		parsed, err := time.Parse(TimeLayout, record.CreatedAt)
		if err != nil {
			return domain.Task{}, fmt.Errorf("task %s: invalid createdAt %q: %w", record.ID, record.CreatedAt, err)
		}
		createdAt = parsed
	}
	return domain.Task{
		ID:          domain.TaskID(record.ID),
		Name:        record.Name,
		Description: record.Description,
		Completed:   record.Completed,
		CreatedAt:   createdAt,
	}, nil
}

// ToRecords converts a slice of domain Tasks to records.
func (m *TaskMapper) ToRecords(tasks []domain.Task) []Record {
	records := make([]Record, len(tasks))
	for i, task := range tasks {
		records[i] = m.ToRecord(task)
	}
	return records
}

// FromRecords converts records to domain Tasks, stopping at the first bad one.
func (m *TaskMapper) FromRecords(records []Record) ([]domain.Task, error) {
	tasks := make([]domain.Task, len(records))
	for i, record := range records {
		task, err := m.FromRecord(record)
		if err != nil {
			return nil, err
		}
		tasks[i] = task
	}
	return tasks, nil
}
