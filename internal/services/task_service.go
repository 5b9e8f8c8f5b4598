package services

import (
	"context"
	"time"

	"task-editor/internal/domain"
	"task-editor/internal/errors"
	"task-editor/internal/idgen"
	"task-editor/internal/logging"
	"task-editor/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	persister     Persister
	taskValidator *validation.TaskValidator
	ids           idgen.Generator
	now           func() time.Time

	tasks   domain.Collection
	cursor  domain.EditCursor
	loaded  bool
	loadErr error
}

// Option configures a TaskService.
type Option func(*taskServiceImpl)

// WithClock sets the clock used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *taskServiceImpl) {
		s.now = now
	}
}

// WithIDGenerator sets the id source.
func WithIDGenerator(g idgen.Generator) Option {
	return func(s *taskServiceImpl) {
		s.ids = g
	}
}

// WithValidator sets the validator for name and description.
func WithValidator(v *validation.TaskValidator) Option {
	return func(s *taskServiceImpl) {
		s.taskValidator = v
	}
}

// NewTaskService creates a new TaskService instance. Call Open before any mutation.
func NewTaskService(persister Persister, opts ...Option) TaskService {
	s := &taskServiceImpl{
		persister:     persister,
		taskValidator: validation.NewTaskValidator(),
		now:           time.Now,
		tasks:         domain.Collection{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = idgen.NewClockGenerator(s.now)
	}
	return s
}

// Open performs the one-time load. A corrupt blob leaves the store open with
// an empty collection and the failure available from LoadError; the blob is
// not rewritten until the next successful mutation.
func (s *taskServiceImpl) Open(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	logger := logging.FromContext(ctx)
	tasks, err := s.persister.Load(ctx)
	switch {
	case err == nil:
		s.tasks = domain.Collection(tasks)
	case errors.IsErrorType(err, errors.ErrorTypeCorruptData):
		logger.Warn("stored tasks are unreadable, starting empty", "error", err)
		s.tasks = domain.Collection{}
		s.loadErr = err
	default:
		return err
	}

	s.ids.Observe(s.tasks.MaxNumericID())
	s.loaded = true
	logger.Debug("task store opened", "count", s.tasks.Len())
	return nil
}

// IsOpen reports whether Open has completed.
func (s *taskServiceImpl) IsOpen() bool {
	return s.loaded
}

// LoadError returns the corrupt data error met by Open, if any.
func (s *taskServiceImpl) LoadError() error {
	return s.loadErr
}

// Tasks returns a copy of the collection in insertion order.
func (s *taskServiceImpl) Tasks() []domain.Task {
	return s.tasks.Clone()
}

// List returns the tasks accepted by filter, in insertion order.
func (s *taskServiceImpl) List(filter domain.ListFilter) []domain.Task {
	return s.tasks.Filter(filter)
}

// GetTask retrieves a task by its ID
func (s *taskServiceImpl) GetTask(id domain.TaskID) (*domain.Task, error) {
	task, ok := s.tasks.Find(id)
	if !ok {
		return nil, taskNotFound(id)
	}
	return &task, nil
}

// Stats counts total, completed and active tasks.
func (s *taskServiceImpl) Stats() domain.Stats {
	return domain.StatsOf(s.tasks)
}

// AddTask appends a new incomplete task.
func (s *taskServiceImpl) AddTask(ctx context.Context, name, description string) (*domain.Task, error) {
	if err := s.requireOpen("add task"); err != nil {
		return nil, err
	}

	if err := s.validate(name, description); err != nil {
		return nil, err
	}

	n, err := s.ids.Next()
	if err != nil {
		return nil, errors.NewInvalidStateError("add task", err.Error())
	}

	task := domain.NewTask(domain.NumericID(n), name, description, s.now().UTC())
	if err := s.commit(ctx, s.tasks.Append(task)); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("task added", "id", task.ID)
	return &task, nil
}

// UpdateTask replaces name and description of an existing task in place.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id domain.TaskID, name, description string) (*domain.Task, error) {
	if err := s.requireOpen("update task"); err != nil {
		return nil, err
	}

	if err := s.validate(name, description); err != nil {
		return nil, err
	}

	current, ok := s.tasks.Find(id)
	if !ok {
		return nil, taskNotFound(id)
	}

	updated := current.WithContent(name, description)
	next, _ := s.tasks.Replace(updated)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("task updated", "id", id)
	return &updated, nil
}

// DeleteTask removes a task. Deleting an unknown id is a no-op and writes nothing.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id domain.TaskID) error {
	if err := s.requireOpen("delete task"); err != nil {
		return err
	}

	next, removed := s.tasks.Remove(id)
	if !removed {
		logging.FromContext(ctx).Debug("delete of unknown task ignored", "id", id)
		return nil
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	if s.cursor.IsEditing(id) {
		s.cursor.Clear()
	}
	logging.FromContext(ctx).Debug("task deleted", "id", id)
	return nil
}

// ToggleComplete flips the completed flag of a task.
func (s *taskServiceImpl) ToggleComplete(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	if err := s.requireOpen("toggle task"); err != nil {
		return nil, err
	}

	current, ok := s.tasks.Find(id)
	if !ok {
		return nil, taskNotFound(id)
	}

	toggled := current.Toggled()
	next, _ := s.tasks.Replace(toggled)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("task toggled", "id", id, "completed", toggled.Completed)
	return &toggled, nil
}

// StartEdit points the cursor at id. Completed tasks cannot be edited.
func (s *taskServiceImpl) StartEdit(id domain.TaskID) (*domain.Task, error) {
	task, ok := s.tasks.Find(id)
	if !ok {
		return nil, taskNotFound(id)
	}
	if task.Completed {
		return nil, errors.NewInvalidInputError("id", id, "completed tasks cannot be edited")
	}

	s.cursor.Start(id)
	return &task, nil
}

// EditingTask returns the task under the cursor.
func (s *taskServiceImpl) EditingTask() (*domain.Task, bool) {
	id, active := s.cursor.Current()
	if !active {
		return nil, false
	}
	task, ok := s.tasks.Find(id)
	if !ok {
		return nil, false
	}
	return &task, true
}

// CancelEdit returns the cursor to idle.
func (s *taskServiceImpl) CancelEdit() {
	s.cursor.Clear()
}

// Submit updates the task under the cursor, or adds a new one when idle.
// A successful update clears the cursor; a failure leaves it where it was.
func (s *taskServiceImpl) Submit(ctx context.Context, name, description string) (*SubmitResult, error) {
	id, editing := s.cursor.Current()
	if !editing {
		task, err := s.AddTask(ctx, name, description)
		if err != nil {
			return nil, err
		}
		return &SubmitResult{Task: task}, nil
	}

	task, err := s.UpdateTask(ctx, id, name, description)
	if err != nil {
		return nil, err
	}
	s.cursor.Clear()
	return &SubmitResult{Task: task, Updated: true}, nil
}

// commit saves next and only then makes it the current collection.
func (s *taskServiceImpl) commit(ctx context.Context, next domain.Collection) error {
	if err := s.persister.Save(ctx, next); err != nil {
		logging.FromContext(ctx).Error("saving tasks failed", "error", err)
		return err
	}
	s.tasks = next
	s.loadErr = nil
	return nil
}

func (s *taskServiceImpl) requireOpen(operation string) error {
	if !s.loaded {
		return errors.NewInvalidStateError(operation, "tasks are not loaded")
	}
	return nil
}

// validate checks name and description. Accepted values are stored exactly
// as given, surrounding whitespace included.
func (s *taskServiceImpl) validate(name, description string) error {
	if err := s.taskValidator.ValidateTaskInput(name, description); err != nil {
		return errors.NewValidationError("invalid task", err)
	}
	return nil
}

func taskNotFound(id domain.TaskID) error {
	return errors.NewNotFoundError("task", id.String())
}
