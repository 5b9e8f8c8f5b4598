package cli

import (
	"context"

	"github.com/stretchr/testify/mock"

	"task-editor/internal/domain"
	"task-editor/internal/services"
)

// mockTaskService is a testify mock of services.TaskService.
type mockTaskService struct {
	mock.Mock
}

var _ services.TaskService = (*mockTaskService)(nil)

func (m *mockTaskService) Open(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockTaskService) IsOpen() bool {
	return m.Called().Bool(0)
}

func (m *mockTaskService) LoadError() error {
	return m.Called().Error(0)
}

func (m *mockTaskService) Tasks() []domain.Task {
	tasks, _ := m.Called().Get(0).([]domain.Task)
	return tasks
}

func (m *mockTaskService) List(filter domain.ListFilter) []domain.Task {
	tasks, _ := m.Called(filter).Get(0).([]domain.Task)
	return tasks
}

func (m *mockTaskService) GetTask(id domain.TaskID) (*domain.Task, error) {
	args := m.Called(id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) Stats() domain.Stats {
	return m.Called().Get(0).(domain.Stats)
}

func (m *mockTaskService) AddTask(ctx context.Context, name, description string) (*domain.Task, error) {
	args := m.Called(ctx, name, description)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, id domain.TaskID, name, description string) (*domain.Task, error) {
	args := m.Called(ctx, id, name, description)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, id domain.TaskID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTaskService) ToggleComplete(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) StartEdit(id domain.TaskID) (*domain.Task, error) {
	args := m.Called(id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) EditingTask() (*domain.Task, bool) {
	args := m.Called()
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Bool(1)
}

func (m *mockTaskService) CancelEdit() {
	m.Called()
}

func (m *mockTaskService) Submit(ctx context.Context, name, description string) (*services.SubmitResult, error) {
	args := m.Called(ctx, name, description)
	result, _ := args.Get(0).(*services.SubmitResult)
	return result, args.Error(1)
}

// mockStore is a testify mock of BlobRemover.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
