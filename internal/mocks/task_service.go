package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Function fields for customizable behavior
	CreateTaskFn func(ctx context.Context, actor service.Identity, input service.CreateTaskInput) (*domain.Task, error)
	GetTaskFn    func(ctx context.Context, actor service.Identity, taskID uuid.UUID) (*domain.Task, error)
	ListTasksFn  func(ctx context.Context, actor service.Identity, status domain.TaskStatus, search string) ([]*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, actor service.Identity, taskID uuid.UUID, input service.UpdateTaskInput) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, actor service.Identity, taskID uuid.UUID) error

	// Default values used when functions aren't explicitly defined
	Task  *domain.Task
	Tasks []*domain.Task
	Err   error
}

// CreateTask implements the service.TaskService interface
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	actor service.Identity,
	input service.CreateTaskInput,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, actor, input)
	}
	return m.Task, m.Err
}

// GetTask implements the service.TaskService interface
func (m *MockTaskService) GetTask(
	ctx context.Context,
	actor service.Identity,
	taskID uuid.UUID,
) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, actor, taskID)
	}
	return m.Task, m.Err
}

// ListTasks implements the service.TaskService interface
func (m *MockTaskService) ListTasks(
	ctx context.Context,
	actor service.Identity,
	status domain.TaskStatus,
	search string,
) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, actor, status, search)
	}
	return m.Tasks, m.Err
}

// UpdateTask implements the service.TaskService interface
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	actor service.Identity,
	taskID uuid.UUID,
	input service.UpdateTaskInput,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, actor, taskID, input)
	}
	return m.Task, m.Err
}

// DeleteTask implements the service.TaskService interface
func (m *MockTaskService) DeleteTask(ctx context.Context, actor service.Identity, taskID uuid.UUID) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, actor, taskID)
	}
	return m.Err
}
