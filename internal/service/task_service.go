package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// completedEmailSubject is the subject line of every completion email.
const completedEmailSubject = "Task Completed"

// CreateTaskInput carries the fields for creating a task.
// OwnerID is honored only for admin callers; everyone else owns what
// they create.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      string // raw status value; empty defaults to pending
	OwnerID     *uuid.UUID
}

// UpdateTaskInput carries a partial update. Nil fields are left unchanged.
//
// Status holds the raw value supplied by the caller: the completion check
// is case-insensitive on this input, not on the stored enum. IsCompleted,
// when present, takes precedence over Status and forces the status to
// completed or pending.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *string
	IsCompleted *bool
}

// TaskService provides task CRUD scoped to the requesting identity and
// fires the completion reaction: whenever an update's supplied status is
// "completed" (case-insensitive), exactly one notification is inserted in
// the same transaction as the task update, and exactly one email is then
// dispatched synchronously. Email failures propagate to the caller.
type TaskService interface {
	// CreateTask creates a task owned by the caller, or by input.OwnerID
	// when the caller is an admin.
	CreateTask(ctx context.Context, actor Identity, input CreateTaskInput) (*domain.Task, error)

	// GetTask retrieves a task. Non-admins receive store.ErrTaskNotFound
	// for tasks they do not own.
	GetTask(ctx context.Context, actor Identity, taskID uuid.UUID) (*domain.Task, error)

	// ListTasks lists the caller's tasks (all tasks for admins), newest
	// first, optionally filtered by exact status and title substring.
	ListTasks(ctx context.Context, actor Identity, status domain.TaskStatus, search string) ([]*domain.Task, error)

	// UpdateTask applies a partial update and fires the completion
	// reaction when applicable. Ownership rules as for GetTask.
	UpdateTask(ctx context.Context, actor Identity, taskID uuid.UUID, input UpdateTaskInput) (*domain.Task, error)

	// DeleteTask deletes a task. Ownership rules as for GetTask.
	DeleteTask(ctx context.Context, actor Identity, taskID uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	txRunner          store.TxRunner
	taskStore         store.TaskStore
	notificationStore store.NotificationStore
	userStore         store.UserStore
	mailer            Mailer
	logger            *slog.Logger
}

// Ensure TaskServiceImpl implements TaskService
var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
func NewTaskService(
	txRunner store.TxRunner,
	taskStore store.TaskStore,
	notificationStore store.NotificationStore,
	userStore store.UserStore,
	mailer Mailer,
	log *slog.Logger,
) *TaskServiceImpl {
	if log == nil {
		log = slog.Default()
	}

	return &TaskServiceImpl{
		txRunner:          txRunner,
		taskStore:         taskStore,
		notificationStore: notificationStore,
		userStore:         userStore,
		mailer:            mailer,
		logger:            log.With("component", "task_service"),
	}
}

// CreateTask creates a task owned by the caller. Admins may create on
// behalf of any user by supplying OwnerID; for everyone else a supplied
// OwnerID is ignored. Creation never fires the completion reaction.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, actor Identity, input CreateTaskInput) (*domain.Task, error) {
	ownerID := actor.UserID
	if actor.IsAdmin() && input.OwnerID != nil {
		ownerID = *input.OwnerID
	}

	status := domain.TaskStatusPending
	if input.Status != "" {
		parsed, err := domain.ParseTaskStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	task, err := domain.NewTask(ownerID, input.Title, input.Description, input.DueDate, status)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask retrieves a task applying the ownership filter for non-admins.
func (s *TaskServiceImpl) GetTask(ctx context.Context, actor Identity, taskID uuid.UUID) (*domain.Task, error) {
	return s.loadScoped(ctx, actor, taskID)
}

// ListTasks lists tasks visible to the caller, newest first.
func (s *TaskServiceImpl) ListTasks(
	ctx context.Context,
	actor Identity,
	status domain.TaskStatus,
	search string,
) ([]*domain.Task, error) {
	filter := store.TaskFilter{
		Status:      status,
		TitleSearch: search,
	}
	if !actor.IsAdmin() {
		ownerID := actor.UserID
		filter.OwnerID = &ownerID
	}

	tasks, err := s.taskStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"actor_id", actor.UserID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask applies a partial update to a task.
//
// This is the single site of the completion reaction. When the supplied
// status (with IsCompleted taking precedence) case-insensitively equals
// "completed", the task update and one notification insert are committed
// in a single transaction, then one completion email is sent. The check is
// on the supplied value, not on a status transition: re-submitting
// "completed" for an already-completed task fires the reaction again and
// produces a second notification and a second email.
func (s *TaskServiceImpl) UpdateTask(
	ctx context.Context,
	actor Identity,
	taskID uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	task, err := s.loadScoped(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}

	// suppliedStatus is the raw status value asserted by this request.
	// IsCompleted overrides any status supplied alongside it.
	var suppliedStatus string
	switch {
	case input.IsCompleted != nil:
		if *input.IsCompleted {
			suppliedStatus = string(domain.TaskStatusCompleted)
		} else {
			suppliedStatus = string(domain.TaskStatusPending)
		}
	case input.Status != nil:
		suppliedStatus = *input.Status
	}

	if suppliedStatus != "" {
		parsed, err := domain.ParseTaskStatus(suppliedStatus)
		if err != nil {
			return nil, err
		}
		task.Status = parsed
	}
	task.UpdatedAt = time.Now().UTC()

	fire := strings.EqualFold(strings.TrimSpace(suppliedStatus), string(domain.TaskStatusCompleted))

	var owner *domain.User
	if fire {
		// Resolve the recipient before committing anything so a missing
		// owner fails the request with no side effects.
		owner, err = s.userStore.GetByID(ctx, task.UserID)
		if err != nil {
			s.logger.Error("failed to load task owner for completion reaction",
				"error", err,
				"task_id", task.ID,
				"owner_id", task.UserID)
			return nil, fmt.Errorf("failed to load task owner: %w", err)
		}
	}

	// The task update and the notification insert share one transaction:
	// either the task is completed and the notification exists, or neither
	// happened.
	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.taskStore.WithTx(tx).Update(ctx, task); err != nil {
			return err
		}

		if fire {
			notification, err := domain.NewTaskCompletedNotification(task.UserID, task.Title)
			if err != nil {
				return err
			}
			if err := s.notificationStore.WithTx(tx).Create(ctx, notification); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Error("failed to update task",
			"error", err,
			"task_id", task.ID)
		return nil, err
	}

	if fire {
		body := fmt.Sprintf(
			"Hello %s,\n\nYour task '%s' has been marked as completed.",
			owner.Username,
			task.Title,
		)
		if err := s.mailer.Send(ctx, owner.Email, completedEmailSubject, body); err != nil {
			// The task and notification are committed; the transport
			// failure still surfaces to the caller, never silently.
			s.logger.Error("failed to send completion email",
				"error", err,
				"task_id", task.ID,
				"recipient", owner.Email)
			return nil, fmt.Errorf("%w: %v", ErrEmailDeliveryFailed, err)
		}

		s.logger.Info("completion reaction fired",
			"task_id", task.ID,
			"owner_id", task.UserID)
	}

	return task, nil
}

// DeleteTask deletes a task applying the ownership filter for non-admins.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, actor Identity, taskID uuid.UUID) error {
	// Scoped load first so non-owners get not-found instead of deleting.
	if _, err := s.loadScoped(ctx, actor, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", taskID)
		return err
	}

	return nil
}

// loadScoped fetches a task honoring the ownership rules: admins see any
// task, everyone else only their own. Foreign tasks surface as not-found.
func (s *TaskServiceImpl) loadScoped(ctx context.Context, actor Identity, taskID uuid.UUID) (*domain.Task, error) {
	if actor.IsAdmin() {
		return s.taskStore.GetByID(ctx, taskID)
	}
	return s.taskStore.GetForUser(ctx, taskID, actor.UserID)
}
