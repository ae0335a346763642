package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskFilter narrows task listings. A nil OwnerID lists every user's tasks
// (admin view); a non-nil OwnerID restricts the listing to that owner.
type TaskFilter struct {
	// OwnerID limits results to tasks owned by this user when set.
	OwnerID *uuid.UUID

	// Status limits results to tasks with this exact status when set.
	Status domain.TaskStatus

	// TitleSearch limits results to tasks whose title contains this
	// substring (case-insensitive) when non-empty.
	TitleSearch string
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID regardless of owner.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetForUser retrieves a task by ID scoped to the given owner.
	// Returns ErrTaskNotFound if the task does not exist OR is owned by a
	// different user, so callers cannot probe for foreign tasks.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// List retrieves tasks matching the filter, newest first.
	// Returns an empty slice if no tasks match.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update saves changes to an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) TaskStore
}
