package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// NotificationStore defines the interface for notification persistence.
// Notifications are append-only: there is no update or client-facing
// delete; rows disappear only via the user-deletion cascade.
type NotificationStore interface {
	// Create saves a new notification to the store.
	// Returns ErrInvalidEntity if the recipient user does not exist.
	Create(ctx context.Context, notification *domain.Notification) error

	// ListForUser retrieves all notifications addressed to the given user,
	// newest first. Returns an empty slice if there are none.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)

	// WithTx returns a new NotificationStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) NotificationStore
}
