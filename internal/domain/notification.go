package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Notification. All wrap ErrValidation so
// callers can classify them with errors.Is.
var (
	ErrEmptyNotificationID      = fmt.Errorf("%w: notification ID cannot be empty", ErrValidation)
	ErrEmptyNotificationUserID  = fmt.Errorf("%w: notification user ID cannot be empty", ErrValidation)
	ErrEmptyNotificationMessage = fmt.Errorf("%w: notification message cannot be empty", ErrValidation)
)

// Notification is an immutable, append-only record addressed to one user.
// Notifications are created only as a side effect of a task reaching the
// completed status, never directly by a client, and are deleted only by
// cascade when the recipient user is deleted.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotification creates a new unread Notification addressed to the given
// user. Returns an error if validation fails.
func NewNotification(userID uuid.UUID, message string) (*Notification, error) {
	notification := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}

	if err := notification.Validate(); err != nil {
		return nil, err
	}

	return notification, nil
}

// NewTaskCompletedNotification creates the notification recorded when a
// task is marked as completed.
func NewTaskCompletedNotification(userID uuid.UUID, taskTitle string) (*Notification, error) {
	message := fmt.Sprintf("Your task '%s' has been marked as completed.", taskTitle)
	return NewNotification(userID, message)
}

// Validate checks if the Notification has valid data.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyNotificationID
	}

	if n.UserID == uuid.Nil {
		return ErrEmptyNotificationUserID
	}

	if n.Message == "" {
		return ErrEmptyNotificationMessage
	}

	return nil
}
