package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockNotificationStore implements store.NotificationStore for testing
type MockNotificationStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, notification *domain.Notification) error
	ListForUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)

	// Data for default implementation
	Notifications []*domain.Notification
	CreateError   error
}

// NewMockNotificationStore creates a new mock store with initialized defaults
func NewMockNotificationStore() *MockNotificationStore {
	return &MockNotificationStore{
		Notifications: make([]*domain.Notification, 0),
	}
}

// Create implements the NotificationStore interface
func (m *MockNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, notification)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Notifications = append(m.Notifications, notification)
	return nil
}

// ListForUser implements the NotificationStore interface
func (m *MockNotificationStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID)
	}

	out := make([]*domain.Notification, 0)
	for _, n := range m.Notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ForUser returns the stored notifications addressed to the given user,
// in insertion order. Helper for assertions.
func (m *MockNotificationStore) ForUser(userID uuid.UUID) []*domain.Notification {
	out := make([]*domain.Notification, 0)
	for _, n := range m.Notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// WithTx implements the NotificationStore interface. The mock has no real
// transactions, so it returns itself.
func (m *MockNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return m
}
