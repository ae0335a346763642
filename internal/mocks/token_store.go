package mocks

import (
	"context"
	"time"
)

// MockTokenStore implements store.TokenStore for testing
type MockTokenStore struct {
	// Function fields for customizable behavior
	RevokeFn        func(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevokedFn     func(ctx context.Context, tokenID string) (bool, error)
	DeleteExpiredFn func(ctx context.Context) (int64, error)

	// Data for default implementation
	Revoked     map[string]time.Time
	RevokeError error
}

// NewMockTokenStore creates a new mock store with initialized defaults
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{
		Revoked: make(map[string]time.Time),
	}
}

// Revoke implements the TokenStore interface
func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, tokenID, expiresAt)
	}

	if m.RevokeError != nil {
		return m.RevokeError
	}

	m.Revoked[tokenID] = expiresAt
	return nil
}

// IsRevoked implements the TokenStore interface
func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if m.IsRevokedFn != nil {
		return m.IsRevokedFn(ctx, tokenID)
	}

	_, revoked := m.Revoked[tokenID]
	return revoked, nil
}

// DeleteExpired implements the TokenStore interface
func (m *MockTokenStore) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFn != nil {
		return m.DeleteExpiredFn(ctx)
	}

	now := time.Now().UTC()
	var removed int64
	for id, expiresAt := range m.Revoked {
		if expiresAt.Before(now) {
			delete(m.Revoked, id)
			removed++
		}
	}
	return removed, nil
}
