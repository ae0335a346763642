package store

import (
	"context"
	"time"
)

// TokenStore persists revoked refresh-token IDs so that logout invalidates
// the presented refresh credential for the remainder of its lifetime.
type TokenStore interface {
	// Revoke records the refresh token ID (jti) as revoked until it would
	// have expired anyway. Revoking an already-revoked token is a no-op.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether the refresh token ID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// DeleteExpired removes revocation records whose tokens have expired
	// and can no longer be replayed. Returns the number of rows removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
