package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

const testJWTSecret = "test-secret-key-thats-long-enough-for-hmac"

// fakeTokenStore is an in-memory store.TokenStore for these tests. The
// shared mocks package cannot be used here without an import cycle.
type fakeTokenStore struct {
	revoked map[string]time.Time
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{revoked: make(map[string]time.Time)}
}

func (f *fakeTokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	f.revoked[tokenID] = expiresAt
	return nil
}

func (f *fakeTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := f.revoked[tokenID]
	return ok, nil
}

func (f *fakeTokenStore) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	var removed int64
	for id, expiresAt := range f.revoked {
		if expiresAt.Before(now) {
			delete(f.revoked, id)
			removed++
		}
	}
	return removed, nil
}

func newTestJWTService(t *testing.T, tokenStore *fakeTokenStore) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   testJWTSecret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}, tokenStore)
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	return impl
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()

		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:                   "too-short",
			TokenLifetimeMinutes:        60,
			RefreshTokenLifetimeMinutes: 10080,
		}, newFakeTokenStore())
		assert.Error(t, err)
	})

	t.Run("requires a token store", func(t *testing.T) {
		t.Parallel()

		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:                   testJWTSecret,
			TokenLifetimeMinutes:        60,
			RefreshTokenLifetimeMinutes: 10080,
		}, nil)
		assert.Error(t, err)
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestJWTService(t, newFakeTokenStore())
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID, domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "access", claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestJWTService(t, newFakeTokenStore())
	userID := uuid.New()

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := newTestJWTService(t, newFakeTokenStore())
		other.signingKey = []byte("different-secret-key-also-long-enough!!")

		token, err := other.GenerateToken(ctx, userID, domain.RoleUser)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		issued := time.Now().Add(-3 * time.Hour)
		svc.timeFunc = func() time.Time { return issued }
		token, err := svc.GenerateToken(ctx, userID, domain.RoleUser)
		require.NoError(t, err)

		svc.timeFunc = time.Now
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		svc.timeFunc = time.Now
		refresh, err := svc.GenerateRefreshToken(ctx, userID, domain.RoleUser)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, refresh)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})
}

func TestRefreshTokenLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tokenStore := newFakeTokenStore()
	svc := newTestJWTService(t, tokenStore)
	userID := uuid.New()

	refresh, err := svc.GenerateRefreshToken(ctx, userID, domain.RoleUser)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
	assert.Equal(t, userID, claims.UserID)

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		access, err := svc.GenerateToken(ctx, userID, domain.RoleUser)
		require.NoError(t, err)

		_, err = svc.ValidateRefreshToken(ctx, access)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("revocation invalidates the token", func(t *testing.T) {
		require.NoError(t, svc.RevokeRefreshToken(ctx, refresh))

		_, err := svc.ValidateRefreshToken(ctx, refresh)
		assert.ErrorIs(t, err, ErrRevokedRefreshToken)

		// The revocation record carries the token's own expiry.
		expiry, ok := tokenStore.revoked[claims.ID]
		require.True(t, ok)
		assert.WithinDuration(t, claims.ExpiresAt, expiry, time.Second)
	})

	t.Run("revoking an invalid token fails", func(t *testing.T) {
		err := svc.RevokeRefreshToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}
