package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

type authHandlerFixture struct {
	handler     *api.AuthHandler
	userService *mocks.MockUserService
	userStore   *mocks.MockUserStore
	jwtService  *mocks.MockJWTService
	verifier    *mocks.MockPasswordVerifier
}

func newAuthHandlerFixture(t *testing.T) *authHandlerFixture {
	t.Helper()

	f := &authHandlerFixture{
		userService: &mocks.MockUserService{},
		userStore:   mocks.NewMockUserStore(),
		jwtService:  &mocks.MockJWTService{},
		verifier:    &mocks.MockPasswordVerifier{},
	}
	f.handler = api.NewAuthHandler(f.userService, f.userStore, f.jwtService, f.verifier)
	return f
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Parallel()

	t.Run("valid registration returns 201", func(t *testing.T) {
		t.Parallel()

		f := newAuthHandlerFixture(t)
		user, err := domain.NewUser("alice", "alice@example.com", "password123", domain.RoleUser)
		require.NoError(t, err)
		f.userService.User = user

		body := bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"password123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
		rec := httptest.NewRecorder()
		f.handler.Register(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "User registered successfully")
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		t.Parallel()

		f := newAuthHandlerFixture(t)
		f.userService.Err = store.ErrEmailExists

		body := bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"password123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
		rec := httptest.NewRecorder()
		f.handler.Register(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email already exists")
	})

	t.Run("invalid payload returns 400", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			body string
		}{
			{name: "malformed json", body: `{"username":`},
			{name: "missing email", body: `{"username":"alice","password":"password123"}`},
			{name: "short password", body: `{"username":"alice","email":"a@b.co","password":"short"}`},
			{name: "bad role", body: `{"username":"alice","email":"a@b.co","password":"password123","role":"root"}`},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				f := newAuthHandlerFixture(t)

				req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tc.body))
				rec := httptest.NewRecorder()
				f.handler.Register(rec, req)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})
		}
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	seedLoginUser := func(t *testing.T, f *authHandlerFixture) *domain.User {
		t.Helper()
		user, err := domain.NewUser("alice", "alice@example.com", "password123", domain.RoleUser)
		require.NoError(t, err)
		user.HashedPassword = "stored-hash"
		user.Password = ""
		require.NoError(t, f.userStore.Create(context.Background(), user))
		return user
	}

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		t.Parallel()

		f := newAuthHandlerFixture(t)
		user := seedLoginUser(t, f)
		f.jwtService.Token = "access-token"
		f.jwtService.RefreshToken = "refresh-token"

		body := bytes.NewBufferString(`{"email":"alice@example.com","password":"password123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
		rec := httptest.NewRecorder()
		f.handler.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "access-token", resp["token"])
		assert.Equal(t, "refresh-token", resp["refresh_token"])
		assert.Equal(t, user.ID.String(), resp["user_id"])
		assert.Equal(t, "user", resp["role"])
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		t.Parallel()

		f := newAuthHandlerFixture(t)
		seedLoginUser(t, f)
		f.verifier.CompareErr = errors.New("mismatch")

		body := bytes.NewBufferString(`{"email":"alice@example.com","password":"wrong"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
		rec := httptest.NewRecorder()
		f.handler.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
	})

	t.Run("unknown email returns the same 401", func(t *testing.T) {
		t.Parallel()

		f := newAuthHandlerFixture(t)

		body := bytes.NewBufferString(`{"email":"ghost@example.com","password":"password123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
		rec := httptest.NewRecorder()
		f.handler.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
	})
}

func TestAuthHandlerRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("valid refresh token returns a new pair", func(t *testing.T) {
		t.Parallel()

		f := newAuthHandlerFixture(t)
		f.jwtService.Claims = &auth.Claims{
			UserID:    uuid.New(),
			Role:      domain.RoleUser,
			TokenType: "refresh",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		f.jwtService.Token = "new-access"
		f.jwtService.RefreshToken = "new-refresh"

		body := bytes.NewBufferString(`{"refresh_token":"old-refresh"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", body)
		rec := httptest.NewRecorder()
		f.handler.RefreshToken(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "new-access", resp["access_token"])
		assert.Equal(t, "new-refresh", resp["refresh_token"])
	})

	t.Run("expired refresh token returns 401", func(t *testing.T) {
		t.Parallel()

		f := newAuthHandlerFixture(t)
		f.jwtService.ValidateErr = auth.ErrExpiredRefreshToken

		body := bytes.NewBufferString(`{"refresh_token":"stale"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", body)
		rec := httptest.NewRecorder()
		f.handler.RefreshToken(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid refresh token")
	})

	t.Run("missing token returns 400", func(t *testing.T) {
		t.Parallel()

		f := newAuthHandlerFixture(t)

		body := bytes.NewBufferString(`{}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", body)
		rec := httptest.NewRecorder()
		f.handler.RefreshToken(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandlerLogout(t *testing.T) {
	t.Parallel()

	t.Run("valid logout revokes the token", func(t *testing.T) {
		t.Parallel()

		f := newAuthHandlerFixture(t)
		var revoked string
		f.jwtService.RevokeRefreshTokenFn = func(ctx context.Context, tokenString string) error {
			revoked = tokenString
			return nil
		}

		body := bytes.NewBufferString(`{"refresh_token":"current-refresh"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", body)
		rec := httptest.NewRecorder()
		f.handler.Logout(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "current-refresh", revoked)
		assert.Contains(t, rec.Body.String(), "Logout successful")
	})

	t.Run("already revoked token returns 401", func(t *testing.T) {
		t.Parallel()

		f := newAuthHandlerFixture(t)
		f.jwtService.RevokeErr = auth.ErrRevokedRefreshToken

		body := bytes.NewBufferString(`{"refresh_token":"used-up"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", body)
		rec := httptest.NewRecorder()
		f.handler.Logout(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
