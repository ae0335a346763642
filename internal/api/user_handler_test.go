package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func newUserRouter(svc service.UserService) http.Handler {
	h := api.NewUserHandler(svc)

	r := chi.NewRouter()
	r.Get("/users", h.List)
	r.Get("/users/me", h.GetMe)
	r.Put("/users/me", h.UpdateMe)
	r.Put("/users/{id}", h.AdminUpdate)
	r.Delete("/users/{id}", h.AdminDelete)
	return r
}

func TestUserHandlerProfile(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("alice", "alice@example.com", "password123", domain.RoleUser)
	require.NoError(t, err)

	t.Run("get own profile", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mocks.MockUserService{User: user})

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req = withIdentity(req, user.ID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp["username"])
		assert.Equal(t, "alice@example.com", resp["email"])
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("update own profile", func(t *testing.T) {
		t.Parallel()

		var gotInput service.UpdateUserInput
		svc := &mocks.MockUserService{
			UpdateProfileFn: func(ctx context.Context, actor service.Identity, input service.UpdateUserInput) (*domain.User, error) {
				gotInput = input
				return user, nil
			},
		}
		router := newUserRouter(svc)

		body := bytes.NewBufferString(`{"phone":"5551234","address":"12 Main St"}`)
		req := httptest.NewRequest(http.MethodPut, "/users/me", body)
		req = withIdentity(req, user.ID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotInput.Phone)
		assert.Equal(t, "5551234", *gotInput.Phone)
		assert.Nil(t, gotInput.Role)
	})

	t.Run("unauthenticated request returns 401", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mocks.MockUserService{})

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserHandlerList(t *testing.T) {
	t.Parallel()

	alice, err := domain.NewUser("alice", "alice@example.com", "password123", domain.RoleUser)
	require.NoError(t, err)

	t.Run("admin receives the accounts", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mocks.MockUserService{Users: []*domain.User{alice}})

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req = withIdentity(req, uuid.New(), domain.RoleAdmin)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "alice", resp[0]["username"])
	})

	t.Run("empty result is a JSON array, not null", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mocks.MockUserService{Users: []*domain.User{}})

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req = withIdentity(req, uuid.New(), domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestUserHandlerAdminOperations(t *testing.T) {
	t.Parallel()

	target, err := domain.NewUser("alice", "alice@example.com", "password123", domain.RoleUser)
	require.NoError(t, err)
	adminID := uuid.New()

	t.Run("admin updates another user's role", func(t *testing.T) {
		t.Parallel()

		var gotInput service.UpdateUserInput
		svc := &mocks.MockUserService{
			UpdateUserFn: func(ctx context.Context, actor service.Identity, userID uuid.UUID, input service.UpdateUserInput) (*domain.User, error) {
				gotInput = input
				return target, nil
			},
		}
		router := newUserRouter(svc)

		body := bytes.NewBufferString(`{"role":"admin"}`)
		req := httptest.NewRequest(http.MethodPut, "/users/"+target.ID.String(), body)
		req = withIdentity(req, adminID, domain.RoleAdmin)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotInput.Role)
		assert.Equal(t, domain.RoleAdmin, *gotInput.Role)
	})

	t.Run("service-level authorization failure maps to 403", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mocks.MockUserService{Err: domain.ErrUnauthorized})

		body := bytes.NewBufferString(`{"username":"newname"}`)
		req := httptest.NewRequest(http.MethodPut, "/users/"+target.ID.String(), body)
		req = withIdentity(req, target.ID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin deletes a user", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mocks.MockUserService{})

		req := httptest.NewRequest(http.MethodDelete, "/users/"+target.ID.String(), nil)
		req = withIdentity(req, adminID, domain.RoleAdmin)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("deleting an unknown user returns 404", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mocks.MockUserService{Err: store.ErrUserNotFound})

		req := httptest.NewRequest(http.MethodDelete, "/users/"+uuid.NewString(), nil)
		req = withIdentity(req, adminID, domain.RoleAdmin)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
