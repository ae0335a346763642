package api_test

import (
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
)

func newNotificationRouter(notifications *mocks.MockNotificationStore) http.Handler {
	h := api.NewNotificationHandler(notifications)

	r := chi.NewRouter()
	r.Get("/notifications", h.List)
	return r
}

func TestNotificationHandlerList(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	otherID := uuid.New()

	seed := func(t *testing.T) *mocks.MockNotificationStore {
		t.Helper()
		notifications := mocks.NewMockNotificationStore()

		mine, err := domain.NewTaskCompletedNotification(userID, "Write report")
		require.NoError(t, err)
		theirs, err := domain.NewTaskCompletedNotification(otherID, "Plan offsite")
		require.NoError(t, err)

		require.NoError(t, notifications.Create(context.Background(), mine))
		require.NoError(t, notifications.Create(context.Background(), theirs))
		return notifications
	}

	t.Run("returns only the caller's notifications", func(t *testing.T) {
		t.Parallel()

		router := newNotificationRouter(seed(t))

		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		req = withIdentity(req, userID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Your task 'Write report' has been marked as completed.", resp[0]["message"])
		assert.Equal(t, false, resp[0]["is_read"])
		assert.Equal(t, userID.String(), resp[0]["user"])
	})

	t.Run("no notifications yields an empty array", func(t *testing.T) {
		t.Parallel()

		router := newNotificationRouter(mocks.NewMockNotificationStore())

		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		req = withIdentity(req, userID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("unauthenticated request returns 401", func(t *testing.T) {
		t.Parallel()

		router := newNotificationRouter(mocks.NewMockNotificationStore())

		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
