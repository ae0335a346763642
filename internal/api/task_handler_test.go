package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// newTaskRouter mounts the task handler on a router the way the server
// does, minus the JWT middleware: tests inject identity directly.
func newTaskRouter(svc service.TaskService) http.Handler {
	h := api.NewTaskHandler(svc)

	r := chi.NewRouter()
	r.Get("/tasks", h.List)
	r.Post("/tasks", h.Create)
	r.Get("/tasks/{id}", h.Get)
	r.Put("/tasks/{id}", h.Update)
	r.Delete("/tasks/{id}", h.Delete)
	return r
}

// withIdentity returns a request carrying an authenticated identity, as
// the auth middleware would leave it.
func withIdentity(r *http.Request, userID uuid.UUID, role domain.Role) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	ctx = context.WithValue(ctx, shared.RoleContextKey, role)
	return r.WithContext(ctx)
}

func sampleTask(ownerID uuid.UUID, status domain.TaskStatus) *domain.Task {
	return &domain.Task{
		ID:        uuid.New(),
		UserID:    ownerID,
		Title:     "Write report",
		DueDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:    status,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestTaskHandlerUpdate(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("completing update returns the derived boolean", func(t *testing.T) {
		t.Parallel()

		task := sampleTask(ownerID, domain.TaskStatusCompleted)
		var gotInput service.UpdateTaskInput
		svc := &mocks.MockTaskService{
			UpdateTaskFn: func(ctx context.Context, actor service.Identity, taskID uuid.UUID, input service.UpdateTaskInput) (*domain.Task, error) {
				gotInput = input
				return task, nil
			},
		}
		router := newTaskRouter(svc)

		body := bytes.NewBufferString(`{"status":"Completed"}`)
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+task.ID.String(), body)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotInput.Status)
		assert.Equal(t, "Completed", *gotInput.Status)
		assert.Nil(t, gotInput.IsCompleted)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["is_completed"])
		assert.Equal(t, "completed", resp["status"])
	})

	t.Run("is_completed passes through untouched", func(t *testing.T) {
		t.Parallel()

		task := sampleTask(ownerID, domain.TaskStatusCompleted)
		var gotInput service.UpdateTaskInput
		svc := &mocks.MockTaskService{
			UpdateTaskFn: func(ctx context.Context, actor service.Identity, taskID uuid.UUID, input service.UpdateTaskInput) (*domain.Task, error) {
				gotInput = input
				return task, nil
			},
		}
		router := newTaskRouter(svc)

		body := bytes.NewBufferString(`{"is_completed":true,"status":"pending"}`)
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+task.ID.String(), body)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotInput.IsCompleted)
		assert.True(t, *gotInput.IsCompleted)
	})

	t.Run("email delivery failure maps to 502", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockTaskService{
			Err: fmt.Errorf("%w: smtp connection refused", service.ErrEmailDeliveryFailed),
		}
		router := newTaskRouter(svc)

		body := bytes.NewBufferString(`{"status":"completed"}`)
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+uuid.NewString(), body)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to send notification email")
		assert.NotContains(t, rec.Body.String(), "smtp")
	})

	t.Run("foreign task maps to 404", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockTaskService{Err: store.ErrTaskNotFound}
		router := newTaskRouter(svc)

		body := bytes.NewBufferString(`{"title":"new title"}`)
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+uuid.NewString(), body)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid task ID maps to 400", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(&mocks.MockTaskService{})

		body := bytes.NewBufferString(`{"title":"new title"}`)
		req := httptest.NewRequest(http.MethodPut, "/tasks/not-a-uuid", body)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid due date maps to 400", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(&mocks.MockTaskService{})

		body := bytes.NewBufferString(`{"due_date":"June 1st"}`)
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+uuid.NewString(), body)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing identity maps to 401", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(&mocks.MockTaskService{})

		body := bytes.NewBufferString(`{"title":"new title"}`)
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+uuid.NewString(), body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("valid request returns 201", func(t *testing.T) {
		t.Parallel()

		task := sampleTask(ownerID, domain.TaskStatusPending)
		var gotInput service.CreateTaskInput
		svc := &mocks.MockTaskService{
			CreateTaskFn: func(ctx context.Context, actor service.Identity, input service.CreateTaskInput) (*domain.Task, error) {
				gotInput = input
				return task, nil
			},
		}
		router := newTaskRouter(svc)

		body := bytes.NewBufferString(`{"title":"Write report","due_date":"2025-06-01"}`)
		req := httptest.NewRequest(http.MethodPost, "/tasks", body)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Write report", gotInput.Title)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), gotInput.DueDate)
	})

	t.Run("missing title returns 400", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(&mocks.MockTaskService{})

		body := bytes.NewBufferString(`{"due_date":"2025-06-01"}`)
		req := httptest.NewRequest(http.MethodPost, "/tasks", body)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(&mocks.MockTaskService{})

		body := bytes.NewBufferString(`{"title":"x","due_date":"2025-06-01","owner":"someone"}`)
		req := httptest.NewRequest(http.MethodPost, "/tasks", body)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskHandlerListAndDelete(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("list forwards query filters", func(t *testing.T) {
		t.Parallel()

		var gotStatus domain.TaskStatus
		var gotSearch string
		svc := &mocks.MockTaskService{
			ListTasksFn: func(ctx context.Context, actor service.Identity, status domain.TaskStatus, search string) ([]*domain.Task, error) {
				gotStatus = status
				gotSearch = search
				return []*domain.Task{sampleTask(ownerID, domain.TaskStatusPending)}, nil
			},
		}
		router := newTaskRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/tasks?status=Pending&search=report", nil)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.TaskStatusPending, gotStatus)
		assert.Equal(t, "report", gotSearch)
	})

	t.Run("list rejects unknown status filter", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(&mocks.MockTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/tasks?status=done", nil)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete returns 204", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(&mocks.MockTaskService{})

		req := httptest.NewRequest(http.MethodDelete, "/tasks/"+uuid.NewString(), nil)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("delete of missing task returns 404", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(&mocks.MockTaskService{Err: store.ErrTaskNotFound})

		req := httptest.NewRequest(http.MethodDelete, "/tasks/"+uuid.NewString(), nil)
		req = withIdentity(req, ownerID, domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
