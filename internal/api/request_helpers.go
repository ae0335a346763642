package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// DecodeJSON decodes the request body into the given value, rejecting
// unknown fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// getIdentityFromContext extracts the authenticated identity (user ID and
// role) placed in the context by the authentication middleware.
//
// Returns the identity and false when the request is not authenticated.
func getIdentityFromContext(r *http.Request) (service.Identity, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return service.Identity{}, false
	}

	role, ok := r.Context().Value(shared.RoleContextKey).(domain.Role)
	if !ok {
		role = domain.RoleUser
	}

	return service.Identity{UserID: userID, Role: role}, true
}

// requireIdentity extracts the authenticated identity or writes a 401
// response. Returns false when the response has been written.
func requireIdentity(w http.ResponseWriter, r *http.Request) (service.Identity, bool) {
	identity, ok := getIdentityFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return service.Identity{}, false
	}
	return identity, true
}

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// parseDueDate parses the wire representation of a due date.
func parseDueDate(value string) (time.Time, error) {
	dueDate, err := time.Parse(dueDateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(
			"due_date",
			fmt.Sprintf("must be a date in %s format", dueDateLayout),
			domain.ErrValidation,
		)
	}
	return dueDate, nil
}
