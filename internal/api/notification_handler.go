package api

import (
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// NotificationHandler handles the read-only notification API. Writes
// happen only inside the task completion reaction.
type NotificationHandler struct {
	notificationStore store.NotificationStore
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationStore store.NotificationStore) *NotificationHandler {
	return &NotificationHandler{notificationStore: notificationStore}
}

// List handles GET /notifications, returning the caller's notifications
// newest first. Admins see only their own notifications here as well:
// the collection is always scoped to the authenticated recipient.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	notifications, err := h.notificationStore.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list notifications")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewNotificationListResponse(notifications))
}
