package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestNewNotification(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("creates unread notification", func(t *testing.T) {
		t.Parallel()

		n, err := domain.NewNotification(userID, "something happened")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, n.ID)
		assert.Equal(t, userID, n.UserID)
		assert.False(t, n.IsRead)
		assert.False(t, n.CreatedAt.IsZero())
	})

	t.Run("rejects empty recipient", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewNotification(uuid.Nil, "something happened")
		assert.ErrorIs(t, err, domain.ErrEmptyNotificationUserID)
	})

	t.Run("rejects empty message", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewNotification(userID, "")
		assert.ErrorIs(t, err, domain.ErrEmptyNotificationMessage)
	})
}

func TestNewTaskCompletedNotification(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	n, err := domain.NewTaskCompletedNotification(userID, "Write report")
	require.NoError(t, err)

	assert.Equal(t, "Your task 'Write report' has been marked as completed.", n.Message)
	assert.Equal(t, userID, n.UserID)
	assert.False(t, n.IsRead)
}
