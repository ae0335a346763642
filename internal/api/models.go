package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// dueDateLayout is the wire format for task due dates (a calendar date).
const dueDateLayout = "2006-01-02"

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Role is the authenticated user's role ("user" or "admin")
	Role domain.Role `json:"role"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest defines the payload for the logout endpoint. The supplied
// refresh token is revoked.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// MessageResponse is a minimal acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTaskRequest defines the payload for task creation.
// UserID is honored only for admin callers creating on behalf of another
// user.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description string     `json:"description"`
	DueDate     string     `json:"due_date"    validate:"required"`
	Status      string     `json:"status"      validate:"omitempty"`
	UserID      *uuid.UUID `json:"user_id"`
}

// UpdateTaskRequest defines the payload for a partial task update.
// Absent fields are left unchanged. IsCompleted, when present, overrides
// Status.
type UpdateTaskRequest struct {
	Title       *string `json:"title"        validate:"omitempty,max=255"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
	IsCompleted *bool   `json:"is_completed"`
}

// TaskResponse is the client representation of a task. The is_completed
// boolean is derived from the status enum.
type TaskResponse struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	DueDate     string            `json:"due_date"`
	Status      domain.TaskStatus `json:"status"`
	IsCompleted bool              `json:"is_completed"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewTaskResponse converts a domain task to its client representation.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate.Format(dueDateLayout),
		Status:      task.Status,
		IsCompleted: task.IsCompleted(),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// NewTaskListResponse converts a slice of domain tasks.
func NewTaskListResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, NewTaskResponse(task))
	}
	return out
}

// NotificationResponse is the read-only client representation of a
// notification.
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationListResponse converts a slice of domain notifications.
func NewNotificationListResponse(notifications []*domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			UserID:    n.UserID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

// UserResponse is the client representation of a user account.
type UserResponse struct {
	ID       uuid.UUID   `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	Phone    string      `json:"phone,omitempty"`
	Address  string      `json:"address,omitempty"`
}

// NewUserResponse converts a domain user to its client representation.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Phone:    user.Phone,
		Address:  user.Address,
	}
}

// NewUserListResponse converts a slice of domain users.
func NewUserListResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}

// UpdateProfileRequest defines the payload for self-service profile
// updates.
type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	Phone    *string `json:"phone"    validate:"omitempty,max=15"`
	Address  *string `json:"address"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// AdminUpdateUserRequest defines the payload for admin updates of any
// user, which may additionally change the role.
type AdminUpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	Phone    *string `json:"phone"    validate:"omitempty,max=15"`
	Address  *string `json:"address"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role"     validate:"omitempty,oneof=user admin"`
}
