package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	// Function fields for customizable behavior
	RegisterFn      func(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error)
	GetUserFn       func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ListUsersFn     func(ctx context.Context, actor service.Identity) ([]*domain.User, error)
	UpdateProfileFn func(ctx context.Context, actor service.Identity, input service.UpdateUserInput) (*domain.User, error)
	UpdateUserFn    func(ctx context.Context, actor service.Identity, userID uuid.UUID, input service.UpdateUserInput) (*domain.User, error)
	DeleteUserFn    func(ctx context.Context, actor service.Identity, userID uuid.UUID) error

	// Default values used when functions aren't explicitly defined
	User  *domain.User
	Users []*domain.User
	Err   error
}

// Register implements the service.UserService interface
func (m *MockUserService) Register(
	ctx context.Context,
	username, email, password string,
	role domain.Role,
) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, email, password, role)
	}
	return m.User, m.Err
}

// GetUser implements the service.UserService interface
func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return m.User, m.Err
}

// ListUsers implements the service.UserService interface
func (m *MockUserService) ListUsers(ctx context.Context, actor service.Identity) ([]*domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx, actor)
	}
	return m.Users, m.Err
}

// UpdateProfile implements the service.UserService interface
func (m *MockUserService) UpdateProfile(
	ctx context.Context,
	actor service.Identity,
	input service.UpdateUserInput,
) (*domain.User, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, actor, input)
	}
	return m.User, m.Err
}

// UpdateUser implements the service.UserService interface
func (m *MockUserService) UpdateUser(
	ctx context.Context,
	actor service.Identity,
	userID uuid.UUID,
	input service.UpdateUserInput,
) (*domain.User, error) {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, actor, userID, input)
	}
	return m.User, m.Err
}

// DeleteUser implements the service.UserService interface
func (m *MockUserService) DeleteUser(ctx context.Context, actor service.Identity, userID uuid.UUID) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, actor, userID)
	}
	return m.Err
}
