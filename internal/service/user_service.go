package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// UpdateUserInput carries a partial profile update. Nil fields are left
// unchanged. Role changes are applied only for admin callers.
type UpdateUserInput struct {
	Username *string
	Phone    *string
	Address  *string
	Password *string
	Role     *domain.Role
}

// UserService provides user registration, profile management and the
// admin-only user administration operations.
type UserService interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ListUsers returns all non-admin accounts for admin callers. For
	// everyone else it returns an empty slice — an empty collection, not
	// an authorization error.
	ListUsers(ctx context.Context, actor Identity) ([]*domain.User, error)

	// UpdateProfile updates the caller's own profile.
	UpdateProfile(ctx context.Context, actor Identity, input UpdateUserInput) (*domain.User, error)

	// UpdateUser updates any user's profile or role. Admin only.
	UpdateUser(ctx context.Context, actor Identity, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)

	// DeleteUser deletes a user together with all of their tasks and
	// notifications (database cascade). Admin only.
	DeleteUser(ctx context.Context, actor Identity, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	txRunner  store.TxRunner
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
}

// Ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(txRunner store.TxRunner, userStore store.UserStore, hasher auth.PasswordHasher, log *slog.Logger) *UserServiceImpl {
	if log == nil {
		log = slog.Default()
	}

	return &UserServiceImpl{
		txRunner:  txRunner,
		userStore: userStore,
		hasher:    hasher,
		logger:    log.With("component", "user_service"),
	}
}

// Register creates a new user, hashing the password before storage.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	username, email, password string,
	role domain.Role,
) (*domain.User, error) {
	user, err := domain.NewUser(username, email, password, role)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("registration with duplicate identity",
				"email", email,
				"username", username)
		} else {
			s.logger.Error("failed to create user", "error", err)
		}
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// ListUsers returns the non-admin accounts for admins and an empty slice
// for everyone else.
func (s *UserServiceImpl) ListUsers(ctx context.Context, actor Identity) ([]*domain.User, error) {
	if !actor.IsAdmin() {
		return []*domain.User{}, nil
	}

	users, err := s.userStore.List(ctx, domain.RoleUser)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// UpdateProfile updates the caller's own profile. Role changes are
// ignored here; only UpdateUser (admin) may change roles.
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	actor Identity,
	input UpdateUserInput,
) (*domain.User, error) {
	input.Role = nil
	return s.applyUpdate(ctx, actor.UserID, input)
}

// UpdateUser updates any user's profile or role. Non-admin callers
// receive domain.ErrUnauthorized.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	actor Identity,
	userID uuid.UUID,
	input UpdateUserInput,
) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return s.applyUpdate(ctx, userID, input)
}

// DeleteUser deletes a user; tasks and notifications go with it via the
// database cascade. Non-admin callers receive domain.ErrUnauthorized.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, actor Identity, userID uuid.UUID) error {
	if !actor.IsAdmin() {
		return domain.ErrUnauthorized
	}

	if err := s.userStore.Delete(ctx, userID); err != nil {
		s.logger.Error("failed to delete user",
			"error", err,
			"user_id", userID)
		return err
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

// applyUpdate loads the full user, applies the non-nil fields and writes
// the complete object back through the store.
func (s *UserServiceImpl) applyUpdate(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Password != nil {
		user.Password = *input.Password
		if err := user.Validate(); err != nil {
			return nil, err
		}
		hashed, err := s.hasher.Hash(*input.Password)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err)
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
		user.Password = ""
	}
	user.UpdatedAt = timeNow()

	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to update user",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	return user, nil
}
