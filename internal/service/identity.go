package service

import (
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Identity is the authenticated principal making a request, as established
// by the authentication middleware from the access token's claims.
type Identity struct {
	UserID uuid.UUID
	Role   domain.Role
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}
