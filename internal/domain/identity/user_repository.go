package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence.
// Lookups by ID are global; authentication resolves the owning tenant from the user.
type UserRepository interface {
	// FindByID finds a user by ID regardless of tenant
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindInRequestTenant finds a user by ID within the tenant carried by ctx
	FindInRequestTenant(ctx context.Context, id uuid.UUID) (*User, error)

	// FindActiveByEmail finds an active user by email, optionally restricted to a tenant
	FindActiveByEmail(ctx context.Context, email string, tenantID *uuid.UUID) (*User, error)

	// ExistsByEmail checks whether any other user already uses the email
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)

	// FindByTenant lists the users of one tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]User, error)

	// Save updates a user
	Save(ctx context.Context, user *User) error

	// UpdateLastLogin stamps the last login time
	UpdateLastLogin(ctx context.Context, user *User) error
}
