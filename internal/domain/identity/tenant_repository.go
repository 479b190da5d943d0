package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/shared"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindAll lists tenants, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, int64, error)

	// ExistsByDomain checks if a tenant with the given custom domain exists
	ExistsByDomain(ctx context.Context, domain string) (bool, error)

	// Save updates a tenant
	Save(ctx context.Context, tenant *Tenant) error

	// CreateWithOwner inserts the tenant, its business type links and its first
	// user in a single transaction
	CreateWithOwner(ctx context.Context, tenant *Tenant, owner *User) error
}
