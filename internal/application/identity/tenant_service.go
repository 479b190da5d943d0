package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/identity"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// TenantService handles tenant management operations
type TenantService struct {
	tenantRepo identity.TenantRepository
	logger     *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo identity.TenantRepository, logger *zap.Logger) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// UpdateTenantInput contains input for updating the current tenant; nil fields are left untouched
type UpdateTenantInput struct {
	Name    *string
	Domain  *string
	Email   *string
	Phone   *string
	Address *string
}

// GetProfile returns the tenant of the current request
func (s *TenantService) GetProfile(ctx context.Context, tenantID uuid.UUID) (*TenantInfo, error) {
	tenant, err := s.find(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	info := ToTenantInfo(tenant)
	return &info, nil
}

// UpdateProfile updates the current tenant's name, domain and contact details
func (s *TenantService) UpdateProfile(ctx context.Context, tenantID uuid.UUID, in UpdateTenantInput) (*TenantInfo, error) {
	tenant, err := s.find(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := tenant.UpdateProfile(deref(in.Name), deref(in.Email), deref(in.Phone), deref(in.Address)); err != nil {
		return nil, err
	}
	if in.Domain != nil {
		current := ""
		if tenant.Domain != nil {
			current = *tenant.Domain
		}
		next := strings.ToLower(strings.TrimSpace(*in.Domain))
		if next != "" && next != current {
			taken, err := s.tenantRepo.ExistsByDomain(ctx, next)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, shared.NewConflictError("A tenant with this domain already exists")
			}
		}
		tenant.SetDomain(next)
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Tenant profile updated", zap.String("tenant_id", tenant.ID.String()))
	info := ToTenantInfo(tenant)
	return &info, nil
}

// List returns a page of business tenants. The system tenant is not listed.
func (s *TenantService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[TenantInfo], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	tenants, total, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[TenantInfo]{}, err
	}

	items := make([]TenantInfo, 0, len(tenants))
	for i := range tenants {
		if tenants[i].IsSystem() {
			total--
			continue
		}
		items = append(items, ToTenantInfo(&tenants[i]))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// SetStatus activates or deactivates a tenant. Users of an inactive tenant
// cannot authenticate.
func (s *TenantService) SetStatus(ctx context.Context, id uuid.UUID, active bool) (*TenantInfo, error) {
	tenant, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		tenant.Activate()
	} else if err := tenant.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Tenant status changed",
		zap.String("tenant_id", tenant.ID.String()),
		zap.Bool("active", active))
	info := ToTenantInfo(tenant)
	return &info, nil
}

// Delete soft-deletes a tenant by deactivating it
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.SetStatus(ctx, id, false)
	return err
}

func (s *TenantService) find(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Tenant")
		}
		return nil, err
	}
	return tenant, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
