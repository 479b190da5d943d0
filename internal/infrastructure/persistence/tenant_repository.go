package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/identity"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements identity.TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID, including its business type links
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	tenant, err := model.ToDomain()
	if err != nil {
		return nil, err
	}
	links, err := r.loadLinks(ctx, id)
	if err != nil {
		return nil, err
	}
	tenant.BusinessTypes = links
	return tenant, nil
}

type tenantLinkRow struct {
	BusinessTypeID uuid.UUID
	Name           string
	IsPrimary      bool
}

func (r *GormTenantRepository) loadLinks(ctx context.Context, tenantID uuid.UUID) ([]identity.BusinessTypeLink, error) {
	var rows []tenantLinkRow
	err := r.db.WithContext(ctx).
		Table("tenant_business_types AS tbt").
		Select("tbt.business_type_id, bt.name, tbt.is_primary").
		Joins("JOIN business_types bt ON bt.id = tbt.business_type_id").
		Where("tbt.tenant_id = ?", tenantID).
		Order("tbt.is_primary DESC, bt.sort_order ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	links := make([]identity.BusinessTypeLink, len(rows))
	for i, row := range rows {
		links[i] = identity.BusinessTypeLink{
			BusinessTypeID: row.BusinessTypeID,
			Name:           row.Name,
			IsPrimary:      row.IsPrimary,
		}
	}
	return links, nil
}

// FindAll lists business tenants with the total count, newest first unless
// the filter orders otherwise. The system tenant is never listed.
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TenantModel{}).Where("id <> ?", identity.SystemTenantID)
	if filter.Search != "" {
		keyword := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", keyword, keyword)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}
	var rows []models.TenantModel
	if err := query.Order(TenantSortColumns.OrderClause(filter, "created_at")).Offset(filter.Offset()).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	tenants := make([]identity.Tenant, 0, len(rows))
	for i := range rows {
		t, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, *t)
	}
	return tenants, total, nil
}

// ExistsByDomain checks if a tenant with the given custom domain exists
func (r *GormTenantRepository) ExistsByDomain(ctx context.Context, domain string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Where("LOWER(domain) = ?", strings.ToLower(domain)).
		Count(&count).Error
	return count > 0, err
}

// Save updates a tenant's own columns; business type links are immutable here
func (r *GormTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	var model models.TenantModel
	if err := model.FromDomain(tenant); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Where("id = ?", tenant.ID).
		Select("*").Omit("id", "created_at").
		Updates(&model)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CreateWithOwner inserts the tenant, its business type links and its first
// user in a single transaction
func (r *GormTenantRepository) CreateWithOwner(ctx context.Context, tenant *identity.Tenant, owner *identity.User) error {
	var tenantModel models.TenantModel
	if err := tenantModel.FromDomain(tenant); err != nil {
		return err
	}
	links := models.TenantBusinessTypeModelsFromDomain(tenant)
	userModel := models.UserModelFromDomain(owner)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenantModel).Error; err != nil {
			return err
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return tx.Create(userModel).Error
	})
	return translateError(err)
}

var _ identity.TenantRepository = (*GormTenantRepository)(nil)
