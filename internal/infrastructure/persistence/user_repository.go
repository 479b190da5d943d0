package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/identity"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/persistence/models"
	"github.com/servicehub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *tenant.TenantDB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: tenant.NewTenantDB(db)}
}

// FindByID finds a user by ID regardless of tenant
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.Unscoped().WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindInRequestTenant finds a user by ID within the tenant of the request
// context. A context without a tenant fails with tenant.ErrTenantIDRequired.
func (r *GormUserRepository) FindInRequestTenant(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindActiveByEmail finds an active user by email, optionally restricted to a tenant
func (r *GormUserRepository) FindActiveByEmail(ctx context.Context, email string, tenantID *uuid.UUID) (*identity.User, error) {
	query := r.db.Unscoped().WithContext(ctx)
	if tenantID != nil {
		query = r.db.ForTenant(ctx, *tenantID)
	}
	var model models.UserModel
	err := query.
		Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks whether any other user already uses the email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.Unscoped().WithContext(ctx).Model(&models.UserModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// FindByTenant lists the users of one tenant
func (r *GormUserRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]identity.User, error) {
	var rows []models.UserModel
	if err := r.db.ForTenant(ctx, tenantID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]identity.User, len(rows))
	for i := range rows {
		users[i] = *rows[i].ToDomain()
	}
	return users, nil
}

// Save updates a user within its own tenant
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	res := r.db.ForTenant(ctx, user.TenantID).Model(&models.UserModel{}).
		Where("id = ?", user.ID).
		Select("*").Omit("id", "tenant_id", "created_at").
		Updates(model)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateLastLogin stamps the last login time
func (r *GormUserRepository) UpdateLastLogin(ctx context.Context, user *identity.User) error {
	return r.db.ForTenant(ctx, user.TenantID).Model(&models.UserModel{}).
		Where("id = ?", user.ID).
		UpdateColumns(map[string]any{"last_login_at": user.LastLoginAt, "updated_at": user.UpdatedAt}).Error
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
