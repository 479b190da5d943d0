package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBusinessTypeRepository implements catalog.BusinessTypeRepository using GORM.
// Business types are a shared catalog and carry no tenant id.
type GormBusinessTypeRepository struct {
	db *gorm.DB
}

// NewGormBusinessTypeRepository creates a new GormBusinessTypeRepository
func NewGormBusinessTypeRepository(db *gorm.DB) *GormBusinessTypeRepository {
	return &GormBusinessTypeRepository{db: db}
}

// FindByID finds a business type by ID, active or not
func (r *GormBusinessTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.BusinessType, error) {
	var model models.BusinessTypeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a business type by its unique name
func (r *GormBusinessTypeRepository) FindByName(ctx context.Context, name string) (*catalog.BusinessType, error) {
	var model models.BusinessTypeModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists business types by sort order
func (r *GormBusinessTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]catalog.BusinessType, error) {
	query := r.db.WithContext(ctx).Order("sort_order ASC, display_name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []models.BusinessTypeModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.BusinessType, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save inserts or updates a business type
func (r *GormBusinessTypeRepository) Save(ctx context.Context, bt *catalog.BusinessType) error {
	var model models.BusinessTypeModel
	model.FromDomain(bt)
	return translateError(r.db.WithContext(ctx).Save(&model).Error)
}

// Reorder sets sort_order to each id's position, atomically
func (r *GormBusinessTypeRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return reorder(tx, &models.BusinessTypeModel{}, ids)
	})
	return translateError(err)
}

// SetActive updates the active flag of many business types
func (r *GormBusinessTypeRepository) SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&models.BusinessTypeModel{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"is_active": active, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

// TenantUsage counts tenant links per business type id
func (r *GormBusinessTypeRepository) TenantUsage(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	usage := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return usage, nil
	}
	var rows []struct {
		BusinessTypeID uuid.UUID
		Count          int64
	}
	err := r.db.WithContext(ctx).Model(&models.TenantBusinessTypeModel{}).
		Select("business_type_id, COUNT(*) AS count").
		Where("business_type_id IN ?", ids).
		Group("business_type_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		usage[row.BusinessTypeID] = row.Count
	}
	return usage, nil
}

// reorder writes each id's list position into sort_order. Every id must exist.
func reorder(tx *gorm.DB, model any, ids []uuid.UUID) error {
	now := time.Now()
	for i, id := range ids {
		res := tx.Model(model).Where("id = ?", id).
			Updates(map[string]any{"sort_order": i, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.NewNotFoundError("Item " + id.String())
		}
	}
	return nil
}

var _ catalog.BusinessTypeRepository = (*GormBusinessTypeRepository)(nil)
