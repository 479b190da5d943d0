package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// templateRecord is implemented by the product and service template models
type templateRecord[M any] interface {
	*M
	TableName() string
	ToDomain() (*catalog.Template, error)
	FromDomain(t *catalog.Template) error
}

// GormTemplateRepository implements catalog.TemplateRepository for one template table
type GormTemplateRepository[M any, P templateRecord[M]] struct {
	db   *gorm.DB
	kind catalog.TemplateKind
}

// ProductTemplateRepository stores product templates
type ProductTemplateRepository = GormTemplateRepository[models.ProductTemplateModel, *models.ProductTemplateModel]

// ServiceTemplateRepository stores service templates
type ServiceTemplateRepository = GormTemplateRepository[models.ServiceTemplateModel, *models.ServiceTemplateModel]

// NewProductTemplateRepository creates the product_templates repository
func NewProductTemplateRepository(db *gorm.DB) *ProductTemplateRepository {
	return &ProductTemplateRepository{db: db, kind: catalog.KindProduct}
}

// NewServiceTemplateRepository creates the service_templates repository
func NewServiceTemplateRepository(db *gorm.DB) *ServiceTemplateRepository {
	return &ServiceTemplateRepository{db: db, kind: catalog.KindService}
}

// Kind returns the template kind stored by this repository
func (r *GormTemplateRepository[M, P]) Kind() catalog.TemplateKind {
	return r.kind
}

func (r *GormTemplateRepository[M, P]) model(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(P(new(M)))
}

func (r *GormTemplateRepository[M, P]) first(query *gorm.DB) (*catalog.Template, error) {
	var row M
	if err := query.First(P(&row)).Error; err != nil {
		return nil, translateError(err)
	}
	return P(&row).ToDomain()
}

// FindByID finds a template by ID
func (r *GormTemplateRepository[M, P]) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Template, error) {
	return r.first(r.model(ctx).Where("id = ?", id))
}

// FindInBusinessType returns the template only if it belongs to businessTypeID
func (r *GormTemplateRepository[M, P]) FindInBusinessType(ctx context.Context, businessTypeID, id uuid.UUID) (*catalog.Template, error) {
	return r.first(r.model(ctx).Where("id = ? AND business_type_id = ?", id, businessTypeID))
}

// FindAll lists templates by sort order, newest first within a position
func (r *GormTemplateRepository[M, P]) FindAll(ctx context.Context, filter catalog.TemplateFilter) ([]catalog.Template, error) {
	query := r.model(ctx)
	if filter.BusinessTypeID != nil {
		query = query.Where("business_type_id = ?", *filter.BusinessTypeID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	var rows []M
	if err := query.Order("sort_order ASC, created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Template, 0, len(rows))
	for i := range rows {
		t, err := P(&rows[i]).ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

// ExistsByName checks the (business type, name) uniqueness
func (r *GormTemplateRepository[M, P]) ExistsByName(ctx context.Context, businessTypeID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.model(ctx).Where("business_type_id = ? AND name = ?", businessTypeID, name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// Create inserts a template
func (r *GormTemplateRepository[M, P]) Create(ctx context.Context, t *catalog.Template) error {
	var row M
	if err := P(&row).FromDomain(t); err != nil {
		return err
	}
	return translateError(r.db.WithContext(ctx).Create(P(&row)).Error)
}

// Save updates every column of a template
func (r *GormTemplateRepository[M, P]) Save(ctx context.Context, t *catalog.Template) error {
	var row M
	if err := P(&row).FromDomain(t); err != nil {
		return err
	}
	res := r.model(ctx).Where("id = ?", t.ID).Select("*").Omit("id", "created_at").Updates(P(&row))
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a template
func (r *GormTemplateRepository[M, P]) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(P(new(M)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Reorder sets sort_order to each id's position, atomically
func (r *GormTemplateRepository[M, P]) Reorder(ctx context.Context, ids []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return reorder(tx, P(new(M)), ids)
	})
	return translateError(err)
}

// Categories groups active templates of a business type by category
func (r *GormTemplateRepository[M, P]) Categories(ctx context.Context, businessTypeID uuid.UUID) ([]catalog.CategoryCount, error) {
	var rows []struct {
		Category string
		Count    int64
	}
	err := r.model(ctx).
		Select("category, COUNT(*) AS count").
		Where("business_type_id = ? AND is_active = ?", businessTypeID, true).
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]catalog.CategoryCount, len(rows))
	for i, row := range rows {
		out[i] = catalog.CategoryCount{Name: row.Category, Count: row.Count}
	}
	return out, nil
}

var (
	_ catalog.TemplateRepository = (*ProductTemplateRepository)(nil)
	_ catalog.TemplateRepository = (*ServiceTemplateRepository)(nil)
)
