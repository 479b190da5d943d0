package catalog

import (
	"context"

	"github.com/google/uuid"
)

// BusinessTypeRepository persists business types
type BusinessTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BusinessType, error)
	FindByName(ctx context.Context, name string) (*BusinessType, error)
	// FindAll lists business types by sort order; activeOnly hides soft-deleted ones
	FindAll(ctx context.Context, activeOnly bool) ([]BusinessType, error)
	Save(ctx context.Context, bt *BusinessType) error
	// Reorder sets sort_order to each id's position, atomically
	Reorder(ctx context.Context, ids []uuid.UUID) error
	// SetActive updates the active flag of many business types and returns the affected count
	SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error)
	// TenantUsage counts tenant links per business type id
	TenantUsage(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
}

// TemplateFilter narrows template listings
type TemplateFilter struct {
	BusinessTypeID *uuid.UUID
	Category       string
	IsActive       *bool
}

// CategoryCount is a category name with the number of templates in it
type CategoryCount struct {
	Name  string
	Count int64
}

// TemplateRepository persists templates of a single kind
type TemplateRepository interface {
	Kind() TemplateKind
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)
	// FindInBusinessType returns the template only if it belongs to businessTypeID
	FindInBusinessType(ctx context.Context, businessTypeID, id uuid.UUID) (*Template, error)
	FindAll(ctx context.Context, filter TemplateFilter) ([]Template, error)
	ExistsByName(ctx context.Context, businessTypeID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, t *Template) error
	Save(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) error
	// Categories groups active templates of a business type by category
	Categories(ctx context.Context, businessTypeID uuid.UUID) ([]CategoryCount, error)
}
