package pricing

import (
	"context"

	"github.com/google/uuid"
)

// RuleRepository persists pricing rules
type RuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Rule, error)
	// FindByBusinessType lists rules by ascending priority; a nil isActive returns all
	FindByBusinessType(ctx context.Context, businessTypeID uuid.UUID, isActive *bool) ([]*Rule, error)
	ExistsByName(ctx context.Context, businessTypeID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, r *Rule) error
	Save(ctx context.Context, r *Rule) error
	Delete(ctx context.Context, id uuid.UUID) error
}
