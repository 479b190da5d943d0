// Package tenant provides multi-tenant database scoping for GORM.
//
// The tenant id is read from the request context (set by the tenant context
// middleware through logger.WithTenantID) and applied as WHERE tenant_id = ?.
//
// Usage:
//
//	db := tenant.NewTenantDB(gormDB)
//	db.WithContext(ctx).Find(&users) // WHERE tenant_id = 'xxx' is added
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

// ErrTenantIDRequired is returned when tenant_id is required but not found
var ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

// ErrInvalidTenantID is returned when tenant_id format is invalid
var ErrInvalidTenantID = errors.New("invalid tenant_id format")

// TenantScope applies tenant filtering to GORM queries
func TenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// FromContext parses the tenant id carried by ctx
func FromContext(ctx context.Context) (uuid.UUID, error) {
	raw := logger.GetTenantID(ctx)
	if raw == "" {
		return uuid.Nil, ErrTenantIDRequired
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidTenantID
	}
	return id, nil
}

// TenantDB wraps GORM DB with automatic tenant scoping
type TenantDB struct {
	db *gorm.DB
}

// NewTenantDB creates a new TenantDB
func NewTenantDB(db *gorm.DB) *TenantDB {
	return &TenantDB{db: db}
}

// WithContext returns a GORM DB scoped to the tenant from context. Without a
// valid tenant id every statement run on the returned DB fails.
func (t *TenantDB) WithContext(ctx context.Context) *gorm.DB {
	db := t.db.WithContext(ctx)
	tenantID, err := FromContext(ctx)
	if err != nil {
		_ = db.AddError(err)
		return db
	}
	return db.Scopes(TenantScope(tenantID))
}

// ForTenant scopes to an explicit tenant id
func (t *TenantDB) ForTenant(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	db := t.db.WithContext(ctx)
	if tenantID == uuid.Nil {
		_ = db.AddError(ErrTenantIDRequired)
		return db
	}
	return db.Scopes(TenantScope(tenantID))
}

// Unscoped returns the underlying DB without any tenant scoping.
// It is reserved for global lookups such as authentication.
func (t *TenantDB) Unscoped() *gorm.DB {
	return t.db
}
