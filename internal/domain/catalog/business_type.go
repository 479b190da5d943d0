package catalog

import (
	"strings"

	"github.com/servicehub/backend/internal/domain/shared"
)

// BusinessType is a shared catalog classification (carpet cleaning, dry cleaning, ...).
// It is not tenant-scoped; it owns templates and pricing rules.
type BusinessType struct {
	shared.BaseEntity
	Name        string
	DisplayName string
	Description string
	Icon        string
	Color       string
	SortOrder   int
	IsActive    bool
}

// NewBusinessType creates an active business type
func NewBusinessType(name, displayName string) (*BusinessType, error) {
	name = strings.TrimSpace(name)
	displayName = strings.TrimSpace(displayName)
	if name == "" || displayName == "" {
		return nil, shared.NewValidationError("Business type name and display name are required")
	}
	if len(name) > 100 {
		return nil, shared.NewValidationError("Business type name cannot exceed 100 characters")
	}
	return &BusinessType{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		DisplayName: displayName,
		IsActive:    true,
	}, nil
}

// BusinessTypeUpdate carries optional field changes; nil fields are left untouched
type BusinessTypeUpdate struct {
	Name        *string
	DisplayName *string
	Description *string
	Icon        *string
	Color       *string
	SortOrder   *int
	IsActive    *bool
}

// Apply applies the non-nil fields of u
func (b *BusinessType) Apply(u BusinessTypeUpdate) error {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return shared.NewValidationError("Business type name cannot be empty")
		}
		b.Name = name
	}
	if u.DisplayName != nil {
		dn := strings.TrimSpace(*u.DisplayName)
		if dn == "" {
			return shared.NewValidationError("Business type display name cannot be empty")
		}
		b.DisplayName = dn
	}
	if u.Description != nil {
		b.Description = *u.Description
	}
	if u.Icon != nil {
		b.Icon = *u.Icon
	}
	if u.Color != nil {
		b.Color = *u.Color
	}
	if u.SortOrder != nil {
		b.SortOrder = *u.SortOrder
	}
	if u.IsActive != nil {
		b.IsActive = *u.IsActive
	}
	b.Touch()
	return nil
}

// Deactivate soft-deletes the business type
func (b *BusinessType) Deactivate() {
	b.IsActive = false
	b.Touch()
}

// Restore re-activates a soft-deleted business type
func (b *BusinessType) Restore() {
	b.IsActive = true
	b.Touch()
}
