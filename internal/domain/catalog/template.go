package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TemplateKind distinguishes product templates from service templates
type TemplateKind string

const (
	KindProduct TemplateKind = "product"
	KindService TemplateKind = "service"
)

// IsValid returns true for product and service
func (k TemplateKind) IsValid() bool {
	return k == KindProduct || k == KindService
}

// DefaultCategory is used when a template is created without a category
const DefaultCategory = "GENEL"

// Template is a sellable product or service definition owned by a business type.
// Products carry a Unit, services a DurationMinutes.
type Template struct {
	shared.BaseEntity
	BusinessTypeID  uuid.UUID
	Kind            TemplateKind
	Name            string
	Description     string
	BasePrice       decimal.Decimal
	Unit            string
	DurationMinutes int
	Category        string
	Attributes      Attributes
	IsRequired      bool
	IsActive        bool
	SortOrder       int
}

// TemplateSpec holds the fields needed to create a template
type TemplateSpec struct {
	BusinessTypeID  uuid.UUID
	Kind            TemplateKind
	Name            string
	Description     string
	BasePrice       decimal.Decimal
	Unit            string
	DurationMinutes int
	Category        string
	Attributes      Attributes
	IsRequired      bool
	IsActive        bool
	SortOrder       int
}

// NewTemplate validates spec and creates a template
func NewTemplate(spec TemplateSpec) (*Template, error) {
	t := &Template{
		BaseEntity:      shared.NewBaseEntity(),
		BusinessTypeID:  spec.BusinessTypeID,
		Kind:            spec.Kind,
		Name:            strings.TrimSpace(spec.Name),
		Description:     strings.TrimSpace(spec.Description),
		BasePrice:       spec.BasePrice,
		Unit:            strings.TrimSpace(spec.Unit),
		DurationMinutes: spec.DurationMinutes,
		Category:        normalizeCategory(spec.Category),
		Attributes:      spec.Attributes,
		IsRequired:      spec.IsRequired,
		IsActive:        spec.IsActive,
		SortOrder:       spec.SortOrder,
	}
	if t.Attributes == nil {
		t.Attributes = Attributes{}
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// TemplateUpdate carries optional field changes; nil fields are left untouched
type TemplateUpdate struct {
	Name            *string
	Description     *string
	BasePrice       *decimal.Decimal
	Unit            *string
	DurationMinutes *int
	Category        *string
	Attributes      Attributes
	IsRequired      *bool
	IsActive        *bool
	SortOrder       *int
}

// Apply applies the non-nil fields of u and re-validates
func (t *Template) Apply(u TemplateUpdate) error {
	next := *t
	if u.Name != nil {
		next.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		next.Description = strings.TrimSpace(*u.Description)
	}
	if u.BasePrice != nil {
		next.BasePrice = *u.BasePrice
	}
	if u.Unit != nil {
		next.Unit = strings.TrimSpace(*u.Unit)
	}
	if u.DurationMinutes != nil {
		next.DurationMinutes = *u.DurationMinutes
	}
	if u.Category != nil {
		next.Category = normalizeCategory(*u.Category)
	}
	if u.Attributes != nil {
		next.Attributes = u.Attributes
	}
	if u.IsRequired != nil {
		next.IsRequired = *u.IsRequired
	}
	if u.IsActive != nil {
		next.IsActive = *u.IsActive
	}
	if u.SortOrder != nil {
		next.SortOrder = *u.SortOrder
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.Touch()
	*t = next
	return nil
}

// ToggleActive flips the active flag
func (t *Template) ToggleActive() {
	t.IsActive = !t.IsActive
	t.Touch()
}

func (t *Template) validate() error {
	if !t.Kind.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("invalid template kind %q", t.Kind))
	}
	if t.BusinessTypeID == uuid.Nil {
		return shared.NewValidationError("businessTypeId is required")
	}
	if t.Name == "" {
		return shared.NewValidationError("Template name is required")
	}
	if len(t.Name) > 200 {
		return shared.NewValidationError("Template name cannot exceed 200 characters")
	}
	if t.Description == "" {
		return shared.NewValidationError("Template description is required")
	}
	if t.BasePrice.IsNegative() {
		return shared.NewValidationError("basePrice cannot be negative")
	}
	switch t.Kind {
	case KindProduct:
		if t.Unit == "" {
			return shared.NewValidationError("Product templates require a unit")
		}
	case KindService:
		if t.DurationMinutes <= 0 {
			return shared.NewValidationError("Service templates require a positive duration")
		}
	}
	return t.Attributes.Validate()
}

func normalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return DefaultCategory
	}
	return c
}
