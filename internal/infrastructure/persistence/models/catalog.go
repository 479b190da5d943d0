package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// BusinessTypeModel is the persistence model for the BusinessType domain entity.
type BusinessTypeModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	Icon        string `gorm:"type:varchar(100)"`
	Color       string `gorm:"type:varchar(20)"`
	SortOrder   int    `gorm:"not null;default:0"`
	IsActive    bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (BusinessTypeModel) TableName() string {
	return "business_types"
}

// ToDomain converts the persistence model to a domain BusinessType.
func (m *BusinessTypeModel) ToDomain() *catalog.BusinessType {
	return &catalog.BusinessType{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		DisplayName: m.DisplayName,
		Description: m.Description,
		Icon:        m.Icon,
		Color:       m.Color,
		SortOrder:   m.SortOrder,
		IsActive:    m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain BusinessType.
func (m *BusinessTypeModel) FromDomain(b *catalog.BusinessType) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.DisplayName = b.DisplayName
	m.Description = b.Description
	m.Icon = b.Icon
	m.Color = b.Color
	m.SortOrder = b.SortOrder
	m.IsActive = b.IsActive
}

// TemplateColumns are the columns product and service templates share.
type TemplateColumns struct {
	BaseModel
	BusinessTypeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	BasePrice      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Category       string          `gorm:"type:varchar(100);not null;default:'GENEL';index"`
	Attributes     string          `gorm:"type:jsonb;not null;default:'{}'"`
	IsRequired     bool            `gorm:"not null;default:false"`
	IsActive       bool            `gorm:"not null;default:true"`
	SortOrder      int             `gorm:"not null;default:0"`
}

func (c *TemplateColumns) toDomain(kind catalog.TemplateKind) (*catalog.Template, error) {
	t := &catalog.Template{
		BaseEntity:     c.BaseModel.ToDomain(),
		BusinessTypeID: c.BusinessTypeID,
		Kind:           kind,
		Name:           c.Name,
		Description:    c.Description,
		BasePrice:      c.BasePrice,
		Category:       c.Category,
		Attributes:     catalog.Attributes{},
		IsRequired:     c.IsRequired,
		IsActive:       c.IsActive,
		SortOrder:      c.SortOrder,
	}
	if err := decodeJSON(c.Attributes, &t.Attributes); err != nil {
		return nil, fmt.Errorf("decode attributes of %s template %s: %w", kind, c.ID, err)
	}
	return t, nil
}

func (c *TemplateColumns) fromDomain(t *catalog.Template) error {
	attrs, err := encodeJSON(t.Attributes)
	if err != nil {
		return fmt.Errorf("encode template attributes: %w", err)
	}
	c.FromDomainBaseEntity(t.BaseEntity)
	c.BusinessTypeID = t.BusinessTypeID
	c.Name = t.Name
	c.Description = t.Description
	c.BasePrice = t.BasePrice
	c.Category = t.Category
	c.Attributes = attrs
	c.IsRequired = t.IsRequired
	c.IsActive = t.IsActive
	c.SortOrder = t.SortOrder
	return nil
}

// ProductTemplateModel is the persistence model for product templates.
type ProductTemplateModel struct {
	TemplateColumns
	Unit string `gorm:"type:varchar(30);not null;default:'adet'"`
}

// TableName returns the table name for GORM
func (ProductTemplateModel) TableName() string {
	return "product_templates"
}

// ToDomain converts the persistence model to a domain Template of kind product.
func (m *ProductTemplateModel) ToDomain() (*catalog.Template, error) {
	t, err := m.toDomain(catalog.KindProduct)
	if err != nil {
		return nil, err
	}
	t.Unit = m.Unit
	return t, nil
}

// FromDomain populates the persistence model from a domain Template.
func (m *ProductTemplateModel) FromDomain(t *catalog.Template) error {
	m.Unit = t.Unit
	return m.fromDomain(t)
}

// ServiceTemplateModel is the persistence model for service templates.
type ServiceTemplateModel struct {
	TemplateColumns
	DurationMinutes int `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ServiceTemplateModel) TableName() string {
	return "service_templates"
}

// ToDomain converts the persistence model to a domain Template of kind service.
func (m *ServiceTemplateModel) ToDomain() (*catalog.Template, error) {
	t, err := m.toDomain(catalog.KindService)
	if err != nil {
		return nil, err
	}
	t.DurationMinutes = m.DurationMinutes
	return t, nil
}

// FromDomain populates the persistence model from a domain Template.
func (m *ServiceTemplateModel) FromDomain(t *catalog.Template) error {
	m.DurationMinutes = t.DurationMinutes
	return m.fromDomain(t)
}
