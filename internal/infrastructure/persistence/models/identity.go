package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/identity"
)

// TenantModel is the persistence model for the Tenant domain entity.
type TenantModel struct {
	BaseModel
	Name     string  `gorm:"type:varchar(200);not null"`
	Domain   *string `gorm:"type:varchar(255);uniqueIndex"`
	Type     string  `gorm:"type:varchar(50);not null;default:''"`
	Email    string  `gorm:"type:varchar(255)"`
	Phone    string  `gorm:"type:varchar(50)"`
	Address  string  `gorm:"type:text"`
	IsActive bool    `gorm:"not null;default:true;index"`
	Settings string  `gorm:"type:jsonb;not null;default:'{}'"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant.
// Business type links are loaded separately by the repository.
func (m *TenantModel) ToDomain() (*identity.Tenant, error) {
	t := &identity.Tenant{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Domain:     m.Domain,
		Type:       m.Type,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		IsActive:   m.IsActive,
	}
	if err := decodeJSON(m.Settings, &t.Settings); err != nil {
		return nil, fmt.Errorf("decode settings of tenant %s: %w", m.ID, err)
	}
	return t, nil
}

// FromDomain populates the persistence model from a domain Tenant.
func (m *TenantModel) FromDomain(t *identity.Tenant) error {
	settings, err := encodeJSON(t.Settings)
	if err != nil {
		return fmt.Errorf("encode tenant settings: %w", err)
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
	m.Domain = t.Domain
	m.Type = t.Type
	m.Email = t.Email
	m.Phone = t.Phone
	m.Address = t.Address
	m.IsActive = t.IsActive
	m.Settings = settings
	return nil
}

// TenantBusinessTypeModel links a tenant to a business type it operates in.
type TenantBusinessTypeModel struct {
	TenantID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessTypeID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	IsPrimary      bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TenantBusinessTypeModel) TableName() string {
	return "tenant_business_types"
}

// TenantBusinessTypeModelsFromDomain creates link rows for every business type of t
func TenantBusinessTypeModelsFromDomain(t *identity.Tenant) []TenantBusinessTypeModel {
	links := make([]TenantBusinessTypeModel, len(t.BusinessTypes))
	for i, l := range t.BusinessTypes {
		links[i] = TenantBusinessTypeModel{
			TenantID:       t.ID,
			BusinessTypeID: l.BusinessTypeID,
			IsPrimary:      l.IsPrimary,
			CreatedAt:      t.CreatedAt,
		}
	}
	return links
}

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	TenantScopedModel
	Email        string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone        string        `gorm:"type:varchar(50)"`
	FirstName    string        `gorm:"type:varchar(100)"`
	LastName     string        `gorm:"type:varchar(100)"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Role         identity.Role `gorm:"type:varchar(30);not null;default:'USER'"`
	IsActive     bool          `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		TenantEntity: m.ToDomainTenantEntity(),
		Email:        m.Email,
		Phone:        m.Phone,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		IsActive:     m.IsActive,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantEntity(u.TenantEntity)
	m.Email = u.Email
	m.Phone = u.Phone
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.IsActive = u.IsActive
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

