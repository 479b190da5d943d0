package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/shared"
)

// SystemTenantID is the tenant that owns super administrators
var SystemTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// TenantSettings is the typed settings document of a tenant
type TenantSettings struct {
	AppSlug      string            `json:"appSlug,omitempty" yaml:"-"`
	Currency     string            `json:"currency" yaml:"currency"`
	Timezone     string            `json:"timezone" yaml:"timezone"`
	Language     string            `json:"language" yaml:"language"`
	Features     map[string]bool   `json:"features,omitempty" yaml:"features"`
	Registration *RegistrationInfo `json:"registrationInfo,omitempty" yaml:"-"`
}

// RegistrationInfo records how a tenant was onboarded
type RegistrationInfo struct {
	AppType       string             `json:"appType"`
	AppName       string             `json:"appName"`
	Country       string             `json:"country,omitempty"`
	City          string             `json:"city,omitempty"`
	DeviceInfo    map[string]string  `json:"deviceInfo,omitempty"`
	BusinessTypes []BusinessTypeLink `json:"businessTypes,omitempty"`
}

// BusinessTypeLink is a business type a tenant operates in
type BusinessTypeLink struct {
	BusinessTypeID uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	IsPrimary      bool      `json:"isPrimary"`
}

// Tenant is the isolation boundary for every business record
type Tenant struct {
	shared.BaseEntity
	Name          string
	Domain        *string
	Type          string
	Email         string
	Phone         string
	Address       string
	IsActive      bool
	Settings      TenantSettings
	BusinessTypes []BusinessTypeLink
}

// NewTenant creates an active tenant
func NewTenant(name, tenantType string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Tenant name cannot exceed 200 characters")
	}
	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Type:       tenantType,
		IsActive:   true,
	}, nil
}

// SetDomain assigns an optional custom domain
func (t *Tenant) SetDomain(domain string) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		t.Domain = nil
		return
	}
	t.Domain = &domain
}

// LinkBusinessTypes records the business types the tenant operates in; the first is primary
func (t *Tenant) LinkBusinessTypes(links []BusinessTypeLink) {
	t.BusinessTypes = make([]BusinessTypeLink, len(links))
	for i, l := range links {
		l.IsPrimary = i == 0
		t.BusinessTypes[i] = l
	}
	t.Touch()
}

// UpdateProfile updates contact details; empty values are left unchanged
func (t *Tenant) UpdateProfile(name, email, phone, address string) error {
	if name = strings.TrimSpace(name); name != "" {
		if len(name) > 200 {
			return shared.NewValidationError("Tenant name cannot exceed 200 characters")
		}
		t.Name = name
	}
	if email != "" {
		t.Email = strings.TrimSpace(email)
	}
	if phone != "" {
		t.Phone = strings.TrimSpace(phone)
	}
	if address != "" {
		t.Address = strings.TrimSpace(address)
	}
	t.Touch()
	return nil
}

// Activate re-enables a deactivated tenant
func (t *Tenant) Activate() {
	t.IsActive = true
	t.Touch()
}

// Deactivate soft-disables the tenant; its users can no longer authenticate
func (t *Tenant) Deactivate() error {
	if t.ID == SystemTenantID {
		return shared.NewDomainError("INVALID_STATE", "The system tenant cannot be deactivated")
	}
	t.IsActive = false
	t.Touch()
	return nil
}

// IsSystem reports whether this is the super administrator tenant
func (t *Tenant) IsSystem() bool {
	return t.ID == SystemTenantID
}
