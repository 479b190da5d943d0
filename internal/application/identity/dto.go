package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/identity"
	"github.com/servicehub/backend/internal/infrastructure/auth"
)

// RegisterInput contains the input for tenant onboarding. The HTTP layer
// normalizes both the mobile and the web registration payloads into it.
type RegisterInput struct {
	AppSlug         string
	TenantName      string
	Domain          string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Password        string
	Country         string
	City            string
	BusinessTypeIDs []uuid.UUID
	DeviceInfo      map[string]string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
	TenantID *uuid.UUID
	IP       string // Client IP for login tracking
}

// UpdateProfileInput carries profile changes; nil fields are left untouched
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
}

// ChangePasswordInput contains the current and new password
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// AppInfo identifies the app a tenant registered through
type AppInfo struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// UserInfo is the user part of auth responses
type UserInfo struct {
	ID          uuid.UUID     `json:"id"`
	TenantID    uuid.UUID     `json:"tenantId"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	Role        identity.Role `json:"role"`
	IsActive    bool          `json:"isActive"`
	LastLoginAt *time.Time    `json:"lastLoginAt,omitempty"`
}

// ToUserInfo converts a domain user
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		Phone:       u.Phone,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
	}
}

// TenantInfo is the tenant part of auth and tenant responses
type TenantInfo struct {
	ID            uuid.UUID                   `json:"id"`
	Name          string                      `json:"name"`
	Domain        *string                     `json:"domain,omitempty"`
	Type          string                      `json:"type"`
	Email         string                      `json:"email,omitempty"`
	Phone         string                      `json:"phone,omitempty"`
	Address       string                      `json:"address,omitempty"`
	IsActive      bool                        `json:"isActive"`
	Settings      identity.TenantSettings     `json:"settings"`
	BusinessTypes []identity.BusinessTypeLink `json:"businessTypes,omitempty"`
	CreatedAt     time.Time                   `json:"createdAt"`
}

// ToTenantInfo converts a domain tenant
func ToTenantInfo(t *identity.Tenant) TenantInfo {
	return TenantInfo{
		ID:            t.ID,
		Name:          t.Name,
		Domain:        t.Domain,
		Type:          t.Type,
		Email:         t.Email,
		Phone:         t.Phone,
		Address:       t.Address,
		IsActive:      t.IsActive,
		Settings:      t.Settings,
		BusinessTypes: t.BusinessTypes,
		CreatedAt:     t.CreatedAt,
	}
}

// AuthResult is returned by register, login and refresh
type AuthResult struct {
	App    *AppInfo        `json:"app,omitempty"`
	User   UserInfo        `json:"user"`
	Tenant *TenantInfo     `json:"tenant,omitempty"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// TenantLookup is the public answer of find-tenant
type TenantLookup struct {
	TenantID   uuid.UUID `json:"tenantId"`
	TenantName string    `json:"tenantName"`
	Domain     *string   `json:"domain,omitempty"`
}

// Identity is the authenticated caller of a request
type Identity struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Email    string
	Role     identity.Role
	Claims   *auth.Claims
}
