package handler

import (
	"strings"

	"github.com/google/uuid"
	identityapp "github.com/servicehub/backend/internal/application/identity"
)

// MobileBusinessInfo is the business part of a mobile registration
type MobileBusinessInfo struct {
	Name            string      `json:"name" binding:"required,max=255"`
	Country         string      `json:"country"`
	City            string      `json:"city"`
	Phone           string      `json:"phone" binding:"required"`
	Email           string      `json:"email" binding:"omitempty,email"`
	BusinessTypeIDs []uuid.UUID `json:"businessTypeIds"`
}

// MobileAccountInfo is the account part of a mobile registration
type MobileAccountInfo struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// MobileRegisterRequest is the registration payload of the mobile apps
type MobileRegisterRequest struct {
	BusinessInfo *MobileBusinessInfo `json:"businessInfo" binding:"required"`
	AccountInfo  *MobileAccountInfo  `json:"accountInfo" binding:"required"`
	DeviceInfo   map[string]string   `json:"deviceInfo"`
}

// toInput normalizes a mobile registration. The username becomes the first
// name and, without an email, the login email is username@<app>.local.
func (r *MobileRegisterRequest) toInput(appSlug string) identityapp.RegisterInput {
	email := strings.TrimSpace(r.BusinessInfo.Email)
	if email == "" {
		email = r.AccountInfo.Username + "@" + appSlug + ".local"
	}
	return identityapp.RegisterInput{
		AppSlug:         appSlug,
		TenantName:      r.BusinessInfo.Name,
		FirstName:       r.AccountInfo.Username,
		Email:           email,
		Phone:           r.BusinessInfo.Phone,
		Password:        r.AccountInfo.Password,
		Country:         r.BusinessInfo.Country,
		City:            r.BusinessInfo.City,
		BusinessTypeIDs: r.BusinessInfo.BusinessTypeIDs,
		DeviceInfo:      r.DeviceInfo,
	}
}

// WebRegisterRequest is the registration payload of the web client
type WebRegisterRequest struct {
	TenantName      string      `json:"tenantName" binding:"required,max=255"`
	Domain          string      `json:"domain" binding:"omitempty,max=255"`
	FirstName       string      `json:"firstName" binding:"required,max=100"`
	LastName        string      `json:"lastName" binding:"required,max=100"`
	Email           string      `json:"email" binding:"required,email"`
	Phone           string      `json:"phone"`
	Password        string      `json:"password" binding:"required,min=6,max=72"`
	Country         string      `json:"country"`
	City            string      `json:"city"`
	BusinessTypeIDs []uuid.UUID `json:"businessTypeIds"`
}

func (r *WebRegisterRequest) toInput(appSlug string) identityapp.RegisterInput {
	return identityapp.RegisterInput{
		AppSlug:         appSlug,
		TenantName:      r.TenantName,
		Domain:          r.Domain,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		Password:        r.Password,
		Country:         r.Country,
		City:            r.City,
		BusinessTypeIDs: r.BusinessTypeIDs,
	}
}

// RegisterRequest accepts either registration format. A body carrying both
// businessInfo and accountInfo is a mobile registration.
type RegisterRequest struct {
	MobileRegisterRequest
	WebRegisterRequest
}

func (r *RegisterRequest) isMobile() bool {
	return r.BusinessInfo != nil && r.AccountInfo != nil
}

// LoginRequest is the body of a login
type LoginRequest struct {
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required"`
	TenantID *uuid.UUID `json:"tenantId"`
}

// RefreshTokenRequest is the body of a token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateProfileRequest carries profile changes; omitted fields stay unchanged
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
}

// ChangePasswordRequest is the body of a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}

// ForgotPasswordRequest is the body of a password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// FindTenantQuery is the query of find-tenant
type FindTenantQuery struct {
	Email string `form:"email" binding:"required,email"`
}
