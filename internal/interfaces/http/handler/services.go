package handler

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/servicehub/backend/internal/application/catalog"
	identityapp "github.com/servicehub/backend/internal/application/identity"
	pricingapp "github.com/servicehub/backend/internal/application/pricing"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/auth"
)

// AuthService is the part of identityapp.AuthService the auth endpoints use
type AuthService interface {
	Register(ctx context.Context, in identityapp.RegisterInput) (*identityapp.AuthResult, error)
	Login(ctx context.Context, in identityapp.LoginInput) (*identityapp.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*identityapp.AuthResult, error)
	Me(ctx context.Context, userID uuid.UUID) (*identityapp.AuthResult, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in identityapp.UpdateProfileInput) (*identityapp.UserInfo, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, in identityapp.ChangePasswordInput) (*auth.TokenPair, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	FindTenant(ctx context.Context, email string) (*identityapp.TenantLookup, error)
	ForgotPassword(ctx context.Context, email string) error
}

// TenantService is the part of identityapp.TenantService the tenant endpoints use
type TenantService interface {
	GetProfile(ctx context.Context, tenantID uuid.UUID) (*identityapp.TenantInfo, error)
	UpdateProfile(ctx context.Context, tenantID uuid.UUID, in identityapp.UpdateTenantInput) (*identityapp.TenantInfo, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[identityapp.TenantInfo], error)
	SetStatus(ctx context.Context, id uuid.UUID, active bool) (*identityapp.TenantInfo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PricingService is the part of pricingapp.Service the pricing endpoints use
type PricingService interface {
	Calculate(ctx context.Context, in pricingapp.CalculateInput) (*pricingapp.CalculateResult, error)
	ListRules(ctx context.Context, businessTypeID uuid.UUID, isActive *bool) (*pricingapp.RuleList, error)
	GetRule(ctx context.Context, id uuid.UUID) (*pricingapp.RuleResponse, error)
	CreateRule(ctx context.Context, in pricingapp.CreateRuleInput) (*pricingapp.RuleResponse, error)
	UpdateRule(ctx context.Context, id uuid.UUID, u pricing.RuleUpdate) (*pricingapp.RuleResponse, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
	RuleTypes() []pricing.RuleTypeInfo
}

// BusinessTypeService is the part of catalogapp.BusinessTypeService the
// business type endpoints use
type BusinessTypeService interface {
	ListActive(ctx context.Context) ([]catalogapp.BusinessTypeResponse, error)
	ListAll(ctx context.Context) ([]catalogapp.BusinessTypeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*catalogapp.BusinessTypeDetail, error)
	Create(ctx context.Context, in catalogapp.CreateBusinessTypeInput) (*catalogapp.BusinessTypeResponse, error)
	Update(ctx context.Context, id uuid.UUID, u catalog.BusinessTypeUpdate) (*catalogapp.BusinessTypeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*catalogapp.BusinessTypeResponse, error)
	Reorder(ctx context.Context, ids []uuid.UUID) error
	BulkActivate(ctx context.Context, ids []uuid.UUID) (*catalogapp.BulkResult, error)
	BulkDeactivate(ctx context.Context, ids []uuid.UUID) (*catalogapp.BulkResult, []catalogapp.InUseBusinessType, error)
}

// TemplateService is the part of catalogapp.TemplateService the template
// endpoints use
type TemplateService interface {
	Kind() catalog.TemplateKind
	List(ctx context.Context, filter catalog.TemplateFilter) ([]catalogapp.TemplateResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*catalogapp.TemplateResponse, error)
	Create(ctx context.Context, in catalogapp.CreateTemplateInput) (*catalogapp.TemplateResponse, error)
	Update(ctx context.Context, id uuid.UUID, u catalog.TemplateUpdate) (*catalogapp.TemplateResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) error
	ToggleStatus(ctx context.Context, id uuid.UUID) (*catalogapp.TemplateResponse, error)
	Categories(ctx context.Context, businessTypeID uuid.UUID) (*catalogapp.TemplateCategories, error)
}

var (
	_ AuthService         = (*identityapp.AuthService)(nil)
	_ TenantService       = (*identityapp.TenantService)(nil)
	_ PricingService      = (*pricingapp.Service)(nil)
	_ BusinessTypeService = (*catalogapp.BusinessTypeService)(nil)
	_ TemplateService     = (*catalogapp.TemplateService)(nil)
)
