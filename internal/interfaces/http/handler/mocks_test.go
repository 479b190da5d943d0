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
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in identityapp.RegisterInput) (*identityapp.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in identityapp.LoginInput) (*identityapp.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.AuthResult), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*identityapp.AuthResult, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.AuthResult), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*identityapp.AuthResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.AuthResult), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, in identityapp.UpdateProfileInput) (*identityapp.UserInfo, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserInfo), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, in identityapp.ChangePasswordInput) (*auth.TokenPair, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthService) FindTenant(ctx context.Context, email string) (*identityapp.TenantLookup, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.TenantLookup), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockTenantService is a mock implementation of TenantService
type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) GetProfile(ctx context.Context, tenantID uuid.UUID) (*identityapp.TenantInfo, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.TenantInfo), args.Error(1)
}

func (m *MockTenantService) UpdateProfile(ctx context.Context, tenantID uuid.UUID, in identityapp.UpdateTenantInput) (*identityapp.TenantInfo, error) {
	args := m.Called(ctx, tenantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.TenantInfo), args.Error(1)
}

func (m *MockTenantService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[identityapp.TenantInfo], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[identityapp.TenantInfo]), args.Error(1)
}

func (m *MockTenantService) SetStatus(ctx context.Context, id uuid.UUID, active bool) (*identityapp.TenantInfo, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.TenantInfo), args.Error(1)
}

func (m *MockTenantService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPricingService is a mock implementation of PricingService
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Calculate(ctx context.Context, in pricingapp.CalculateInput) (*pricingapp.CalculateResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricingapp.CalculateResult), args.Error(1)
}

func (m *MockPricingService) ListRules(ctx context.Context, businessTypeID uuid.UUID, isActive *bool) (*pricingapp.RuleList, error) {
	args := m.Called(ctx, businessTypeID, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricingapp.RuleList), args.Error(1)
}

func (m *MockPricingService) GetRule(ctx context.Context, id uuid.UUID) (*pricingapp.RuleResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricingapp.RuleResponse), args.Error(1)
}

func (m *MockPricingService) CreateRule(ctx context.Context, in pricingapp.CreateRuleInput) (*pricingapp.RuleResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricingapp.RuleResponse), args.Error(1)
}

func (m *MockPricingService) UpdateRule(ctx context.Context, id uuid.UUID, u pricing.RuleUpdate) (*pricingapp.RuleResponse, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricingapp.RuleResponse), args.Error(1)
}

func (m *MockPricingService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPricingService) RuleTypes() []pricing.RuleTypeInfo {
	args := m.Called()
	return args.Get(0).([]pricing.RuleTypeInfo)
}

// MockBusinessTypeService is a mock implementation of BusinessTypeService
type MockBusinessTypeService struct {
	mock.Mock
}

func (m *MockBusinessTypeService) ListActive(ctx context.Context) ([]catalogapp.BusinessTypeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.BusinessTypeResponse), args.Error(1)
}

func (m *MockBusinessTypeService) ListAll(ctx context.Context) ([]catalogapp.BusinessTypeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.BusinessTypeResponse), args.Error(1)
}

func (m *MockBusinessTypeService) Get(ctx context.Context, id uuid.UUID) (*catalogapp.BusinessTypeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.BusinessTypeDetail), args.Error(1)
}

func (m *MockBusinessTypeService) Create(ctx context.Context, in catalogapp.CreateBusinessTypeInput) (*catalogapp.BusinessTypeResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.BusinessTypeResponse), args.Error(1)
}

func (m *MockBusinessTypeService) Update(ctx context.Context, id uuid.UUID, u catalog.BusinessTypeUpdate) (*catalogapp.BusinessTypeResponse, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.BusinessTypeResponse), args.Error(1)
}

func (m *MockBusinessTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBusinessTypeService) Restore(ctx context.Context, id uuid.UUID) (*catalogapp.BusinessTypeResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.BusinessTypeResponse), args.Error(1)
}

func (m *MockBusinessTypeService) Reorder(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockBusinessTypeService) BulkActivate(ctx context.Context, ids []uuid.UUID) (*catalogapp.BulkResult, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.BulkResult), args.Error(1)
}

func (m *MockBusinessTypeService) BulkDeactivate(ctx context.Context, ids []uuid.UUID) (*catalogapp.BulkResult, []catalogapp.InUseBusinessType, error) {
	args := m.Called(ctx, ids)
	var result *catalogapp.BulkResult
	if v := args.Get(0); v != nil {
		result = v.(*catalogapp.BulkResult)
	}
	var inUse []catalogapp.InUseBusinessType
	if v := args.Get(1); v != nil {
		inUse = v.([]catalogapp.InUseBusinessType)
	}
	return result, inUse, args.Error(2)
}

// MockTemplateService is a mock implementation of TemplateService
type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) Kind() catalog.TemplateKind {
	args := m.Called()
	return args.Get(0).(catalog.TemplateKind)
}

func (m *MockTemplateService) List(ctx context.Context, filter catalog.TemplateFilter) ([]catalogapp.TemplateResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.TemplateResponse), args.Error(1)
}

func (m *MockTemplateService) Get(ctx context.Context, id uuid.UUID) (*catalogapp.TemplateResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TemplateResponse), args.Error(1)
}

func (m *MockTemplateService) Create(ctx context.Context, in catalogapp.CreateTemplateInput) (*catalogapp.TemplateResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TemplateResponse), args.Error(1)
}

func (m *MockTemplateService) Update(ctx context.Context, id uuid.UUID, u catalog.TemplateUpdate) (*catalogapp.TemplateResponse, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TemplateResponse), args.Error(1)
}

func (m *MockTemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateService) Reorder(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockTemplateService) ToggleStatus(ctx context.Context, id uuid.UUID) (*catalogapp.TemplateResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TemplateResponse), args.Error(1)
}

func (m *MockTemplateService) Categories(ctx context.Context, businessTypeID uuid.UUID) (*catalogapp.TemplateCategories, error) {
	args := m.Called(ctx, businessTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TemplateCategories), args.Error(1)
}
