package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/stretchr/testify/mock"
)

type MockBusinessTypeRepository struct {
	mock.Mock
}

func (m *MockBusinessTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.BusinessType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.BusinessType), args.Error(1)
}

func (m *MockBusinessTypeRepository) FindByName(ctx context.Context, name string) (*catalog.BusinessType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.BusinessType), args.Error(1)
}

func (m *MockBusinessTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]catalog.BusinessType, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]catalog.BusinessType), args.Error(1)
}

func (m *MockBusinessTypeRepository) Save(ctx context.Context, bt *catalog.BusinessType) error {
	return m.Called(ctx, bt).Error(0)
}

func (m *MockBusinessTypeRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockBusinessTypeRepository) SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error) {
	args := m.Called(ctx, ids, active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBusinessTypeRepository) TenantUsage(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

type MockTemplateRepository struct {
	mock.Mock
	kind catalog.TemplateKind
}

func (m *MockTemplateRepository) Kind() catalog.TemplateKind { return m.kind }

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindInBusinessType(ctx context.Context, businessTypeID, id uuid.UUID) (*catalog.Template, error) {
	args := m.Called(ctx, businessTypeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindAll(ctx context.Context, filter catalog.TemplateFilter) ([]catalog.Template, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Template), args.Error(1)
}

func (m *MockTemplateRepository) ExistsByName(ctx context.Context, businessTypeID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, businessTypeID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTemplateRepository) Create(ctx context.Context, t *catalog.Template) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTemplateRepository) Save(ctx context.Context, t *catalog.Template) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTemplateRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockTemplateRepository) Categories(ctx context.Context, businessTypeID uuid.UUID) ([]catalog.CategoryCount, error) {
	args := m.Called(ctx, businessTypeID)
	return args.Get(0).([]catalog.CategoryCount), args.Error(1)
}

type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.Rule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Rule), args.Error(1)
}

func (m *MockRuleRepository) FindByBusinessType(ctx context.Context, businessTypeID uuid.UUID, isActive *bool) ([]*pricing.Rule, error) {
	args := m.Called(ctx, businessTypeID, isActive)
	return args.Get(0).([]*pricing.Rule), args.Error(1)
}

func (m *MockRuleRepository) ExistsByName(ctx context.Context, businessTypeID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, businessTypeID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRuleRepository) Create(ctx context.Context, r *pricing.Rule) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRuleRepository) Save(ctx context.Context, r *pricing.Rule) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
