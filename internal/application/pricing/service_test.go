package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	businessTypes *MockBusinessTypeRepository
	products      *MockTemplateRepository
	services      *MockTemplateRepository
	rules         *MockRuleRepository
	svc           *Service
	bt            *catalog.BusinessType
}

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		businessTypes: new(MockBusinessTypeRepository),
		products:      &MockTemplateRepository{kind: catalog.KindProduct},
		services:      &MockTemplateRepository{kind: catalog.KindService},
		rules:         new(MockRuleRepository),
	}
	f.svc = NewService(f.businessTypes, f.products, f.services, f.rules,
		pricing.DefaultRegistry(), ServiceConfig{}, zap.NewNop())
	f.svc.now = func() time.Time { return fixedNow }

	bt, err := catalog.NewBusinessType("carpet_cleaning", "Carpet Cleaning")
	require.NoError(t, err)
	f.bt = bt
	return f
}

func (f *fixture) template(kind catalog.TemplateKind, price string) *catalog.Template {
	return &catalog.Template{
		BaseEntity:     shared.NewBaseEntity(),
		BusinessTypeID: f.bt.ID,
		Kind:           kind,
		Name:           string(kind) + " template",
		BasePrice:      decimal.RequireFromString(price),
		Category:       catalog.DefaultCategory,
		Attributes:     catalog.Attributes{},
		IsActive:       true,
	}
}

func percentageRule(t *testing.T, businessTypeID uuid.UUID, pct string) *pricing.Rule {
	t.Helper()
	calc, err := pricing.ParseCalculation([]byte(`{"percentage":` + pct + `}`))
	require.NoError(t, err)
	r, err := pricing.NewRule(pricing.RuleSpec{
		BusinessTypeID: businessTypeID,
		Name:           "Spring sale",
		RuleType:       pricing.RuleTypePercentageDiscount,
		Calculation:    calc,
	}, pricing.DefaultRegistry())
	require.NoError(t, err)
	return r
}

func TestCalculate_AppliesActiveRules(t *testing.T) {
	f := newFixture(t)
	product := f.template(catalog.KindProduct, "100")
	service := f.template(catalog.KindService, "50")
	rule := percentageRule(t, f.bt.ID, "10")

	f.businessTypes.On("FindByID", mock.Anything, f.bt.ID).Return(f.bt, nil)
	f.rules.On("FindByBusinessType", mock.Anything, f.bt.ID, mock.MatchedBy(func(b *bool) bool { return b != nil && *b })).
		Return([]*pricing.Rule{rule}, nil)
	f.products.On("FindInBusinessType", mock.Anything, f.bt.ID, product.ID).Return(product, nil)
	f.services.On("FindInBusinessType", mock.Anything, f.bt.ID, service.ID).Return(service, nil)

	result, err := f.svc.Calculate(context.Background(), CalculateInput{
		BusinessTypeID: f.bt.ID,
		Items: []ItemInput{
			{Type: catalog.KindProduct, TemplateID: product.ID, Quantity: decimal.NewFromInt(2)},
			{Type: catalog.KindService, TemplateID: service.ID},
		},
	})
	require.NoError(t, err)

	calc := result.Calculation
	require.Len(t, calc.Items, 2)
	assert.Equal(t, product.ID, calc.Items[0].TemplateID, "items keep request order")
	assert.True(t, calc.Items[1].Quantity.Equal(decimal.NewFromInt(1)), "zero quantity defaults to 1")
	assert.True(t, calc.Subtotal.Equal(decimal.NewFromInt(250)))
	require.Len(t, calc.Discounts, 1)
	assert.True(t, calc.Discounts[0].Amount.Equal(decimal.NewFromInt(25)))
	assert.True(t, calc.Total.Equal(decimal.NewFromInt(225)))

	assert.Equal(t, f.bt.ID, result.BusinessType.ID)
	assert.Equal(t, "Carpet Cleaning", result.BusinessType.DisplayName)
	assert.Equal(t, fixedNow, result.CalculatedAt)
	assert.Equal(t, fixedNow.Add(DefaultQuoteValidity), result.ValidUntil)
	f.products.AssertExpectations(t)
	f.services.AssertExpectations(t)
}

func TestCalculate_UnknownBusinessType(t *testing.T) {
	f := newFixture(t)
	f.businessTypes.On("FindByID", mock.Anything, f.bt.ID).Return(nil, shared.ErrNotFound)

	_, err := f.svc.Calculate(context.Background(), CalculateInput{
		BusinessTypeID: f.bt.ID,
		Items:          []ItemInput{{Type: catalog.KindProduct, TemplateID: uuid.New()}},
	})
	assert.Equal(t, shared.CodeBusinessTypeNotFound, shared.CodeOf(err))
	f.rules.AssertNotCalled(t, "FindByBusinessType", mock.Anything, mock.Anything, mock.Anything)
}

func TestCalculate_TemplateOfAnotherBusinessType(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New()
	f.businessTypes.On("FindByID", mock.Anything, f.bt.ID).Return(f.bt, nil)
	f.rules.On("FindByBusinessType", mock.Anything, f.bt.ID, mock.Anything).Return([]*pricing.Rule{}, nil).Maybe()
	f.products.On("FindInBusinessType", mock.Anything, f.bt.ID, missing).Return(nil, shared.ErrNotFound)

	_, err := f.svc.Calculate(context.Background(), CalculateInput{
		BusinessTypeID: f.bt.ID,
		Items:          []ItemInput{{Type: catalog.KindProduct, TemplateID: missing}},
	})
	assert.Equal(t, shared.CodeTemplateNotFound, shared.CodeOf(err))
}

func TestCalculate_SkipsBrokenRules(t *testing.T) {
	f := newFixture(t)
	product := f.template(catalog.KindProduct, "80")
	good := percentageRule(t, f.bt.ID, "50")
	broken := pricing.RehydrateRule(shared.NewBaseEntity(), f.bt.ID, "Broken", "",
		pricing.RuleTypeFixedDiscount, pricing.Conditions{}, pricing.Calculation{}, true, 0,
		errors.New("invalid calculation: unknown field \"nope\""))

	f.businessTypes.On("FindByID", mock.Anything, f.bt.ID).Return(f.bt, nil)
	f.rules.On("FindByBusinessType", mock.Anything, f.bt.ID, mock.Anything).Return([]*pricing.Rule{broken, good}, nil)
	f.products.On("FindInBusinessType", mock.Anything, f.bt.ID, product.ID).Return(product, nil)

	result, err := f.svc.Calculate(context.Background(), CalculateInput{
		BusinessTypeID: f.bt.ID,
		Items:          []ItemInput{{Type: catalog.KindProduct, TemplateID: product.ID}},
		DiscountCodes:  []string{"WELCOME"},
	})
	require.NoError(t, err)
	assert.True(t, result.Calculation.Total.Equal(decimal.NewFromInt(40)))
	require.Len(t, result.Calculation.Skipped, 1)
	assert.Equal(t, "Broken", result.Calculation.Skipped[0].Name)
	assert.Equal(t, []string{"WELCOME"}, result.Calculation.IgnoredDiscountCodes)
}

func TestCalculate_ValidatesItems(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name  string
		items []ItemInput
	}{
		{"no items", nil},
		{"bad type", []ItemInput{{Type: "bundle", TemplateID: uuid.New()}}},
		{"missing template", []ItemInput{{Type: catalog.KindProduct}}},
		{"negative quantity", []ItemInput{{Type: catalog.KindProduct, TemplateID: uuid.New(), Quantity: decimal.NewFromInt(-1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Calculate(context.Background(), CalculateInput{BusinessTypeID: f.bt.ID, Items: tt.items})
			assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
		})
	}
	f.businessTypes.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreateRule(t *testing.T) {
	calc, err := pricing.ParseCalculation([]byte(`{"amount":15}`))
	require.NoError(t, err)

	t.Run("creates active rule by default", func(t *testing.T) {
		f := newFixture(t)
		f.businessTypes.On("FindByID", mock.Anything, f.bt.ID).Return(f.bt, nil)
		f.rules.On("ExistsByName", mock.Anything, f.bt.ID, "Loyalty", (*uuid.UUID)(nil)).Return(false, nil)
		f.rules.On("Create", mock.Anything, mock.AnythingOfType("*pricing.Rule")).Return(nil)

		resp, err := f.svc.CreateRule(context.Background(), CreateRuleInput{
			BusinessTypeID: f.bt.ID,
			Name:           " Loyalty ",
			RuleType:       pricing.RuleTypeFixedDiscount,
			Calculation:    calc,
		})
		require.NoError(t, err)
		assert.Equal(t, "Loyalty", resp.Name)
		assert.True(t, resp.IsActive)
		assert.Equal(t, 0, resp.Priority)
		require.NotNil(t, resp.BusinessType)
		assert.Equal(t, "carpet_cleaning", resp.BusinessType.Name)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		f := newFixture(t)
		f.businessTypes.On("FindByID", mock.Anything, f.bt.ID).Return(f.bt, nil)
		f.rules.On("ExistsByName", mock.Anything, f.bt.ID, "Loyalty", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := f.svc.CreateRule(context.Background(), CreateRuleInput{
			BusinessTypeID: f.bt.ID,
			Name:           "Loyalty",
			RuleType:       pricing.RuleTypeFixedDiscount,
			Calculation:    calc,
		})
		assert.Equal(t, shared.CodeDuplicateRuleName, shared.CodeOf(err))
		f.rules.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown business type", func(t *testing.T) {
		f := newFixture(t)
		f.businessTypes.On("FindByID", mock.Anything, f.bt.ID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.CreateRule(context.Background(), CreateRuleInput{BusinessTypeID: f.bt.ID, Name: "x"})
		assert.Equal(t, shared.CodeBusinessTypeNotFound, shared.CodeOf(err))
	})

	t.Run("invalid calculation for rule type", func(t *testing.T) {
		f := newFixture(t)
		f.businessTypes.On("FindByID", mock.Anything, f.bt.ID).Return(f.bt, nil)

		_, err := f.svc.CreateRule(context.Background(), CreateRuleInput{
			BusinessTypeID: f.bt.ID,
			Name:           "Bad",
			RuleType:       pricing.RuleTypePercentageDiscount,
			Calculation:    calc,
		})
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestUpdateRule(t *testing.T) {
	t.Run("missing rule", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		f.rules.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := f.svc.UpdateRule(context.Background(), id, pricing.RuleUpdate{})
		assert.Equal(t, shared.CodeNotFound, shared.CodeOf(err))
	})

	t.Run("renames and saves", func(t *testing.T) {
		f := newFixture(t)
		rule := percentageRule(t, f.bt.ID, "10")
		name := "Winter sale"
		priority := 5
		f.rules.On("FindByID", mock.Anything, rule.ID).Return(rule, nil)
		f.rules.On("ExistsByName", mock.Anything, f.bt.ID, name, &rule.ID).Return(false, nil)
		f.rules.On("Save", mock.Anything, rule).Return(nil)

		resp, err := f.svc.UpdateRule(context.Background(), rule.ID, pricing.RuleUpdate{Name: &name, Priority: &priority})
		require.NoError(t, err)
		assert.Equal(t, name, resp.Name)
		assert.Equal(t, 5, resp.Priority)
		f.rules.AssertExpectations(t)
	})
}

func TestDeleteRule(t *testing.T) {
	f := newFixture(t)
	rule := percentageRule(t, f.bt.ID, "10")
	f.rules.On("FindByID", mock.Anything, rule.ID).Return(rule, nil)
	f.rules.On("Delete", mock.Anything, rule.ID).Return(nil)

	require.NoError(t, f.svc.DeleteRule(context.Background(), rule.ID))

	missing := uuid.New()
	f.rules.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
	assert.Equal(t, shared.CodeNotFound, shared.CodeOf(f.svc.DeleteRule(context.Background(), missing)))
}

func TestListRules(t *testing.T) {
	f := newFixture(t)
	rule := percentageRule(t, f.bt.ID, "10")
	f.businessTypes.On("FindByID", mock.Anything, f.bt.ID).Return(f.bt, nil)
	f.rules.On("FindByBusinessType", mock.Anything, f.bt.ID, (*bool)(nil)).Return([]*pricing.Rule{rule}, nil)

	list, err := f.svc.ListRules(context.Background(), f.bt.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, f.bt.ID, list.BusinessTypeID)
	assert.Equal(t, "Carpet Cleaning", list.Rules[0].BusinessType.DisplayName)
}

func TestRuleTypes(t *testing.T) {
	f := newFixture(t)
	assert.Len(t, f.svc.RuleTypes(), len(pricing.AllRuleTypes()))
}
