package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	pricingapp "github.com/servicehub/backend/internal/application/pricing"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/identity"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPricingRouter(svc *MockPricingService) *gin.Engine {
	h := NewPricingHandler(svc)
	router := gin.New()
	router.Use(asCaller(testCaller(identity.RoleSuperAdmin)))
	router.POST("/pricing/calculate", h.Calculate)
	router.GET("/pricing/rules/:businessTypeId", h.ListRules)
	router.POST("/pricing/rules", h.CreateRule)
	router.PUT("/pricing/rules/:id", h.UpdateRule)
	router.DELETE("/pricing/rules/:id", h.DeleteRule)
	return router
}

func TestPricingHandler_Calculate(t *testing.T) {
	svc := new(MockPricingService)
	btID := uuid.New()
	shirt := uuid.New()
	ironing := uuid.New()

	var got pricingapp.CalculateInput
	svc.On("Calculate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(pricingapp.CalculateInput) }).
		Return(&pricingapp.CalculateResult{}, nil)

	w := doJSON(newPricingRouter(svc), http.MethodPost, "/pricing/calculate", gin.H{
		"businessTypeId": btID.String(),
		"items": []gin.H{
			{"type": "product", "templateId": shirt.String(), "quantity": "3"},
			{"type": "service", "templateId": ironing.String(), "customAttributes": gin.H{"express": true}},
		},
		"orderDate":     "2026-12-24",
		"discountCodes": []string{"XMAS"},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, btID, got.BusinessTypeID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, catalog.KindProduct, got.Items[0].Type)
	assert.True(t, got.Items[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, got.Items[1].Quantity.IsZero())
	assert.Equal(t, true, got.Items[1].CustomAttributes["express"])
	require.NotNil(t, got.OrderDate)
	assert.Equal(t, time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC), got.OrderDate.UTC())
	assert.Equal(t, []string{"XMAS"}, got.DiscountCodes)
}

func TestPricingHandler_CalculateRejects(t *testing.T) {
	btID := uuid.New().String()
	item := func(extra gin.H) gin.H {
		out := gin.H{"type": "product", "templateId": uuid.New().String()}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}

	tests := []struct {
		name string
		body gin.H
	}{
		{"no items", gin.H{"businessTypeId": btID, "items": []gin.H{}}},
		{"unknown item type", gin.H{"businessTypeId": btID, "items": []gin.H{item(gin.H{"type": "rental"})}}},
		{"negative quantity", gin.H{"businessTypeId": btID, "items": []gin.H{item(gin.H{"quantity": -1})}}},
		{"missing business type", gin.H{"items": []gin.H{item(nil)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPricingService)
			w := doJSON(newPricingRouter(svc), http.MethodPost, "/pricing/calculate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
			svc.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything)
		})
	}
}

func TestPricingHandler_CalculateUnknownTemplate(t *testing.T) {
	svc := new(MockPricingService)
	svc.On("Calculate", mock.Anything, mock.Anything).Return(nil, shared.ErrTemplateNotFound)

	w := doJSON(newPricingRouter(svc), http.MethodPost, "/pricing/calculate", gin.H{
		"businessTypeId": uuid.New().String(),
		"items":          []gin.H{{"type": "service", "templateId": uuid.New().String()}},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TEMPLATE_NOT_FOUND", errorCode(t, w))
}

func TestPricingHandler_ListRules(t *testing.T) {
	svc := new(MockPricingService)
	btID := uuid.New()
	inactive := false
	svc.On("ListRules", mock.Anything, btID, &inactive).
		Return(&pricingapp.RuleList{BusinessTypeID: btID}, nil)
	router := newPricingRouter(svc)

	w := do(router, http.MethodGet, "/pricing/rules/"+btID.String()+"?isActive=false")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"pricingRules"`)

	w = do(router, http.MethodGet, "/pricing/rules/nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestPricingHandler_CreateRule(t *testing.T) {
	btID := uuid.New()

	t.Run("strictly decodes conditions", func(t *testing.T) {
		svc := new(MockPricingService)
		w := doJSON(newPricingRouter(svc), http.MethodPost, "/pricing/rules", gin.H{
			"businessTypeId": btID.String(),
			"name":           "Weekend",
			"ruleType":       "PERCENTAGE_DISCOUNT",
			"conditions":     gin.H{"weekday": "saturday"},
			"calculation":    gin.H{"percentage": 10},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
		svc.AssertNotCalled(t, "CreateRule", mock.Anything, mock.Anything)
	})

	t.Run("creates", func(t *testing.T) {
		svc := new(MockPricingService)
		svc.On("CreateRule", mock.Anything, mock.MatchedBy(func(in pricingapp.CreateRuleInput) bool {
			return in.Name == "Bulk" &&
				in.RuleType == pricing.RuleTypeQuantityDiscount &&
				in.Conditions.MinQuantity != nil && in.Conditions.MinQuantity.Equal(decimal.NewFromInt(10)) &&
				in.Calculation.Percentage != nil && in.Calculation.Percentage.Equal(decimal.NewFromInt(5))
		})).Return(&pricingapp.RuleResponse{ID: uuid.New(), Name: "Bulk"}, nil)

		w := doJSON(newPricingRouter(svc), http.MethodPost, "/pricing/rules", gin.H{
			"businessTypeId": btID.String(),
			"name":           "Bulk",
			"ruleType":       "QUANTITY_DISCOUNT",
			"conditions":     gin.H{"minQuantity": 10},
			"calculation":    gin.H{"percentage": 5},
			"priority":       2,
		})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "Pricing rule created", decode(t, w).Message)
		svc.AssertExpectations(t)
	})
}

func TestPricingHandler_UpdateRuleLeavesOmittedFields(t *testing.T) {
	svc := new(MockPricingService)
	id := uuid.New()
	svc.On("UpdateRule", mock.Anything, id, mock.MatchedBy(func(u pricing.RuleUpdate) bool {
		return u.Priority != nil && *u.Priority == 7 && u.Conditions == nil && u.Calculation == nil && u.Name == nil
	})).Return(&pricingapp.RuleResponse{ID: id}, nil)

	w := doJSON(newPricingRouter(svc), http.MethodPut, "/pricing/rules/"+id.String(), gin.H{"priority": 7})

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	svc.AssertExpectations(t)
}

func TestPricingHandler_DeleteRuleNotFound(t *testing.T) {
	svc := new(MockPricingService)
	id := uuid.New()
	svc.On("DeleteRule", mock.Anything, id).Return(shared.NewNotFoundError("Pricing rule"))

	w := do(newPricingRouter(svc), http.MethodDelete, "/pricing/rules/"+id.String())

	assert.Equal(t, http.StatusNotFound, w.Code)
}
