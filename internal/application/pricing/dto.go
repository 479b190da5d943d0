package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// ItemInput is one requested line of a calculation
type ItemInput struct {
	Type             catalog.TemplateKind
	TemplateID       uuid.UUID
	Quantity         decimal.Decimal // zero means 1
	CustomAttributes map[string]any
}

// CalculateInput is the request to price a set of items
type CalculateInput struct {
	BusinessTypeID uuid.UUID
	Items          []ItemInput
	CustomerID     *uuid.UUID
	OrderDate      *time.Time
	DiscountCodes  []string
}

// BusinessTypeRef is the short form of a business type embedded in responses
type BusinessTypeRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
}

func refOf(bt *catalog.BusinessType) BusinessTypeRef {
	return BusinessTypeRef{ID: bt.ID, Name: bt.Name, DisplayName: bt.DisplayName}
}

// CalculateResult is an advisory quote valid until ValidUntil
type CalculateResult struct {
	Calculation  pricing.PriceCalculation `json:"calculation"`
	BusinessType BusinessTypeRef          `json:"businessType"`
	CalculatedAt time.Time                `json:"calculatedAt"`
	ValidUntil   time.Time                `json:"validUntil"`
}

// CreateRuleInput holds the fields of a new rule
type CreateRuleInput struct {
	BusinessTypeID uuid.UUID
	Name           string
	Description    string
	RuleType       pricing.RuleType
	Conditions     pricing.Conditions
	Calculation    pricing.Calculation
	IsActive       *bool
	Priority       int
}

// RuleResponse is a pricing rule as returned to clients
type RuleResponse struct {
	ID             uuid.UUID           `json:"id"`
	BusinessTypeID uuid.UUID           `json:"businessTypeId"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	RuleType       pricing.RuleType    `json:"ruleType"`
	Conditions     pricing.Conditions  `json:"conditions"`
	Calculation    pricing.Calculation `json:"calculation"`
	IsActive       bool                `json:"isActive"`
	Priority       int                 `json:"priority"`
	BusinessType   *BusinessTypeRef    `json:"businessType,omitempty"`
	LoadError      string              `json:"loadError,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// ToRuleResponse converts a domain rule
func ToRuleResponse(r *pricing.Rule, bt *catalog.BusinessType) RuleResponse {
	resp := RuleResponse{
		ID:             r.ID,
		BusinessTypeID: r.BusinessTypeID,
		Name:           r.Name,
		Description:    r.Description,
		RuleType:       r.RuleType,
		Conditions:     r.Conditions,
		Calculation:    r.Calculation,
		IsActive:       r.IsActive,
		Priority:       r.Priority,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if bt != nil {
		ref := refOf(bt)
		resp.BusinessType = &ref
	}
	if err := r.LoadError(); err != nil {
		resp.LoadError = err.Error()
	}
	return resp
}

// RuleList is the rule listing of one business type
type RuleList struct {
	Rules          []RuleResponse `json:"pricingRules"`
	Total          int            `json:"total"`
	BusinessTypeID uuid.UUID      `json:"businessTypeId"`
}
