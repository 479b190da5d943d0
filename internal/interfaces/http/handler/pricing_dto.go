package handler

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// CalculateItemRequest is one line to price
type CalculateItemRequest struct {
	Type             catalog.TemplateKind `json:"type" binding:"required,oneof=product service"`
	TemplateID       uuid.UUID            `json:"templateId" binding:"required"`
	Quantity         *decimal.Decimal     `json:"quantity"`
	CustomAttributes map[string]any       `json:"customAttributes"`
}

// CalculateRequest is the body of a price calculation
type CalculateRequest struct {
	BusinessTypeID uuid.UUID              `json:"businessTypeId" binding:"required"`
	Items          []CalculateItemRequest `json:"items" binding:"required,min=1,dive"`
	CustomerID     *uuid.UUID             `json:"customerId"`
	OrderDate      *pricing.RuleTime      `json:"orderDate"`
	DiscountCodes  []string               `json:"discountCodes"`
}

// ListRulesQuery filters the rules of a business type
type ListRulesQuery struct {
	IsActive *bool `form:"isActive"`
}

// CreateRuleRequest is the body of a new pricing rule. Conditions and
// calculation are decoded strictly by the domain.
type CreateRuleRequest struct {
	BusinessTypeID uuid.UUID        `json:"businessTypeId" binding:"required"`
	Name           string           `json:"name" binding:"required,max=255"`
	Description    string           `json:"description" binding:"omitempty,max=1000"`
	RuleType       pricing.RuleType `json:"ruleType" binding:"required"`
	Conditions     json.RawMessage  `json:"conditions"`
	Calculation    json.RawMessage  `json:"calculation"`
	IsActive       *bool            `json:"isActive"`
	Priority       int              `json:"priority"`
}

// UpdateRuleRequest carries rule changes; omitted fields stay unchanged
type UpdateRuleRequest struct {
	Name        *string           `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string           `json:"description" binding:"omitempty,max=1000"`
	RuleType    *pricing.RuleType `json:"ruleType"`
	Conditions  json.RawMessage   `json:"conditions"`
	Calculation json.RawMessage   `json:"calculation"`
	IsActive    *bool             `json:"isActive"`
	Priority    *int              `json:"priority"`
}
