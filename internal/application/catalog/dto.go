package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// BusinessTypeResponse represents a business type in API responses
type BusinessTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	SortOrder   int       `json:"sortOrder"`
	IsActive    bool      `json:"isActive"`
	TenantCount *int64    `json:"tenantCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToBusinessTypeResponse converts a domain business type
func ToBusinessTypeResponse(bt *catalog.BusinessType) BusinessTypeResponse {
	return BusinessTypeResponse{
		ID:          bt.ID,
		Name:        bt.Name,
		DisplayName: bt.DisplayName,
		Description: bt.Description,
		Icon:        bt.Icon,
		Color:       bt.Color,
		SortOrder:   bt.SortOrder,
		IsActive:    bt.IsActive,
		CreatedAt:   bt.CreatedAt,
		UpdatedAt:   bt.UpdatedAt,
	}
}

// RuleSummary is an active pricing rule shown with its business type
type RuleSummary struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	RuleType    pricing.RuleType    `json:"ruleType"`
	Conditions  pricing.Conditions  `json:"conditions"`
	Calculation pricing.Calculation `json:"calculation"`
	Priority    int                 `json:"priority"`
}

// BusinessTypeDetail is a business type with its active templates and rules
type BusinessTypeDetail struct {
	BusinessTypeResponse
	ProductTemplates []TemplateResponse `json:"productTemplates"`
	ServiceTemplates []TemplateResponse `json:"serviceTemplates"`
	PricingRules     []RuleSummary      `json:"pricingRules"`
}

// CreateBusinessTypeInput holds the fields of a new business type
type CreateBusinessTypeInput struct {
	Name        string
	DisplayName string
	Description string
	Icon        string
	Color       string
	SortOrder   int
}

// BulkResult reports how many business types a bulk operation changed
type BulkResult struct {
	Updated int64 `json:"updatedCount"`
}

// InUseBusinessType names a business type still linked to tenants
type InUseBusinessType struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	TenantCount int64     `json:"tenantCount"`
}

// TemplateResponse represents a product or service template in API responses
type TemplateResponse struct {
	ID              uuid.UUID            `json:"id"`
	BusinessTypeID  uuid.UUID            `json:"businessTypeId"`
	Type            catalog.TemplateKind `json:"type"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	BasePrice       decimal.Decimal      `json:"basePrice"`
	Unit            string               `json:"unit,omitempty"`
	DurationMinutes int                  `json:"durationMinutes,omitempty"`
	Category        string               `json:"category"`
	Attributes      catalog.Attributes   `json:"attributes"`
	IsRequired      bool                 `json:"isRequired"`
	IsActive        bool                 `json:"isActive"`
	SortOrder       int                  `json:"sortOrder"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// ToTemplateResponse converts a domain template
func ToTemplateResponse(t *catalog.Template) TemplateResponse {
	return TemplateResponse{
		ID:              t.ID,
		BusinessTypeID:  t.BusinessTypeID,
		Type:            t.Kind,
		Name:            t.Name,
		Description:     t.Description,
		BasePrice:       t.BasePrice,
		Unit:            t.Unit,
		DurationMinutes: t.DurationMinutes,
		Category:        t.Category,
		Attributes:      t.Attributes,
		IsRequired:      t.IsRequired,
		IsActive:        t.IsActive,
		SortOrder:       t.SortOrder,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func toTemplateResponses(list []catalog.Template) []TemplateResponse {
	out := make([]TemplateResponse, len(list))
	for i := range list {
		out[i] = ToTemplateResponse(&list[i])
	}
	return out
}

// CategoryResponse is a template category with the number of active templates in it
type CategoryResponse struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
