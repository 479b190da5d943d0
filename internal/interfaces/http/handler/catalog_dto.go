package handler

import (
	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateBusinessTypeRequest is the body of a new business type
type CreateBusinessTypeRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	DisplayName string `json:"displayName" binding:"required,max=255"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Icon        string `json:"icon" binding:"omitempty,max=100"`
	Color       string `json:"color" binding:"omitempty,max=50"`
	SortOrder   int    `json:"sortOrder"`
}

// UpdateBusinessTypeRequest carries business type changes
type UpdateBusinessTypeRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	DisplayName *string `json:"displayName" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Icon        *string `json:"icon" binding:"omitempty,max=100"`
	Color       *string `json:"color" binding:"omitempty,max=50"`
	SortOrder   *int    `json:"sortOrder"`
	IsActive    *bool   `json:"isActive"`
}

// ReorderBusinessTypesRequest lists business type ids in their new order
type ReorderBusinessTypesRequest struct {
	BusinessTypes []uuid.UUID `json:"businessTypes" binding:"required,min=1"`
}

// BulkBusinessTypesRequest names the business types of a bulk operation
type BulkBusinessTypesRequest struct {
	BusinessTypeIDs []uuid.UUID `json:"businessTypeIds" binding:"required,min=1"`
}

// TemplateListQuery filters template listings
type TemplateListQuery struct {
	BusinessTypeID string `form:"businessTypeId" binding:"omitempty,uuid"`
	Category       string `form:"category" binding:"omitempty,max=100"`
	IsActive       *bool  `form:"isActive"`
}

// CreateTemplateRequest is the body of a new product or service template
type CreateTemplateRequest struct {
	BusinessTypeID  uuid.UUID          `json:"businessTypeId" binding:"required"`
	Name            string             `json:"name" binding:"required,max=255"`
	Description     string             `json:"description" binding:"required,max=1000"`
	BasePrice       *decimal.Decimal   `json:"basePrice" binding:"required"`
	Unit            string             `json:"unit" binding:"omitempty,max=50"`
	DurationMinutes int                `json:"durationMinutes" binding:"omitempty,min=0"`
	Category        string             `json:"category" binding:"omitempty,max=100"`
	Attributes      catalog.Attributes `json:"attributes"`
	IsRequired      bool               `json:"isRequired"`
	IsActive        *bool              `json:"isActive"`
	SortOrder       int                `json:"sortOrder"`
}

// UpdateTemplateRequest carries template changes; omitted fields stay unchanged
type UpdateTemplateRequest struct {
	Name            *string            `json:"name" binding:"omitempty,min=1,max=255"`
	Description     *string            `json:"description" binding:"omitempty,max=1000"`
	BasePrice       *decimal.Decimal   `json:"basePrice"`
	Unit            *string            `json:"unit" binding:"omitempty,max=50"`
	DurationMinutes *int               `json:"durationMinutes" binding:"omitempty,min=0"`
	Category        *string            `json:"category" binding:"omitempty,max=100"`
	Attributes      catalog.Attributes `json:"attributes"`
	IsRequired      *bool              `json:"isRequired"`
	IsActive        *bool              `json:"isActive"`
	SortOrder       *int               `json:"sortOrder"`
}

// ReorderTemplatesRequest lists template ids in their new order
type ReorderTemplatesRequest struct {
	TemplateIDs []uuid.UUID `json:"templateIds" binding:"required,min=1"`
}
