package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/servicehub/backend/internal/application/catalog"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/interfaces/http/middleware"
)

// BusinessTypeHandler handles the business type catalog
type BusinessTypeHandler struct {
	BaseHandler
	businessTypeService BusinessTypeService
}

// NewBusinessTypeHandler creates a new business type handler
func NewBusinessTypeHandler(businessTypeService BusinessTypeService) *BusinessTypeHandler {
	return &BusinessTypeHandler{businessTypeService: businessTypeService}
}

// ListActive returns the active business types
func (h *BusinessTypeHandler) ListActive(c *gin.Context) {
	list, err := h.businessTypeService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// ListAll returns every business type with its tenant count
func (h *BusinessTypeHandler) ListAll(c *gin.Context) {
	list, err := h.businessTypeService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// Get returns a business type with its active templates and rules
func (h *BusinessTypeHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	detail, err := h.businessTypeService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// Create creates a business type
func (h *BusinessTypeHandler) Create(c *gin.Context) {
	var req CreateBusinessTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	bt, err := h.businessTypeService.Create(c.Request.Context(), catalogapp.CreateBusinessTypeInput{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Business type created", bt)
}

// Update applies a partial update to a business type
func (h *BusinessTypeHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateBusinessTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	bt, err := h.businessTypeService.Update(c.Request.Context(), id, catalog.BusinessTypeUpdate{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Business type updated", bt)
}

// Delete deactivates a business type that no tenant uses
func (h *BusinessTypeHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.businessTypeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Business type deleted", nil)
}

// Restore re-activates a deleted business type
func (h *BusinessTypeHandler) Restore(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	bt, err := h.businessTypeService.Restore(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Business type restored", bt)
}

// Reorder sets the sort order of business types to their position in the list
func (h *BusinessTypeHandler) Reorder(c *gin.Context) {
	var req ReorderBusinessTypesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.businessTypeService.Reorder(c.Request.Context(), req.BusinessTypes); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Business types reordered", nil)
}

// BulkActivate activates many business types
func (h *BusinessTypeHandler) BulkActivate(c *gin.Context) {
	var req BulkBusinessTypesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.businessTypeService.BulkActivate(c.Request.Context(), req.BusinessTypeIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Business types activated", result)
}

// BulkDeactivate deactivates many business types. When any of them is in
// use nothing changes and the response lists those in use.
func (h *BusinessTypeHandler) BulkDeactivate(c *gin.Context) {
	var req BulkBusinessTypesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, inUse, err := h.businessTypeService.BulkDeactivate(c.Request.Context(), req.BusinessTypeIDs)
	if err != nil {
		var domainErr *shared.DomainError
		if len(inUse) > 0 && errors.As(err, &domainErr) {
			middleware.AbortWithDetails(c, domainErr.Code, domainErr.Message, gin.H{"inUseBusinessTypes": inUse})
			return
		}
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Business types deactivated", result)
}
