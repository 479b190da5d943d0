package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/servicehub/backend/internal/application/catalog"
	"github.com/servicehub/backend/internal/domain/catalog"
)

// TemplateHandler serves one template kind. Product and service templates
// each get their own handler.
type TemplateHandler struct {
	BaseHandler
	templateService TemplateService
	label           string
}

// NewTemplateHandler creates a handler for the kind of templateService
func NewTemplateHandler(templateService TemplateService) *TemplateHandler {
	label := "Product template"
	if templateService.Kind() == catalog.KindService {
		label = "Service template"
	}
	return &TemplateHandler{templateService: templateService, label: label}
}

// List returns templates filtered by business type, category and status
func (h *TemplateHandler) List(c *gin.Context) {
	var q TemplateListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	filter := catalog.TemplateFilter{Category: q.Category, IsActive: q.IsActive}
	if q.BusinessTypeID != "" {
		id := uuid.MustParse(q.BusinessTypeID)
		filter.BusinessTypeID = &id
	}

	list, err := h.templateService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// Get returns one template
func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	t, err := h.templateService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Create creates a template
func (h *TemplateHandler) Create(c *gin.Context) {
	var req CreateTemplateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := h.templateService.Create(c.Request.Context(), catalogapp.CreateTemplateInput{
		BusinessTypeID:  req.BusinessTypeID,
		Name:            req.Name,
		Description:     req.Description,
		BasePrice:       *req.BasePrice,
		Unit:            req.Unit,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
		Attributes:      req.Attributes,
		IsRequired:      req.IsRequired,
		IsActive:        req.IsActive,
		SortOrder:       req.SortOrder,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, h.label+" created", t)
}

// Update applies a partial update to a template
func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateTemplateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := h.templateService.Update(c.Request.Context(), id, catalog.TemplateUpdate{
		Name:            req.Name,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		Unit:            req.Unit,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
		Attributes:      req.Attributes,
		IsRequired:      req.IsRequired,
		IsActive:        req.IsActive,
		SortOrder:       req.SortOrder,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, h.label+" updated", t)
}

// Delete removes a template
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.templateService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, h.label+" deleted", nil)
}

// Reorder sets the sort order of templates to their position in the list
func (h *TemplateHandler) Reorder(c *gin.Context) {
	var req ReorderTemplatesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.templateService.Reorder(c.Request.Context(), req.TemplateIDs); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Templates reordered", nil)
}

// ToggleStatus flips a template's active flag
func (h *TemplateHandler) ToggleStatus(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	t, err := h.templateService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	status := "deactivated"
	if t.IsActive {
		status = "activated"
	}
	h.SuccessWithMessage(c, h.label+" "+status, t)
}

// Categories lists the categories of a business type's active templates
func (h *TemplateHandler) Categories(c *gin.Context) {
	businessTypeID, ok := h.ParamUUID(c, "businessTypeId")
	if !ok {
		return
	}
	categories, err := h.templateService.Categories(c.Request.Context(), businessTypeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}
