package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/servicehub/backend/internal/application/identity"
	"github.com/servicehub/backend/internal/domain/shared"
)

// TenantHandler handles tenant administration requests
type TenantHandler struct {
	BaseHandler
	tenantService TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// GetProfile returns the tenant of the request
func (h *TenantHandler) GetProfile(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetProfile(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}

// UpdateProfile changes the tenant of the request
func (h *TenantHandler) UpdateProfile(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	var req UpdateTenantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tenant, err := h.tenantService.UpdateProfile(c.Request.Context(), tenantID, identityapp.UpdateTenantInput{
		Name:    req.Name,
		Domain:  req.Domain,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Tenant updated", tenant)
}

// List pages through all business tenants
func (h *TenantHandler) List(c *gin.Context) {
	var q ListTenantsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	filter := shared.DefaultFilter()
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	filter.Search = q.Search
	filter.OrderBy = q.SortBy
	filter.OrderDir = q.SortDir

	page, err := h.tenantService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// SetStatus activates or deactivates a tenant
func (h *TenantHandler) SetStatus(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req SetTenantStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tenant, err := h.tenantService.SetStatus(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	message := "Tenant deactivated"
	if tenant.IsActive {
		message = "Tenant activated"
	}
	h.SuccessWithMessage(c, message, tenant)
}

// Delete soft-deletes a tenant
func (h *TenantHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.tenantService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Tenant deleted", nil)
}
