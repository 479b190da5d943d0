package handler

// UpdateTenantRequest carries tenant profile changes
type UpdateTenantRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Domain  *string `json:"domain" binding:"omitempty,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// ListTenantsQuery pages through tenants
type ListTenantsQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=100"`
	SortBy   string `form:"sortBy" binding:"omitempty,max=50"`
	SortDir  string `form:"sortOrder" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// SetTenantStatusRequest activates or deactivates a tenant
type SetTenantStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
