package router

import (
	"github.com/gin-gonic/gin"
	"github.com/servicehub/backend/internal/domain/identity"
	"github.com/servicehub/backend/internal/interfaces/http/handler"
	"github.com/servicehub/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers are the endpoint handlers mounted under /api/<version>
type Handlers struct {
	Auth            *handler.AuthHandler
	Tenant          *handler.TenantHandler
	Pricing         *handler.PricingHandler
	BusinessType    *handler.BusinessTypeHandler
	ProductTemplate *handler.TemplateHandler
	ServiceTemplate *handler.TemplateHandler
}

// ExposeErrors sets whether unexpected error messages reach API clients
func (h Handlers) ExposeErrors(expose bool) {
	bases := []*handler.BaseHandler{}
	if h.Auth != nil {
		bases = append(bases, &h.Auth.BaseHandler)
	}
	if h.Tenant != nil {
		bases = append(bases, &h.Tenant.BaseHandler)
	}
	if h.Pricing != nil {
		bases = append(bases, &h.Pricing.BaseHandler)
	}
	if h.BusinessType != nil {
		bases = append(bases, &h.BusinessType.BaseHandler)
	}
	if h.ProductTemplate != nil {
		bases = append(bases, &h.ProductTemplate.BaseHandler)
	}
	if h.ServiceTemplate != nil {
		bases = append(bases, &h.ServiceTemplate.BaseHandler)
	}
	for _, b := range bases {
		b.ExposeErrors = expose
	}
}

// Security is what the protected groups need to resolve tenants and callers
type Security struct {
	Authenticator middleware.Authenticator
	Tenants       middleware.TenantResolver
	Apps          *identity.AppRegistry
	PublicPaths   []string
	Logger        *zap.Logger
	// AuthLimit throttles the auth endpoints when set
	AuthLimit gin.HandlerFunc
}

func (s Security) tenantContext() gin.HandlerFunc {
	return middleware.TenantContext(middleware.TenantContextConfig{
		Resolver:    s.Tenants,
		PublicPaths: s.PublicPaths,
		Logger:      s.Logger,
	})
}

var (
	superAdminOnly = middleware.RequireRoles(identity.RoleSuperAdmin)
	tenantAdmins   = middleware.RequireRoles(identity.RoleAdmin, identity.RoleBusinessOwner, identity.RoleSuperAdmin)
	catalogAdmins  = middleware.RequireRoles(identity.RoleSuperAdmin, identity.RoleAdmin)
)

// RegisterAPI registers every API domain group on r. Call r.Setup afterwards.
func RegisterAPI(r *Router, h Handlers, sec Security) *Router {
	return r.
		Register(authRoutes(NewDomainGroup("auth", "/auth"), h.Auth, sec)).
		Register(authRoutes(
			NewDomainGroup("app-auth", "/:"+middleware.AppSlugParam+"/auth").Use(middleware.AppSlug(sec.Apps)),
			h.Auth, sec)).
		Register(tenantRoutes(h.Tenant, sec)).
		Register(pricingRoutes(h.Pricing, sec)).
		Register(businessTypeRoutes(h.BusinessType, sec)).
		Register(templateRoutes("product-templates", h.ProductTemplate, sec)).
		Register(templateRoutes("service-templates", h.ServiceTemplate, sec))
}

func authRoutes(dg *DomainGroup, h *handler.AuthHandler, sec Security) *DomainGroup {
	if sec.AuthLimit != nil {
		dg.Use(sec.AuthLimit)
	}
	dg.POST("/register", h.Register).
		POST("/mobile/register", h.MobileRegister).
		POST("/web/register", h.WebRegister).
		POST("/login", h.Login).
		POST("/refresh", h.RefreshToken).
		POST("/forgot-password", h.ForgotPassword).
		GET("/find-tenant", h.FindTenant)

	dg.Group(dg.Name()+"-session", "").
		Use(middleware.Authenticate(sec.Authenticator)).
		GET("/me", h.Me).
		PUT("/profile", h.UpdateProfile).
		PUT("/change-password", h.ChangePassword).
		POST("/logout", h.Logout)
	return dg
}

func tenantRoutes(h *handler.TenantHandler, sec Security) *DomainGroup {
	return NewDomainGroup("tenants", "/tenants").
		Use(sec.tenantContext(), middleware.Authenticate(sec.Authenticator)).
		GET("/profile", tenantAdmins, h.GetProfile).
		PUT("/profile", tenantAdmins, h.UpdateProfile).
		GET("", superAdminOnly, h.List).
		PUT("/:id/status", superAdminOnly, h.SetStatus).
		DELETE("/:id", superAdminOnly, h.Delete)
}

func pricingRoutes(h *handler.PricingHandler, sec Security) *DomainGroup {
	return NewDomainGroup("pricing", "/pricing").
		Use(sec.tenantContext(), middleware.Authenticate(sec.Authenticator)).
		POST("/calculate", h.Calculate).
		GET("/rule-types", h.RuleTypes).
		GET("/rules/:businessTypeId", h.ListRules).
		GET("/rules/detail/:id", h.GetRule).
		POST("/rules", superAdminOnly, h.CreateRule).
		PUT("/rules/:id", superAdminOnly, h.UpdateRule).
		DELETE("/rules/:id", superAdminOnly, h.DeleteRule)
}

// Business types are a shared catalog: reads are public, writes need an
// administrator but no tenant.
func businessTypeRoutes(h *handler.BusinessTypeHandler, sec Security) *DomainGroup {
	dg := NewDomainGroup("business-types", "/:"+middleware.AppSlugParam+"/business-types").
		Use(middleware.AppSlug(sec.Apps)).
		GET("", h.ListActive).
		GET("/:id", h.Get)

	admin := dg.Group("business-types-admin", "").Use(middleware.Authenticate(sec.Authenticator))
	admin.GET("/admin/all", catalogAdmins, h.ListAll)
	admin.POST("", superAdminOnly, h.Create).
		PUT("/reorder", superAdminOnly, h.Reorder).
		PUT("/:id", superAdminOnly, h.Update).
		DELETE("/:id", superAdminOnly, h.Delete).
		PATCH("/:id/restore", superAdminOnly, h.Restore).
		PATCH("/bulk-activate", superAdminOnly, h.BulkActivate).
		PATCH("/bulk-deactivate", superAdminOnly, h.BulkDeactivate)
	return dg
}

func templateRoutes(name string, h *handler.TemplateHandler, sec Security) *DomainGroup {
	return NewDomainGroup(name, "/"+name).
		Use(sec.tenantContext(), middleware.Authenticate(sec.Authenticator)).
		GET("", h.List).
		GET("/categories/:businessTypeId", h.Categories).
		GET("/:id", h.Get).
		POST("", superAdminOnly, h.Create).
		PUT("/reorder", superAdminOnly, h.Reorder).
		PUT("/:id", superAdminOnly, h.Update).
		DELETE("/:id", superAdminOnly, h.Delete).
		PATCH("/:id/toggle-status", superAdminOnly, h.ToggleStatus)
}
