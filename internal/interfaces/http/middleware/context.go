package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/servicehub/backend/internal/application/identity"
	"github.com/servicehub/backend/internal/domain/identity"
	"github.com/servicehub/backend/internal/infrastructure/logger"
)

// Gin context keys and headers shared by the middleware and handlers
const (
	RequestIDKey    = logger.GinRequestIDKey
	TenantIDKey     = logger.GinTenantIDKey
	UserIDKey       = logger.GinUserIDKey
	IdentityKey     = "identity"
	AppKey          = "app"
	RequestIDHeader = "X-Request-ID"
	TenantHeaderKey = "X-Tenant-ID"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

// GetRequestID returns the request id set by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// GetTenantID returns the tenant resolved by TenantContext
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(TenantIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetIdentity returns the caller authenticated by Authenticate, or nil
func GetIdentity(c *gin.Context) *identityapp.Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*identityapp.Identity)
	return id
}

// GetApp returns the app resolved by AppSlug
func GetApp(c *gin.Context) (identity.App, bool) {
	v, ok := c.Get(AppKey)
	if !ok {
		return identity.App{}, false
	}
	app, ok := v.(identity.App)
	return app, ok
}

// BearerToken extracts the token of an "Authorization: Bearer" header
func BearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
}
