package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// TenantResolver extracts the tenant id from a verified access token
type TenantResolver interface {
	TenantFromToken(accessToken string) (uuid.UUID, error)
}

// TenantContextConfig configures TenantContext
type TenantContextConfig struct {
	Resolver TenantResolver
	// PublicPaths are served without a tenant. Each is matched as the whole
	// path, or as the path under /api/<version> with an optional app slug.
	PublicPaths []string
	Logger      *zap.Logger
}

// DefaultPublicPaths lists the onboarding endpoints that never need a tenant
func DefaultPublicPaths() []string {
	return []string{
		"/auth/login",
		"/auth/register",
		"/auth/mobile/register",
		"/auth/web/register",
		"/auth/refresh",
		"/auth/forgot-password",
		"/auth/find-tenant",
		"/health",
	}
}

// TenantContext resolves the tenant of a request from the X-Tenant-ID header,
// then from the bearer token. The tenant id is stored on the gin context and
// on the request context, where tenant-scoped queries read it.
func TenantContext(cfg TenantContextConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PublicPaths == nil {
		cfg.PublicPaths = DefaultPublicPaths()
	}

	return func(c *gin.Context) {
		tenantID := uuid.Nil

		if raw := c.GetHeader(TenantHeaderKey); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				AbortWithError(c, shared.CodeValidation, "Invalid tenant ID format")
				return
			}
			tenantID = id
		} else if token := BearerToken(c); token != "" && cfg.Resolver != nil {
			id, err := cfg.Resolver.TenantFromToken(token)
			if err != nil {
				log.Warn("Could not resolve tenant from token",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err))
			} else {
				tenantID = id
			}
		}

		if tenantID == uuid.Nil {
			if isPublicPath(c.Request.URL.Path, cfg.PublicPaths) {
				c.Next()
				return
			}
			AbortWithError(c, shared.CodeTenantRequired, "Tenant information is required")
			return
		}

		c.Set(TenantIDKey, tenantID.String())
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), tenantID.String()))
		c.Next()
	}
}

func isPublicPath(path string, public []string) bool {
	path = strings.TrimSuffix(path, "/")
	rest, versioned := strings.CutPrefix(path, "/api/")
	if versioned {
		rest = dropSegment(rest)
	}
	for _, p := range public {
		if path == p {
			return true
		}
		if versioned && (rest == p || dropSegment(strings.TrimPrefix(rest, "/")) == p) {
			return true
		}
	}
	return false
}

// dropSegment removes the leading path segment of a path without its leading slash
func dropSegment(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[i:]
	}
	return ""
}
