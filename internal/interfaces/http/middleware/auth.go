package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	identityapp "github.com/servicehub/backend/internal/application/identity"
	"github.com/servicehub/backend/internal/domain/identity"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Authenticator verifies an access token and loads the acting user
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*identityapp.Identity, error)
}

// Authenticate requires a valid bearer token. The identity is stored on the
// gin context for RequireRoles and the handlers.
//
// When TenantContext resolved a tenant from the header, it must be the
// caller's own tenant unless the caller is a super administrator.
func Authenticate(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := authenticator.Authenticate(c.Request.Context(), BearerToken(c))
		if err != nil {
			abortWithDomainError(c, err)
			return
		}

		if tenantID, ok := GetTenantID(c); ok && tenantID != id.TenantID && id.Role != identity.RoleSuperAdmin {
			AbortWithError(c, shared.CodeInsufficientPermissions, "Access to another tenant is not allowed")
			return
		}
		if _, ok := GetTenantID(c); !ok {
			c.Set(TenantIDKey, id.TenantID.String())
			c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), id.TenantID.String()))
		}

		c.Set(IdentityKey, id)
		c.Set(UserIDKey, id.UserID.String())
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), id.UserID.String()))
		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			span.SetAttributes(
				attribute.String("user_id", id.UserID.String()),
				attribute.String("user_role", string(id.Role)),
			)
		}
		c.Next()
	}
}

// RequireRoles allows only the listed roles. There is no role hierarchy:
// SUPER_ADMIN passes only when listed.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	allowed := identity.NewRoleSet(roles...)
	return func(c *gin.Context) {
		id := GetIdentity(c)
		if id == nil {
			AbortWithError(c, shared.CodeAuthRequired, "Authentication required")
			return
		}
		if !allowed.Allows(id.Role) {
			logger.GetGinLogger(c).Warn("Role not allowed",
				zap.String("role", string(id.Role)),
				zap.Stringers("allowed", allowed.Roles()))
			AbortWithError(c, shared.CodeInsufficientPermissions, "Insufficient permissions")
			return
		}
		c.Next()
	}
}
