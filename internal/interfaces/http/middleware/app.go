package middleware

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/servicehub/backend/internal/application/identity"
	"github.com/servicehub/backend/internal/domain/identity"
)

// AppSlugParam is the route parameter carrying the app slug
const AppSlugParam = "appSlug"

// AppSlug resolves the :appSlug route parameter against the app registry and
// rejects unknown slugs with INVALID_APP
func AppSlug(apps *identity.AppRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param(AppSlugParam)
		app, ok := apps.Lookup(slug)
		if !ok {
			err := identityapp.InvalidAppError(slug, apps.Slugs())
			AbortWithDetails(c, err.Code, err.Message, gin.H{"availableApps": apps.Slugs()})
			return
		}
		c.Set(AppKey, app)
		c.Next()
	}
}
