package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/servicehub/backend/internal/infrastructure/metrics"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	router := gin.New()
	router.Use(Metrics())
	router.GET("/api/v1/templates/:id", okHandler)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/templates/abc", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	w := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/api/v1/templates/:id"`)
	assert.Contains(t, w.Body.String(), `route="unmatched"`)
	assert.NotContains(t, w.Body.String(), `route="/api/v1/templates/abc"`)
}
