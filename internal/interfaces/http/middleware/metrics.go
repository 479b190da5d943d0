package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/servicehub/backend/internal/infrastructure/metrics"
)

// unmatchedRoute is the route label of requests that matched no route
const unmatchedRoute = "unmatched"

// Metrics records request count, latency and in-flight requests in Prometheus.
// Requests are labelled with the route template, not the raw path.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := metrics.RequestStarted()
		defer done()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
