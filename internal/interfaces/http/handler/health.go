package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Pinger checks a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and build information
type HealthHandler struct {
	BaseHandler
	db          Pinger
	environment string
	version     string
	startTime   time.Time
	now         func() time.Time
}

// NewHealthHandler creates a health handler. db may be nil.
func NewHealthHandler(db Pinger, environment, version string) *HealthHandler {
	return &HealthHandler{
		db:          db,
		environment: environment,
		version:     version,
		startTime:   time.Now(),
		now:         time.Now,
	}
}

// HealthResponse is the body of /health
type HealthResponse struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
	Version     string  `json:"version"`
	GoVersion   string  `json:"goVersion"`
	Database    string  `json:"database,omitempty"`
}

// Health answers 200 while the database is reachable and 503 otherwise
func (h *HealthHandler) Health(c *gin.Context) {
	now := h.now()
	resp := HealthResponse{
		Status:      "OK",
		Timestamp:   now.UTC().Format(time.RFC3339),
		Uptime:      now.Sub(h.startTime).Seconds(),
		Environment: h.environment,
		Version:     h.version,
		GoVersion:   runtime.Version(),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			resp.Status = "UNAVAILABLE"
			resp.Database = "error"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok"
	}
	c.JSON(http.StatusOK, resp)
}
