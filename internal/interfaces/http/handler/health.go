package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/infrastructure/logger"
)

// Pinger reports whether the database answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the /health body
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Time      string `json:"time" example:"2026-01-23T12:00:00Z"`
	Database  string `json:"database" example:"ok"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
}

// HealthHandler serves the liveness probe
type HealthHandler struct {
	db        Pinger
	timeout   time.Duration
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{
		db:        db,
		timeout:   2 * time.Second,
		startTime: time.Now(),
	}
}

// Check godoc
// @Summary      Health check
// @Description  Pings the database; 503 when it does not answer
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Time:      time.Now().Format(time.RFC3339),
		Database:  "ok",
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		GoVersion: runtime.Version(),
	}
	if err := h.db.Ping(ctx); err != nil {
		logger.FromContext(c.Request.Context()).Warn("Health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "error"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
