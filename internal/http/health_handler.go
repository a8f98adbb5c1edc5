package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// HealthCheck reporta si el almacenamiento responde. nil significa que no
// hay nada que chequear (modo memoria).
type HealthCheck func(ctx context.Context) error

// HealthHandler maneja GET /healthz.
type HealthHandler struct {
	logger *zap.Logger
	check  HealthCheck
}

func NewHealthHandler(logger *zap.Logger, check HealthCheck) *HealthHandler {
	return &HealthHandler{logger: logger, check: check}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if h.check != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := h.check(ctx); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
