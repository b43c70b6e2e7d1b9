// internal/handlers/health.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the database answers.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping Pinger
}

func NewHealthHandler(ping Pinger) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, i18n.T(utils.GetLangFromContext(c), i18n.KeyServerRunning))
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		logrus.WithError(err).Warn("Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
