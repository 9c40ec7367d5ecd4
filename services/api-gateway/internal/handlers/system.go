package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"maas-platform/shared/proto"
)

// Health reports process liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "api-gateway"})
}

// Ready reports whether the registry backend is reachable. A cheap list call
// doubles as the connectivity probe.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	_, err := h.registry.ListModels(ctx, &proto.ListModelsRequest{Page: 1, Limit: 1})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"checks": gin.H{"model_registry": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": gin.H{"model_registry": "ok"},
	})
}

// ConfigInfo exposes non-sensitive runtime configuration for operators.
func (h *Handler) ConfigInfo(c *gin.Context) {
	subscribers := 0
	if h.hub != nil {
		subscribers = h.hub.ClientCount()
	}

	c.JSON(http.StatusOK, gin.H{
		"environment":     h.cfg.Environment,
		"registry_target": h.cfg.Registry.Target(),
		"cache_enabled":   h.cfg.Redis.Enabled,
		"ws_subscribers":  subscribers,
	})
}
