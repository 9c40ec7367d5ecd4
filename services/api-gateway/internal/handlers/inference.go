package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maas-platform/shared/proto"
)

type predictBody struct {
	Inputs map[string]interface{} `json:"inputs" binding:"required"`
}

// Predict validates that the target model exists and is servable. Actual
// inference serving is handled by a separate runtime; this deployment only
// fronts the registry, so a valid request is acknowledged but not executed.
func (h *Handler) Predict(c *gin.Context) {
	var body predictBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.registry.GetModel(c.Request.Context(), &proto.GetModelRequest{Id: c.Param("id")})
	if err != nil {
		h.respondRegistryError(c, err)
		return
	}

	if resp.Model.Status != "active" {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "model is not servable",
			"status": resp.Model.Status,
		})
		return
	}

	c.JSON(http.StatusNotImplemented, gin.H{
		"error":    "inference serving is not enabled on this deployment",
		"model_id": resp.Model.Id,
	})
}
