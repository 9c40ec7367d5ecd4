package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"maas-platform/services/api-gateway/internal/tenants"
)

type createTenantBody struct {
	Name string `json:"name" binding:"required"`
	Plan string `json:"plan"`
}

// CreateTenant provisions a new tenant.
func (h *Handler) CreateTenant(c *gin.Context) {
	var body createTenantBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenant, err := h.tenants.Create(c.Request.Context(), body.Name, body.Plan)
	if err != nil {
		if errors.Is(err, tenants.ErrNameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "tenant name already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

// GetTenant fetches one tenant by id.
func (h *Handler) GetTenant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant id"})
		return
	}

	tenant, err := h.tenants.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// ListTenants returns all tenants, newest first.
func (h *Handler) ListTenants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tenants": h.tenants.List(c.Request.Context())})
}

// DeleteTenant removes a tenant. Models owned by the tenant are untouched.
func (h *Handler) DeleteTenant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant id"})
		return
	}

	if err := h.tenants.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
