package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"maas-platform/services/api-gateway/internal/middleware"
	"maas-platform/services/api-gateway/internal/realtime"
	"maas-platform/shared/proto"
)

type createModelBody struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Version     string            `json:"version" binding:"required"`
	Framework   string            `json:"framework"`
	Tags        []string          `json:"tags"`
	Metadata    map[string]string `json:"metadata"`
	IsPublic    bool              `json:"is_public"`
}

// CreateModel registers a new model. The owner and tenant come from the
// authenticated identity, not the request body.
func (h *Handler) CreateModel(c *gin.Context) {
	var body createModelBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := &proto.CreateModelRequest{
		Name:        body.Name,
		Description: body.Description,
		Version:     body.Version,
		Framework:   body.Framework,
		Tags:        body.Tags,
		Metadata:    body.Metadata,
		IsPublic:    body.IsPublic,
	}
	if id, ok := middleware.GetIdentity(c); ok {
		req.OwnerId = id.UserID
		req.TenantId = id.TenantID
	}

	resp, err := h.registry.CreateModel(c.Request.Context(), req)
	if err != nil {
		h.respondRegistryError(c, err)
		return
	}

	h.broadcast(realtime.EventModelCreated, resp.Model.Id, resp.Model)
	c.JSON(http.StatusCreated, resp.Model)
}

// GetModel fetches a single model, serving from the cache when possible.
func (h *Handler) GetModel(c *gin.Context) {
	id := c.Param("id")

	if cached := h.cache.Get(c.Request.Context(), id); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	resp, err := h.registry.GetModel(c.Request.Context(), &proto.GetModelRequest{Id: id})
	if err != nil {
		h.respondRegistryError(c, err)
		return
	}

	h.cache.Set(c.Request.Context(), resp.Model)
	c.JSON(http.StatusOK, resp.Model)
}

// ListModels lists models with optional filters and pagination. Malformed
// page and limit values fall back to the registry defaults.
func (h *Handler) ListModels(c *gin.Context) {
	req := &proto.ListModelsRequest{
		Name:      c.Query("name"),
		Framework: c.Query("framework"),
		Status:    c.Query("status"),
		OwnerId:   c.Query("owner_id"),
		TenantId:  c.Query("tenant_id"),
	}

	if tags := c.Query("tags"); tags != "" {
		req.Tags = strings.Split(tags, ",")
	}
	if raw := c.Query("is_public"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			req.IsPublic = &v
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		req.Page = int32(page)
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		req.Limit = int32(limit)
	}

	resp, err := h.registry.ListModels(c.Request.Context(), req)
	if err != nil {
		h.respondRegistryError(c, err)
		return
	}

	models := resp.Models
	if models == nil {
		models = []*proto.Model{}
	}
	c.JSON(http.StatusOK, gin.H{
		"models": models,
		"total":  resp.Total,
		"page":   resp.Page,
		"limit":  resp.Limit,
	})
}

type updateModelBody struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	IsPublic    *bool             `json:"is_public"`
	Tags        []string          `json:"tags"`
	Metadata    map[string]string `json:"metadata"`
}

// UpdateModel applies a partial update. Absent fields are left unchanged.
func (h *Handler) UpdateModel(c *gin.Context) {
	var body updateModelBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	resp, err := h.registry.UpdateModel(c.Request.Context(), &proto.UpdateModelRequest{
		Id:          id,
		Name:        body.Name,
		Description: body.Description,
		IsPublic:    body.IsPublic,
		Tags:        body.Tags,
		Metadata:    body.Metadata,
	})
	if err != nil {
		h.respondRegistryError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), id)
	h.broadcast(realtime.EventModelUpdated, id, resp.Model)
	c.JSON(http.StatusOK, resp.Model)
}

// DeleteModel removes a model.
func (h *Handler) DeleteModel(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.registry.DeleteModel(c.Request.Context(), &proto.DeleteModelRequest{Id: id}); err != nil {
		h.respondRegistryError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), id)
	h.broadcast(realtime.EventModelDeleted, id, nil)
	c.Status(http.StatusNoContent)
}

type updateStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// UpdateModelStatus transitions a model's lifecycle status.
func (h *Handler) UpdateModelStatus(c *gin.Context) {
	var body updateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	resp, err := h.registry.UpdateModelStatus(c.Request.Context(), &proto.UpdateModelStatusRequest{
		Id:     id,
		Status: body.Status,
	})
	if err != nil {
		h.respondRegistryError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), id)
	h.broadcast(realtime.EventModelStatusChanged, id, gin.H{"status": resp.Model.Status})
	c.JSON(http.StatusOK, resp.Model)
}

type tagsBody struct {
	Tags []string `json:"tags" binding:"required"`
}

// AddModelTags attaches tags to a model.
func (h *Handler) AddModelTags(c *gin.Context) {
	var body tagsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if _, err := h.registry.AddModelTags(c.Request.Context(), &proto.AddModelTagsRequest{
		ModelId: id,
		Tags:    body.Tags,
	}); err != nil {
		h.respondRegistryError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), id)
	h.broadcast(realtime.EventModelUpdated, id, gin.H{"tags_added": body.Tags})
	c.Status(http.StatusNoContent)
}

// RemoveModelTags detaches tags from a model.
func (h *Handler) RemoveModelTags(c *gin.Context) {
	var body tagsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if _, err := h.registry.RemoveModelTags(c.Request.Context(), &proto.RemoveModelTagsRequest{
		ModelId: id,
		Tags:    body.Tags,
	}); err != nil {
		h.respondRegistryError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), id)
	h.broadcast(realtime.EventModelUpdated, id, gin.H{"tags_removed": body.Tags})
	c.Status(http.StatusNoContent)
}

type metadataBody struct {
	Metadata map[string]string `json:"metadata"`
}

// SetModelMetadata replaces the model's metadata wholesale.
func (h *Handler) SetModelMetadata(c *gin.Context) {
	var body metadataBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Metadata == nil {
		body.Metadata = map[string]string{}
	}

	id := c.Param("id")
	if _, err := h.registry.SetModelMetadata(c.Request.Context(), &proto.SetModelMetadataRequest{
		ModelId:  id,
		Metadata: body.Metadata,
	}); err != nil {
		h.respondRegistryError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), id)
	h.broadcast(realtime.EventModelUpdated, id, gin.H{"metadata": body.Metadata})
	c.Status(http.StatusNoContent)
}

// GetModelMetadata returns the model's metadata map.
func (h *Handler) GetModelMetadata(c *gin.Context) {
	resp, err := h.registry.GetModelMetadata(c.Request.Context(), &proto.GetModelMetadataRequest{
		ModelId: c.Param("id"),
	})
	if err != nil {
		h.respondRegistryError(c, err)
		return
	}

	metadata := resp.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	c.JSON(http.StatusOK, gin.H{"metadata": metadata})
}
