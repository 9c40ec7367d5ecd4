package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"maas-platform/services/api-gateway/internal/auth"
	"maas-platform/services/api-gateway/internal/cache"
	"maas-platform/services/api-gateway/internal/config"
	"maas-platform/services/api-gateway/internal/middleware"
	"maas-platform/services/api-gateway/internal/realtime"
	"maas-platform/services/api-gateway/internal/tenants"
	"maas-platform/services/api-gateway/internal/users"
	"maas-platform/shared/proto"
)

// Handler carries the gateway's dependencies into the route handlers.
type Handler struct {
	cfg      *config.Config
	registry proto.ModelRegistryClient
	users    users.Store
	tenants  *tenants.Store
	auth     *auth.Service
	cache    *cache.ModelCache
	hub      *realtime.Hub
	logger   *zap.Logger
}

func New(
	cfg *config.Config,
	registry proto.ModelRegistryClient,
	userStore users.Store,
	tenantStore *tenants.Store,
	authService *auth.Service,
	modelCache *cache.ModelCache,
	hub *realtime.Hub,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		cfg:      cfg,
		registry: registry,
		users:    userStore,
		tenants:  tenantStore,
		auth:     authService,
		cache:    modelCache,
		hub:      hub,
		logger:   logger,
	}
}

// respondRegistryError translates a gRPC error from the registry into an
// HTTP response. Unrecognized errors become opaque 502s.
func (h *Handler) respondRegistryError(c *gin.Context, err error) {
	st, ok := status.FromError(err)
	if !ok {
		h.logger.Error("registry call failed",
			zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(c)))
		c.JSON(http.StatusBadGateway, gin.H{"error": "model registry unavailable"})
		return
	}

	switch st.Code() {
	case codes.NotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": st.Message()})
	case codes.AlreadyExists:
		c.JSON(http.StatusConflict, gin.H{"error": st.Message()})
	case codes.InvalidArgument:
		c.JSON(http.StatusBadRequest, gin.H{"error": st.Message()})
	case codes.Unavailable, codes.DeadlineExceeded:
		h.logger.Error("registry unavailable",
			zap.String("grpc_code", st.Code().String()),
			zap.String("request_id", middleware.GetRequestID(c)))
		c.JSON(http.StatusBadGateway, gin.H{"error": "model registry unavailable"})
	default:
		h.logger.Error("registry call failed",
			zap.String("grpc_code", st.Code().String()),
			zap.String("grpc_message", st.Message()),
			zap.String("request_id", middleware.GetRequestID(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) broadcast(eventType, modelID string, payload interface{}) {
	if h.hub == nil {
		return
	}
	h.hub.Broadcast(realtime.Event{Type: eventType, ModelID: modelID, Payload: payload})
}
