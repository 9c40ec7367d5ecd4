package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"maas-platform/services/api-gateway/internal/middleware"
)

// Router builds the gin engine with all routes and middleware attached.
func (h *Handler) Router(logger *zap.Logger) *gin.Engine {
	if h.cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.Metrics(),
		middleware.CORS(),
	)

	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if h.hub != nil {
		r.GET("/ws/events", gin.WrapH(h.hub))
	}

	api := r.Group("/api/v1")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
		authRoutes.GET("/me", middleware.Auth(h.auth), h.Me)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(h.auth))
	{
		models := protected.Group("/models")
		{
			models.POST("", h.CreateModel)
			models.GET("", h.ListModels)
			models.GET("/:id", h.GetModel)
			models.PATCH("/:id", h.UpdateModel)
			models.DELETE("/:id", h.DeleteModel)
			models.PATCH("/:id/status", h.UpdateModelStatus)
			models.POST("/:id/tags", h.AddModelTags)
			models.DELETE("/:id/tags", h.RemoveModelTags)
			models.PUT("/:id/metadata", h.SetModelMetadata)
			models.GET("/:id/metadata", h.GetModelMetadata)
			models.POST("/:id/predict", h.Predict)
		}

		usersRoutes := protected.Group("/users")
		{
			usersRoutes.GET("", middleware.RequireRole("admin"), h.ListUsers)
			usersRoutes.GET("/:id", h.GetUser)
			usersRoutes.PATCH("/:id", middleware.RequireRole("admin"), h.UpdateUser)
			usersRoutes.DELETE("/:id", middleware.RequireRole("admin"), h.DeleteUser)
		}

		tenantRoutes := protected.Group("/tenants")
		tenantRoutes.Use(middleware.RequireRole("admin"))
		{
			tenantRoutes.POST("", h.CreateTenant)
			tenantRoutes.GET("", h.ListTenants)
			tenantRoutes.GET("/:id", h.GetTenant)
			tenantRoutes.DELETE("/:id", h.DeleteTenant)
		}

		protected.GET("/config", middleware.RequireRole("admin"), h.ConfigInfo)
	}

	return r
}
