package http

import (
	"github.com/gin-gonic/gin"

	"github.com/comparanote/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/enrich", handler.EnrichProduct)

		notebooks := v1.Group("/notebooks")
		{
			notebooks.GET("", handler.ListNotebooks)
			notebooks.GET("/:id", handler.GetNotebook)
			notebooks.POST("", handler.CreateNotebook)
			notebooks.PUT("/:id", handler.UpdateNotebook)
			notebooks.DELETE("/:id", handler.DeleteNotebook)
			notebooks.PUT("/:id/offers", handler.ReplaceOffers)
		}
	}

	return router
}
