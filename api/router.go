package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/ytdlp-bridge/api/handlers"
	"github.com/yourusername/ytdlp-bridge/api/middleware"
	"github.com/yourusername/ytdlp-bridge/internal/app"
)

// SetupRouter sets up the HTTP router for the tool service
func SetupRouter(service *app.ToolService, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	healthHandler := handlers.NewHealthHandler(service)
	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		toolHandler := handlers.NewToolHandler(service, log)
		tool := v1.Group("/tool")
		{
			tool.POST("/acquire", toolHandler.Acquire)
			tool.GET("/path", toolHandler.Path)
			tool.POST("/invoke", toolHandler.Invoke)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
