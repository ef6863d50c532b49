package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ytdlp-bridge/internal/app"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	service *app.ToolService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *app.ToolService) *HealthHandler {
	return &HealthHandler{
		service: service,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Tool    struct {
		Installed bool `json:"installed"`
	} `json:"tool"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}
	_, response.Tool.Installed = h.service.Locate()

	c.JSON(http.StatusOK, response)
}
