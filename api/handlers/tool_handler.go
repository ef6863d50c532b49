package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/ytdlp-bridge/internal/app"
	"github.com/yourusername/ytdlp-bridge/internal/domain"
)

// ToolHandler exposes acquire, locate and invoke over HTTP
type ToolHandler struct {
	service *app.ToolService
	logger  *zap.Logger
}

// NewToolHandler creates a new tool handler
func NewToolHandler(service *app.ToolService, logger *zap.Logger) *ToolHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ToolHandler{
		service: service,
		logger:  logger,
	}
}

// InvokeRequest represents a request to run yt-dlp.
// url is not marked required so an empty value reaches the invoker.
type InvokeRequest struct {
	URL string `json:"url"`
}

// Acquire handles POST /api/v1/tool/acquire
func (h *ToolHandler) Acquire(c *gin.Context) {
	message, err := h.service.Acquire(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Path handles GET /api/v1/tool/path
func (h *ToolHandler) Path(c *gin.Context) {
	path, err := h.service.Find()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  domain.ErrNotFound.Error(),
			"reason": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path})
}

// Invoke handles POST /api/v1/tool/invoke
func (h *ToolHandler) Invoke(c *gin.Context) {
	var req InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Run(c.Request.Context(), req.URL)
	if err != nil {
		h.logger.Warn("Client went away before yt-dlp finished",
			zap.String("url", req.URL),
			zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if result.Err != nil {
		c.JSON(statusFor(result.Err), gin.H{
			"id":    result.ID,
			"error": result.Message(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      result.ID,
		"message": result.Message(),
	})
}

// statusFor maps an operation error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedPlatform):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway
	case domain.IsProcessFailure(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
