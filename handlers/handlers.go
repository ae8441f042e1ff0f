package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vegan-analyze-service/image"
	"vegan-analyze-service/service"
)

// Handlers represents the HTTP handlers
type Handlers struct {
	svc *service.Service
}

// NewHandlers creates new HTTP handlers
func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// AnalyzeRequest is the POST /analyze body.
type AnalyzeRequest struct {
	Image string `json:"image"`
}

// Analyze handles analyze requests: one encoded image in, the model's
// verdict text out.
func (h *Handlers) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No image provided",
		})
		return
	}

	result, err := h.svc.Analyze(req.Image)
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "vegan-analyze-service",
	})
}

// mapError translates relay errors into HTTP status codes and the exact
// user-facing messages of the API contract.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingInput):
		return http.StatusBadRequest, "No image provided"
	case errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest, "Unsupported image format. Please use one of: " + strings.Join(image.SupportedTypes, ", ")
	default:
		return http.StatusInternalServerError, "Failed to analyze image"
	}
}
