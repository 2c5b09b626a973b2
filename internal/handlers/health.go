package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Counter reports the size of the vector index. Satisfied by
// repository.VectorStore.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store Counter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store Counter) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthResponse is the response for basic health check
type HealthResponse struct {
	Status string `json:"status"`
}

// IndexHealthResponse is the response for the vector index health check
type IndexHealthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
	})
}

// IndexHealth handles GET /health/index
func (h *HealthHandler) IndexHealth(c echo.Context) error {
	n, err := h.store.Count(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, IndexHealthResponse{
		Status:  "connected",
		Records: n,
	})
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
	g.GET("/health/index", h.IndexHealth)
}
