package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/scripture-search-engine/internal/books"
	"github.com/scripture-search-engine/internal/models"
	"github.com/scripture-search-engine/internal/services"
)

// maxTopK bounds how many passages one request may ask for.
const maxTopK = 50

// Searcher runs one query through the engine. Satisfied by
// services.QueryEngine.
type Searcher interface {
	Query(ctx context.Context, query string, opts services.QueryOptions) (models.Answer, []error, error)
}

// SearchHandler handles search endpoints
type SearchHandler struct {
	engine Searcher
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(engine Searcher) *SearchHandler {
	return &SearchHandler{engine: engine}
}

// Search handles POST /search - semantic passage search
func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query is required")
	}

	topK := req.TopK
	if topK <= 0 {
		topK = services.DefaultTopK
	} else if topK > maxTopK {
		topK = maxTopK
	}

	answer, warnings, err := h.engine.Query(ctx, req.Query, services.QueryOptions{
		TopK:            topK,
		Books:           req.Books,
		UseReranker:     req.UseReranker,
		GenerateAnswer:  req.GenerateAnswer,
		RetrievalFactor: req.RetrievalFactor,
	})
	if err != nil {
		var unknown *books.UnknownBookError
		if errors.As(err, &unknown) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Search failed: "+err.Error())
	}

	resp := models.SearchResponse{
		Query:         answer.Query,
		Results:       answer.Passages,
		GeneratedText: answer.GeneratedText,
	}
	for _, w := range warnings {
		c.Logger().Warnf("search: %v", w)
		resp.Warnings = append(resp.Warnings, w.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/search", h.Search)
}
