package embeddings

import (
	"context"
	"fmt"

	"github.com/scripture-search-engine/internal/config"
)

// NewFromConfig builds the configured embedding backend.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "vertex":
		embedder, err := NewVertexEmbedder(ctx, VertexConfig{
			ProjectID: cfg.GCPProjectID,
			Location:  cfg.GCPLocation,
			Model:     cfg.VertexModel,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Vertex AI embedder: %w", err)
		}
		return embedder, nil
	case "custom", "":
		return NewCustomEmbedder(cfg.EmbeddingServiceURL), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}
