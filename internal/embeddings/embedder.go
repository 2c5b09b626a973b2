// Package embeddings provides text embedding backends for the vector
// store. The store treats the embedder as opaque; which backend runs is
// a configuration concern.
package embeddings

import "context"

// TaskType tells the embedding model whether the text is a search query
// or an indexed document.
type TaskType string

const (
	TaskTypeQuery    TaskType = "RETRIEVAL_QUERY"
	TaskTypeDocument TaskType = "RETRIEVAL_DOCUMENT"
)

// Embedder defines the interface for text embedding operations
type Embedder interface {
	// Embed generates an embedding for a single text with the given task type
	Embed(ctx context.Context, text string, taskType TaskType) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts with the given task type
	EmbedBatch(ctx context.Context, texts []string, taskType TaskType) ([][]float32, error)
}
