// Package repository defines the vector store contract consumed by the
// indexing and retrieval services, plus its error taxonomy.
package repository

import (
	"context"
	"fmt"
)

// Document is one verse prepared for the store. EmbedText is what the
// embedding model sees; Text is the original wording persisted as
// payload.
type Document struct {
	ID        string
	Book      string
	Chapter   int
	Verse     int
	Reference string
	Text      string
	EmbedText string
}

// Candidate is one store hit with the backend's native similarity score
// (higher = more similar in every supported backend).
type Candidate struct {
	ID        string
	Book      string
	Chapter   int
	Verse     int
	Reference string
	Text      string
	Score     float64
}

// VectorStore defines operations against the external vector index.
// Implementations embed text through their configured Embedder; callers
// never see raw vectors.
type VectorStore interface {
	// Clear removes every record in the collection.
	Clear(ctx context.Context) error

	// Upsert inserts or overwrites documents keyed by their deterministic id.
	Upsert(ctx context.Context, docs []Document) error

	// Query returns up to k candidates for the query text, most similar
	// first. A non-empty bookFilter restricts candidates at the store
	// level before similarity ranking.
	Query(ctx context.Context, text string, k int, bookFilter []string) ([]Candidate, error)

	// Count returns the number of records in the collection.
	Count(ctx context.Context) (int, error)
}

// StoreConnectionError marks a store failure as a connection-level
// fault. Indexing treats it as fatal rather than a per-record error.
type StoreConnectionError struct {
	Err error
}

func (e *StoreConnectionError) Error() string {
	return fmt.Sprintf("vector store connection: %v", e.Err)
}

func (e *StoreConnectionError) Unwrap() error { return e.Err }
