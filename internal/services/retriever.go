package services

import (
	"context"
	"fmt"

	"github.com/scripture-search-engine/internal/models"
	"github.com/scripture-search-engine/internal/repository"
)

// Retriever runs first-stage similarity search against the vector
// store.
type Retriever struct {
	store repository.VectorStore
}

func NewRetriever(store repository.VectorStore) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns up to k results ordered by native similarity
// descending, with ranks 1..n. A shortfall against k is surfaced as an
// InsufficientCandidatesWarning, never silently.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int, bookFilter []string) ([]models.QueryResult, []error, error) {
	candidates, err := r.store.Query(ctx, query, k, bookFilter)
	if err != nil {
		return nil, nil, fmt.Errorf("query store: %w", err)
	}

	results := make([]models.QueryResult, len(candidates))
	for i, c := range candidates {
		results[i] = models.QueryResult{
			RecordID:       c.ID,
			Reference:      c.Reference,
			Text:           c.Text,
			Book:           c.Book,
			RelevanceScore: c.Score,
			Rank:           i + 1,
		}
	}

	var warnings []error
	if len(results) < k {
		warnings = append(warnings, &InsufficientCandidatesWarning{Requested: k, Got: len(results)})
	}
	return results, warnings, nil
}
