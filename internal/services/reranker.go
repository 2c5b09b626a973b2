package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/scripture-search-engine/internal/models"
)

// Reranker reorders first-stage candidates by cross-encoder score.
type Reranker struct {
	scorer Scorer
}

func NewReranker(scorer Scorer) *Reranker {
	return &Reranker{scorer: scorer}
}

// Rerank replaces each candidate's score with its cross-encoder score
// and stably re-sorts descending. The candidate set never changes, only
// the order and scores.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []models.QueryResult) ([]models.QueryResult, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	passages := make([]string, len(candidates))
	for i, c := range candidates {
		passages[i] = c.Text
	}

	scores, err := r.scorer.Score(ctx, query, passages)
	if err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}
	if len(scores) != len(candidates) {
		return nil, fmt.Errorf("scorer returned %d scores for %d candidates", len(scores), len(candidates))
	}

	reranked := make([]models.QueryResult, len(candidates))
	copy(reranked, candidates)
	for i := range reranked {
		reranked[i].RelevanceScore = scores[i]
	}
	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].RelevanceScore > reranked[j].RelevanceScore
	})
	for i := range reranked {
		reranked[i].Rank = i + 1
	}
	return reranked, nil
}
