package services

import (
	"context"
	"errors"
	"testing"

	"github.com/scripture-search-engine/internal/models"
)

func resultFixtures() []models.QueryResult {
	return []models.QueryResult{
		{RecordID: "a", Text: "first", RelevanceScore: 0.9, Rank: 1},
		{RecordID: "b", Text: "second", RelevanceScore: 0.8, Rank: 2},
		{RecordID: "c", Text: "third", RelevanceScore: 0.7, Rank: 3},
	}
}

func TestRerankReordersByScore(t *testing.T) {
	scorer := &fakeScorer{scores: []float64{0.1, 0.9, 0.5}}
	r := NewReranker(scorer)

	reranked, err := r.Rerank(context.Background(), "q", resultFixtures())
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}
	wantOrder := []string{"b", "c", "a"}
	for i, want := range wantOrder {
		if reranked[i].RecordID != want {
			t.Errorf("position %d = %s, want %s", i, reranked[i].RecordID, want)
		}
		if reranked[i].Rank != i+1 {
			t.Errorf("rank at %d = %d", i, reranked[i].Rank)
		}
	}
	if reranked[0].RelevanceScore != 0.9 {
		t.Errorf("top score = %v, want cross-encoder score", reranked[0].RelevanceScore)
	}
	if scorer.gotQuery != "q" || len(scorer.gotPassages) != 3 {
		t.Errorf("scorer saw query=%q passages=%v", scorer.gotQuery, scorer.gotPassages)
	}
}

func TestRerankTiesAreStable(t *testing.T) {
	scorer := &fakeScorer{scores: []float64{0.5, 0.5, 0.5}}
	r := NewReranker(scorer)

	reranked, err := r.Rerank(context.Background(), "q", resultFixtures())
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if reranked[i].RecordID != want {
			t.Errorf("tie order changed: position %d = %s", i, reranked[i].RecordID)
		}
	}
}

func TestRerankPreservesMembership(t *testing.T) {
	scorer := &fakeScorer{scores: []float64{0.3, 0.2, 0.1}}
	r := NewReranker(scorer)

	in := resultFixtures()
	out, err := r.Rerank(context.Background(), "q", in)
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(in))
	}
	seen := map[string]bool{}
	for _, res := range out {
		seen[res.RecordID] = true
	}
	for _, res := range in {
		if !seen[res.RecordID] {
			t.Errorf("candidate %s dropped", res.RecordID)
		}
	}
}

func TestRerankEmptyInput(t *testing.T) {
	r := NewReranker(&fakeScorer{})
	out, err := r.Rerank(context.Background(), "q", nil)
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("len(out) = %d", len(out))
	}
}

func TestRerankScorerErrorIsFatal(t *testing.T) {
	r := NewReranker(&fakeScorer{err: errors.New("model not loaded")})
	if _, err := r.Rerank(context.Background(), "q", resultFixtures()); err == nil {
		t.Fatal("expected scorer error to propagate")
	}
}

func TestRerankScoreCountMismatch(t *testing.T) {
	r := NewReranker(&fakeScorer{scores: []float64{0.1}})
	if _, err := r.Rerank(context.Background(), "q", resultFixtures()); err == nil {
		t.Fatal("expected error on score count mismatch")
	}
}
