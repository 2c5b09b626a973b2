package services

import (
	"context"
	"errors"
	"testing"

	"github.com/scripture-search-engine/internal/repository"
)

func candidateFixtures() []repository.Candidate {
	return []repository.Candidate{
		{ID: "alma-32-21", Book: "Alma", Chapter: 32, Verse: 21, Reference: "Alma 32:21", Text: "faith is not to have a perfect knowledge", Score: 0.91},
		{ID: "ether-12-6", Book: "Ether", Chapter: 12, Verse: 6, Reference: "Ether 12:6", Text: "dispute not because ye see not", Score: 0.87},
	}
}

func TestRetrieveMapsCandidates(t *testing.T) {
	store := &fakeStore{queryResults: candidateFixtures()}
	r := NewRetriever(store)

	results, warnings, err := r.Retrieve(context.Background(), "what is faith", 2, nil)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d", len(results))
	}
	first := results[0]
	if first.RecordID != "alma-32-21" || first.Reference != "Alma 32:21" ||
		first.Book != "Alma" || first.RelevanceScore != 0.91 || first.Rank != 1 {
		t.Errorf("first result = %+v", first)
	}
	if results[1].Rank != 2 {
		t.Errorf("second rank = %d", results[1].Rank)
	}
}

func TestRetrieveShortfallWarns(t *testing.T) {
	store := &fakeStore{queryResults: candidateFixtures()}
	r := NewRetriever(store)

	results, warnings, err := r.Retrieve(context.Background(), "what is faith", 10, nil)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("len(results) = %d", len(results))
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	var short *InsufficientCandidatesWarning
	if !errors.As(warnings[0], &short) {
		t.Fatalf("warning type = %T", warnings[0])
	}
	if short.Requested != 10 || short.Got != 2 {
		t.Errorf("warning = %+v", short)
	}
}

func TestRetrievePassesBookFilter(t *testing.T) {
	store := &fakeStore{}
	r := NewRetriever(store)

	if _, _, err := r.Retrieve(context.Background(), "faith", 5, []string{"Alma"}); err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(store.lastFilter) != 1 || store.lastFilter[0] != "Alma" {
		t.Errorf("filter = %v", store.lastFilter)
	}
}

func TestRetrieveStoreError(t *testing.T) {
	store := &fakeStore{queryErr: errors.New("index offline")}
	r := NewRetriever(store)

	if _, _, err := r.Retrieve(context.Background(), "faith", 5, nil); err == nil {
		t.Fatal("expected error from store")
	}
}
