package services

import (
	"context"

	"github.com/scripture-search-engine/internal/repository"
)

// fakeStore is an in-test VectorStore that records calls and fails on
// demand. Like the real backends it keys documents by id, so repeated
// upserts of the same verse overwrite instead of duplicating.
type fakeStore struct {
	cleared int
	upserts [][]repository.Document // call log, in upsert order
	docs    map[string]repository.Document

	failBatch bool             // fail any multi-document upsert
	failIDs   map[string]error // per-id failures on single-document upserts
	connErr   error            // returned from every store call when set

	queryResults []repository.Candidate
	queryErr     error
	lastQueryK   int
	lastFilter   []string
}

func (s *fakeStore) Clear(ctx context.Context) error {
	if s.connErr != nil {
		return s.connErr
	}
	s.cleared++
	s.docs = nil
	return nil
}

func (s *fakeStore) Upsert(ctx context.Context, docs []repository.Document) error {
	if s.connErr != nil {
		return s.connErr
	}
	if s.failBatch && len(docs) > 1 {
		return errBatchRejected
	}
	if len(docs) == 1 {
		if err, ok := s.failIDs[docs[0].ID]; ok {
			return err
		}
	}
	s.upserts = append(s.upserts, docs)
	if s.docs == nil {
		s.docs = make(map[string]repository.Document)
	}
	for _, doc := range docs {
		s.docs[doc.ID] = doc
	}
	return nil
}

func (s *fakeStore) Query(ctx context.Context, text string, k int, bookFilter []string) ([]repository.Candidate, error) {
	s.lastQueryK = k
	s.lastFilter = bookFilter
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	if len(s.queryResults) > k {
		return s.queryResults[:k], nil
	}
	return s.queryResults, nil
}

func (s *fakeStore) Count(ctx context.Context) (int, error) {
	if s.connErr != nil {
		return 0, s.connErr
	}
	return len(s.docs), nil
}

func (s *fakeStore) stored() []repository.Document {
	var all []repository.Document
	for _, doc := range s.docs {
		all = append(all, doc)
	}
	return all
}

type fakeScorer struct {
	scores      []float64
	err         error
	gotQuery    string
	gotPassages []string
}

func (s *fakeScorer) Score(ctx context.Context, query string, passages []string) ([]float64, error) {
	s.gotQuery = query
	s.gotPassages = passages
	if s.err != nil {
		return nil, s.err
	}
	return s.scores, nil
}

type fakeGenerator struct {
	text      string
	err       error
	gotPrompt string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.gotPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}
