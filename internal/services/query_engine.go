package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/scripture-search-engine/internal/books"
	"github.com/scripture-search-engine/internal/llm"
	"github.com/scripture-search-engine/internal/models"
)

// DefaultTopK is the number of passages returned when the caller does
// not say otherwise.
const DefaultTopK = 5

// QueryOptions tunes one query. Zero values fall back to the engine's
// configured defaults; UseReranker is a tri-state so callers can force
// the reranker either way.
type QueryOptions struct {
	TopK            int
	Books           []string
	UseReranker     *bool
	GenerateAnswer  bool
	RetrievalFactor float64
}

// QueryEngine runs the full pipeline: retrieve, optionally rerank,
// truncate, optionally generate an answer.
type QueryEngine struct {
	retriever       *Retriever
	reranker        *Reranker
	generator       llm.Generator
	registry        *books.Registry
	rerankByDefault bool
	retrievalFactor float64
}

// NewQueryEngine wires the pipeline. reranker and generator may be nil
// when those backends are not configured; the matching stages are then
// skipped (generation with a warning, reranking silently).
func NewQueryEngine(retriever *Retriever, reranker *Reranker, generator llm.Generator, registry *books.Registry, rerankByDefault bool, retrievalFactor float64) *QueryEngine {
	return &QueryEngine{
		retriever:       retriever,
		reranker:        reranker,
		generator:       generator,
		registry:        registry,
		rerankByDefault: rerankByDefault,
		retrievalFactor: retrievalFactor,
	}
}

// Query answers one natural-language query. Retrieval and reranking
// errors are fatal; generation failure degrades to passages-only with a
// GenerationFailure warning. An unknown book in the filter is fatal so
// a typo cannot silently widen the search.
func (e *QueryEngine) Query(ctx context.Context, query string, opts QueryOptions) (models.Answer, []error, error) {
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	factor := opts.RetrievalFactor
	if factor <= 0 {
		factor = e.retrievalFactor
	}

	useReranker := e.rerankByDefault
	if opts.UseReranker != nil {
		useReranker = *opts.UseReranker
	}
	useReranker = useReranker && e.reranker != nil

	bookFilter, err := e.canonicalFilter(opts.Books)
	if err != nil {
		return models.Answer{}, nil, err
	}

	fetchK := topK
	if useReranker {
		fetchK = int(math.Ceil(float64(topK) * factor))
		if fetchK < topK {
			fetchK = topK
		}
	}

	results, warnings, err := e.retriever.Retrieve(ctx, query, fetchK, bookFilter)
	if err != nil {
		return models.Answer{}, warnings, err
	}

	if useReranker {
		results, err = e.reranker.Rerank(ctx, query, results)
		if err != nil {
			return models.Answer{}, warnings, fmt.Errorf("rerank: %w", err)
		}
	}

	results = truncate(results, topK)
	answer := models.Answer{Query: query, Passages: results}

	if opts.GenerateAnswer {
		text, err := e.generate(ctx, query, results)
		if err != nil {
			warnings = append(warnings, &GenerationFailure{Err: err})
		} else {
			answer.GeneratedText = text
		}
	}
	return answer, warnings, nil
}

func (e *QueryEngine) generate(ctx context.Context, query string, passages []models.QueryResult) (string, error) {
	if e.generator == nil {
		return "", errors.New("no generator configured")
	}
	if len(passages) == 0 {
		return "", errors.New("no passages to ground the answer")
	}
	return e.generator.Generate(ctx, buildPrompt(query, passages))
}

// canonicalFilter maps user-supplied book names through the registry.
func (e *QueryEngine) canonicalFilter(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	filter := make([]string, len(names))
	for i, name := range names {
		id, err := e.registry.Canonicalize(name)
		if err != nil {
			return nil, err
		}
		filter[i] = string(id)
	}
	return filter, nil
}

// truncate keeps the top k results and renumbers ranks 1..k.
func truncate(results []models.QueryResult, k int) []models.QueryResult {
	if len(results) > k {
		results = results[:k]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// buildPrompt assembles the grounded generation prompt from
// "[reference] text" context blocks.
func buildPrompt(query string, passages []models.QueryResult) string {
	parts := make([]string, len(passages))
	for i, p := range passages {
		parts[i] = fmt.Sprintf("[%s] %s", p.Reference, p.Text)
	}

	return fmt.Sprintf(`You are a helpful assistant that answers questions about scripture passages.

Question: %s

Relevant scripture passages:
%s

Please provide a helpful answer based on the scripture passages above. Include citations in the format [Book Chapter:Verse] when referencing specific passages. Keep your answer concise and accurate.`, query, strings.Join(parts, "\n\n"))
}
