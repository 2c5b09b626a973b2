package models

// QueryResult is one retrieved (and possibly reranked) passage.
// RelevanceScore is always higher-is-more-relevant; whether it is the
// store's native similarity or a cross-encoder score depends on which
// pipeline stage produced the final ordering.
type QueryResult struct {
	RecordID       string  `json:"record_id"`
	Reference      string  `json:"reference"`
	Text           string  `json:"text"`
	Book           string  `json:"book"`
	RelevanceScore float64 `json:"relevance_score"`
	Rank           int     `json:"rank"`
}

// Answer is the terminal product of a query: the ranked passages and,
// when generation ran and succeeded, a synthesized answer.
type Answer struct {
	Query         string        `json:"query"`
	Passages      []QueryResult `json:"passages"`
	GeneratedText string        `json:"generated_text,omitempty"`
}

// SearchRequest is the request body for POST /search.
type SearchRequest struct {
	Query           string   `json:"query" validate:"required"`
	TopK            int      `json:"top_k"`
	Books           []string `json:"books,omitempty"`
	UseReranker     *bool    `json:"use_reranker,omitempty"`
	GenerateAnswer  bool     `json:"generate_answer"`
	RetrievalFactor float64  `json:"retrieval_factor,omitempty"`
}

// SearchResponse is the response body for POST /search.
type SearchResponse struct {
	Query         string        `json:"query"`
	Results       []QueryResult `json:"results"`
	GeneratedText string        `json:"generated_text,omitempty"`
	Warnings      []string      `json:"warnings,omitempty"`
}
