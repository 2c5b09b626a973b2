package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Scorer scores query/passage pairs with a cross-encoder. Scores are
// higher-is-more-relevant and returned in passage order.
type Scorer interface {
	Score(ctx context.Context, query string, passages []string) ([]float64, error)
}

// CrossEncoderClient implements Scorer against an HTTP reranker service
type CrossEncoderClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCrossEncoderClient creates a new cross-encoder HTTP client
func NewCrossEncoderClient(baseURL string) *CrossEncoderClient {
	return &CrossEncoderClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type rerankRequest struct {
	Query    string   `json:"query"`
	Passages []string `json:"passages"`
}

type rerankResponse struct {
	Scores []float64 `json:"scores"`
}

// Score sends all pairs in one call and returns one score per passage.
func (c *CrossEncoderClient) Score(ctx context.Context, query string, passages []string) ([]float64, error) {
	if len(passages) == 0 {
		return []float64{}, nil
	}

	jsonBody, err := json.Marshal(rerankRequest{Query: query, Passages: passages})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/rerank", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call reranker service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reranker service error: %s", string(body))
	}

	var rr rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(rr.Scores) != len(passages) {
		return nil, fmt.Errorf("reranker returned %d scores for %d passages", len(rr.Scores), len(passages))
	}
	return rr.Scores, nil
}
