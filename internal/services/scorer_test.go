package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCrossEncoderScore(t *testing.T) {
	var gotPath string
	var gotReq rerankRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(rerankResponse{Scores: []float64{0.9, 0.1}})
	}))
	defer srv.Close()

	c := NewCrossEncoderClient(srv.URL)
	scores, err := c.Score(context.Background(), "what is faith", []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if gotPath != "/rerank" {
		t.Errorf("path = %q, want /rerank", gotPath)
	}
	if gotReq.Query != "what is faith" || len(gotReq.Passages) != 2 {
		t.Errorf("request = %+v", gotReq)
	}
	if len(scores) != 2 || scores[0] != 0.9 {
		t.Errorf("scores = %v", scores)
	}
}

func TestCrossEncoderEmptyPassages(t *testing.T) {
	c := NewCrossEncoderClient("http://unused.invalid")
	scores, err := c.Score(context.Background(), "q", nil)
	if err != nil {
		t.Fatalf("Score(nil) failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("scores = %v", scores)
	}
}

func TestCrossEncoderServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCrossEncoderClient(srv.URL)
	if _, err := c.Score(context.Background(), "q", []string{"p"}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestCrossEncoderScoreCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rerankResponse{Scores: []float64{0.5}})
	}))
	defer srv.Close()

	c := NewCrossEncoderClient(srv.URL)
	if _, err := c.Score(context.Background(), "q", []string{"p1", "p2"}); err == nil {
		t.Fatal("expected error when score count does not match passage count")
	}
}
