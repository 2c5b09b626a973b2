package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/scripture-search-engine/internal/books"
	"github.com/scripture-search-engine/internal/models"
	"github.com/scripture-search-engine/internal/services"
)

type fakeEngine struct {
	answer   models.Answer
	warnings []error
	err      error
	gotQuery string
	gotOpts  services.QueryOptions
}

func (f *fakeEngine) Query(ctx context.Context, query string, opts services.QueryOptions) (models.Answer, []error, error) {
	f.gotQuery = query
	f.gotOpts = opts
	return f.answer, f.warnings, f.err
}

func doSearch(t *testing.T, engine Searcher, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewSearchHandler(engine)
	if err := h.Search(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestSearchSuccess(t *testing.T) {
	engine := &fakeEngine{
		answer: models.Answer{
			Query: "what is faith",
			Passages: []models.QueryResult{
				{RecordID: "alma-32-21", Reference: "Alma 32:21", Text: "faith is not to have a perfect knowledge", Book: "Alma", RelevanceScore: 0.9, Rank: 1},
			},
			GeneratedText: "Faith is hope in things unseen [Alma 32:21].",
		},
	}

	rec := doSearch(t, engine, `{"query":"what is faith","top_k":3,"books":["Alma"],"generate_answer":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Query != "what is faith" || len(resp.Results) != 1 || resp.GeneratedText == "" {
		t.Errorf("response = %+v", resp)
	}
	if engine.gotOpts.TopK != 3 || !engine.gotOpts.GenerateAnswer || len(engine.gotOpts.Books) != 1 {
		t.Errorf("engine opts = %+v", engine.gotOpts)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	rec := doSearch(t, &fakeEngine{}, `{"top_k":3}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchClampsTopK(t *testing.T) {
	engine := &fakeEngine{}
	doSearch(t, engine, `{"query":"faith","top_k":500}`)
	if engine.gotOpts.TopK != maxTopK {
		t.Errorf("TopK = %d, want clamp to %d", engine.gotOpts.TopK, maxTopK)
	}

	doSearch(t, engine, `{"query":"faith"}`)
	if engine.gotOpts.TopK != services.DefaultTopK {
		t.Errorf("TopK = %d, want default when omitted", engine.gotOpts.TopK)
	}
}

func TestSearchUnknownBookIsBadRequest(t *testing.T) {
	engine := &fakeEngine{err: &books.UnknownBookError{Name: "Atlantis"}}
	rec := doSearch(t, engine, `{"query":"faith","books":["Atlantis"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchEngineFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("store offline")}
	rec := doSearch(t, engine, `{"query":"faith"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestSearchSurfacesWarnings(t *testing.T) {
	engine := &fakeEngine{
		answer:   models.Answer{Query: "faith"},
		warnings: []error{&services.InsufficientCandidatesWarning{Requested: 5, Got: 2}},
	}

	rec := doSearch(t, engine, `{"query":"faith","top_k":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "requested 5") {
		t.Errorf("warnings = %v", resp.Warnings)
	}
}
