package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gearmatch/internal/domain"
	"gearmatch/internal/infra/memory"
	transport "gearmatch/internal/transport/http"
)

func filterCatalogs() *memory.CatalogRepository {
	products := map[domain.Category][]domain.Product{
		domain.CategoryMouse: {
			{ID: "m-wireless", Category: domain.CategoryMouse, Attrs: map[string]any{"wireless": true, "price_tier": "midrange"}},
			{ID: "m-wired", Category: domain.CategoryMouse, Attrs: map[string]any{"wireless": false, "price_tier": "budget"}},
			{ID: "m-flagship", Category: domain.CategoryMouse, Attrs: map[string]any{"wireless": true, "price_tier": "flagship"}},
		},
	}
	return memory.NewCatalogRepository(memory.NewStaticCatalogLoader(products), time.Minute)
}

func postFilter(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/products/filter", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestFilterRejectsNonPost(t *testing.T) {
	handler := transport.NewFilterHandler(filterCatalogs())
	req := httptest.NewRequest(http.MethodGet, "/api/products/filter", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("expected Allow: POST, got %q", got)
	}
}

func TestFilterRejectsMalformedJSON(t *testing.T) {
	handler := transport.NewFilterHandler(filterCatalogs())
	rec := postFilter(t, handler, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFilterReportsFieldIssues(t *testing.T) {
	handler := transport.NewFilterHandler(filterCatalogs())
	rec := postFilter(t, handler, `{"category":"toaster","answers":{},"maxCandidates":9999}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Error   string            `json:"error"`
		Details []transport.Issue `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	fields := make(map[string]bool)
	for _, d := range resp.Details {
		fields[d.Field] = true
	}
	if !fields["Category"] || !fields["MaxCandidates"] {
		t.Fatalf("expected Category and MaxCandidates issues, got %+v", resp.Details)
	}
}

func TestFilterReportsAnswerIssues(t *testing.T) {
	handler := transport.NewFilterHandler(filterCatalogs())
	body := `{"category":"mouse","answers":{"wireless":"hovercraft","nonsense":"x","handedness":["left","right"]}}`
	rec := postFilter(t, handler, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Details []transport.Issue `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	fields := make(map[string]string)
	for _, d := range resp.Details {
		fields[d.Field] = d.Message
	}
	if _, ok := fields["answers.wireless"]; !ok {
		t.Fatalf("expected unknown-option issue for wireless, got %+v", resp.Details)
	}
	if _, ok := fields["answers.nonsense"]; !ok {
		t.Fatalf("expected unknown-question issue, got %+v", resp.Details)
	}
	if msg := fields["answers.handedness"]; msg != "question is single-select" {
		t.Fatalf("expected single-select issue, got %q", msg)
	}
}

func TestFilterMissingCatalogIs404(t *testing.T) {
	handler := transport.NewFilterHandler(filterCatalogs())
	rec := postFilter(t, handler, `{"category":"audio","answers":{}}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestFilterReturnsCandidates(t *testing.T) {
	handler := transport.NewFilterHandler(filterCatalogs())
	rec := postFilter(t, handler, `{"category":"mouse","answers":{"wireless":"wireless","budget":"midrange"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp transport.FilterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalProducts != 3 {
		t.Fatalf("expected 3 products scanned, got %d", resp.TotalProducts)
	}
	// m-wired fails the wireless hard filter; m-flagship exceeds the
	// midrange price cutoff.
	if len(resp.CandidateIDs) != 1 || resp.CandidateIDs[0] != "m-wireless" {
		t.Fatalf("unexpected candidates %v", resp.CandidateIDs)
	}
	if resp.TotalCandidates != 1 || resp.ReturnedCandidates != 1 {
		t.Fatalf("counts out of sync: %+v", resp)
	}
}

func TestFilterCapsReturnedCandidates(t *testing.T) {
	handler := transport.NewFilterHandler(filterCatalogs())
	rec := postFilter(t, handler, `{"category":"mouse","answers":{},"maxCandidates":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp transport.FilterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalCandidates != 3 {
		t.Fatalf("expected all 3 candidates counted, got %d", resp.TotalCandidates)
	}
	if resp.ReturnedCandidates != 2 || len(resp.CandidateIDs) != 2 {
		t.Fatalf("expected cap at 2 ids, got %+v", resp)
	}
}

func TestFilterResponseIsJSON(t *testing.T) {
	handler := transport.NewFilterHandler(filterCatalogs())
	rec := postFilter(t, handler, `{"category":"mouse","answers":{}}`)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(rec.Body.Bytes()), []byte("{")) {
		t.Fatalf("expected a JSON object body, got %q", rec.Body.String())
	}
}
