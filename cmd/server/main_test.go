package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cours-de-latin/chartparse"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	g, err := loadGrammar("", "../../data")
	if err != nil {
		t.Fatalf("loadGrammar: %v", err)
	}
	return newHandler(chartparse.NewParser(g), nil)
}

func do(t *testing.T, h http.Handler, req *http.Request, v any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if v != nil {
		if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
			t.Fatalf("decode %s %s: %v", req.Method, req.URL, err)
		}
	}
	return rec
}

func TestParseGet(t *testing.T) {
	h := testHandler(t)
	var resp parseResponse
	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/parse?sentence=Holmes+lit+a+pipe.", nil), &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(resp.Trees) != 1 {
		t.Fatalf("got %d trees, want 1", len(resp.Trees))
	}
	chunks := resp.Trees[0].Chunks
	if len(chunks) != 2 || strings.Join(chunks[1], " ") != "a pipe" {
		t.Errorf("np_chunks = %v", chunks)
	}
	if !strings.HasPrefix(resp.Trees[0].Pretty, "S\n") {
		t.Errorf("pretty = %q", resp.Trees[0].Pretty)
	}
}

func TestParsePostTokens(t *testing.T) {
	h := testHandler(t)
	var resp parseResponse
	body := strings.NewReader(`{"tokens":["she","smiled"]}`)
	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/api/parse", body), &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(resp.Trees) != 2 {
		t.Errorf("got %d trees, want 2", len(resp.Trees))
	}
}

func TestParseNoDerivation(t *testing.T) {
	h := testHandler(t)
	body := strings.NewReader(`{"sentence":"Holmes sat on the spaceship."}`)
	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/api/parse", body), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	raw := rec.Body.String()
	if !strings.Contains(raw, `"trees":[]`) {
		t.Errorf("trees not an empty array: %s", raw)
	}
	var resp parseResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Trees) != 0 || len(resp.Missing) != 1 || resp.Missing[0] != "spaceship" {
		t.Errorf("response = %+v", resp)
	}
}

func TestParseNoDerivationKnownWords(t *testing.T) {
	h := testHandler(t)
	var resp parseResponse
	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/parse?sentence=the+the", nil), &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(resp.Trees) != 0 || len(resp.Missing) != 0 {
		t.Errorf("response = %+v", resp)
	}
}

func TestParseBadRequests(t *testing.T) {
	h := testHandler(t)
	tests := []struct {
		req    *http.Request
		status int
	}{
		{httptest.NewRequest(http.MethodGet, "/api/parse?sentence=...", nil), http.StatusBadRequest},
		{httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader("not json")), http.StatusBadRequest},
		{httptest.NewRequest(http.MethodDelete, "/api/parse", nil), http.StatusMethodNotAllowed},
		{httptest.NewRequest(http.MethodPost, "/api/grammar", nil), http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		var resp errorResponse
		rec := do(t, h, tt.req, &resp)
		if rec.Code != tt.status {
			t.Errorf("%s %s: status = %d, want %d", tt.req.Method, tt.req.URL, rec.Code, tt.status)
		}
		if resp.Error == "" {
			t.Errorf("%s %s: empty error message", tt.req.Method, tt.req.URL)
		}
	}
}

func TestGrammarEndpoint(t *testing.T) {
	h := testHandler(t)
	var resp grammarResponse
	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/grammar", nil), &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Start != "S" {
		t.Errorf("start = %q, want S", resp.Start)
	}
	if len(resp.Rules) == 0 || resp.Rules[0].LHS != "S" {
		t.Errorf("rules = %v", resp.Rules)
	}
	if len(resp.Terminals) == 0 || resp.Terminals[0] != "a" {
		t.Errorf("terminals = %v", resp.Terminals)
	}
}

func TestCORS(t *testing.T) {
	h := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/grammar", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := do(t, h, req, nil)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("missing Access-Control-Allow-Origin header")
	}
}
