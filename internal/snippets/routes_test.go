package snippets

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeMessages satisfies MessageSource from a fixed id-to-text map.
type fakeMessages map[string]string

func (f fakeMessages) MessageText(_ context.Context, id string) (string, bool, error) {
	text, ok := f[id]
	return text, ok, nil
}

func newSnippetServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	store := newTestStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store, nil, nil)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func newCaptureServer(t *testing.T, msgs fakeMessages) (*httptest.Server, *Store) {
	t.Helper()
	store := newTestStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store, nil, msgs)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp
}

func TestCreateAndGetSnippetEndpoint(t *testing.T) {
	srv, _ := newSnippetServer(t)

	var created Snippet
	resp := postJSON(t, srv.URL+"/api/snippets", map[string]string{
		"title":    "bubble sort",
		"language": "python",
		"code":     "def sort(xs): ...",
	}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", resp.StatusCode)
	}
	if created.ID == "" {
		t.Fatal("created snippet has no id")
	}

	getResp, err := http.Get(srv.URL + "/api/snippets/" + created.ID)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Errorf("GET status = %d, want 200", getResp.StatusCode)
	}

	missResp, err := http.Get(srv.URL + "/api/snippets/no-such-id")
	if err != nil {
		t.Fatalf("GET missing: %v", err)
	}
	defer missResp.Body.Close()
	if missResp.StatusCode != http.StatusNotFound {
		t.Errorf("GET missing status = %d, want 404", missResp.StatusCode)
	}
	var detail map[string]string
	if err := json.NewDecoder(missResp.Body).Decode(&detail); err != nil {
		t.Fatalf("decoding 404 body: %v", err)
	}
	if detail["detail"] != "snippet not found" {
		t.Errorf("404 detail = %q", detail["detail"])
	}
}

func TestCreateSnippetValidation(t *testing.T) {
	srv, _ := newSnippetServer(t)

	tests := []struct {
		name string
		body map[string]string
		want string
	}{
		{"missing title", map[string]string{"code": "x"}, "title is required"},
		{"missing code", map[string]string{"title": "x"}, "code is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var detail map[string]string
			resp := postJSON(t, srv.URL+"/api/snippets", tt.body, &detail)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if detail["detail"] != tt.want {
				t.Errorf("detail = %q, want %q", detail["detail"], tt.want)
			}
		})
	}

	resp, err := http.Post(srv.URL+"/api/snippets", "application/json", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("POST invalid JSON: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid JSON status = %d, want 400", resp.StatusCode)
	}
}

func TestListSnippetsEndpoint(t *testing.T) {
	srv, store := newSnippetServer(t)

	mustCreate(t, store, Snippet{Title: "a", Language: "python", Code: "pass"})
	mustCreate(t, store, Snippet{Title: "b", Language: "go", Code: "package b"})

	var list []Snippet
	resp, err := http.Get(srv.URL + "/api/snippets?language=python")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(list) != 1 || list[0].Language != "python" {
		t.Errorf("filtered list = %+v, want the single python snippet", list)
	}
}

func TestSearchSnippetsEndpoint(t *testing.T) {
	srv, store := newSnippetServer(t)

	mustCreate(t, store, Snippet{Title: "bubble sort", Language: "python", Code: "def sort(xs): ..."})

	var results []SearchResult
	resp := postJSON(t, srv.URL+"/api/snippets/search", map[string]string{"query": "sort"}, &results)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search status = %d, want 200", resp.StatusCode)
	}
	if len(results) != 1 || results[0].Title != "bubble sort" {
		t.Errorf("search results = %+v", results)
	}

	var detail map[string]string
	resp = postJSON(t, srv.URL+"/api/snippets/search", map[string]string{"query": "  "}, &detail)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty query status = %d, want 400", resp.StatusCode)
	}
	if detail["detail"] != "query is required" {
		t.Errorf("empty query detail = %q", detail["detail"])
	}
}

func TestCaptureSnippetEndpoint(t *testing.T) {
	srv, store := newCaptureServer(t, fakeMessages{
		"msg-1": "Try this:\n\n```python\nprint('hi')\n```\n\nRun it with any Python 3.",
	})

	var created Snippet
	resp := postJSON(t, srv.URL+"/api/snippets/capture", map[string]string{"message_id": "msg-1"}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("capture status = %d, want 201", resp.StatusCode)
	}
	if created.Code != "print('hi')\n" {
		t.Errorf("captured code = %q", created.Code)
	}
	if created.Language != "python" {
		t.Errorf("captured language = %q, want python", created.Language)
	}
	if created.Title != "Captured from chat" {
		t.Errorf("captured title = %q", created.Title)
	}

	stored, err := store.Get(context.Background(), created.ID)
	if err != nil || stored == nil {
		t.Fatalf("stored snippet = %v, %v", stored, err)
	}
}

func TestCaptureSnippetHonorsLanguageAndTitle(t *testing.T) {
	srv, _ := newCaptureServer(t, fakeMessages{
		"msg-1": "```python\npass\n```\nand\n```go\npackage main\n```",
	})

	var created Snippet
	resp := postJSON(t, srv.URL+"/api/snippets/capture", map[string]string{
		"message_id": "msg-1",
		"language":   "go",
		"title":      "hello server",
	}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("capture status = %d, want 201", resp.StatusCode)
	}
	if created.Code != "package main\n" {
		t.Errorf("captured code = %q, want the go block", created.Code)
	}
	if created.Language != "go" {
		t.Errorf("captured language = %q, want go", created.Language)
	}
	if created.Title != "hello server" {
		t.Errorf("captured title = %q", created.Title)
	}
}

func TestCaptureSnippetErrors(t *testing.T) {
	srv, _ := newCaptureServer(t, fakeMessages{
		"prose": "No code here, just words.",
	})

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
		wantDetail string
	}{
		{"missing message_id", map[string]string{}, http.StatusBadRequest, "message_id is required"},
		{"unknown message", map[string]string{"message_id": "nope"}, http.StatusNotFound, "message not found"},
		{"no code block", map[string]string{"message_id": "prose"}, http.StatusBadRequest, "message has no python code block"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var detail map[string]string
			resp := postJSON(t, srv.URL+"/api/snippets/capture", tt.body, &detail)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if detail["detail"] != tt.wantDetail {
				t.Errorf("detail = %q, want %q", detail["detail"], tt.wantDetail)
			}
		})
	}
}

func TestDeleteSnippetEndpoint(t *testing.T) {
	srv, store := newSnippetServer(t)

	created := mustCreate(t, store, Snippet{Title: "tmp", Code: "x"})

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/snippets/"+created.ID, nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", resp.StatusCode)
	}

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE again: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", resp.StatusCode)
	}
}
