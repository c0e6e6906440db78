package embeddings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubEmbedder struct {
	vecs [][]float32
	err  error
}

func (s *stubEmbedder) Embed(_ context.Context, _ []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vecs, nil
}

func (s *stubEmbedder) Dimensions() int { return 3 }
func (s *stubEmbedder) Name() string    { return "stub" }

func TestNewUnknownProvider(t *testing.T) {
	_, err := New("bogus", "some-model", "")
	if err == nil || !strings.Contains(err.Error(), "unsupported embedding provider") {
		t.Errorf("err = %v, want unsupported provider error", err)
	}
}

func TestNewRequiresAPIKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := New("openai", "text-embedding-3-small", ""); err == nil {
		t.Error("expected error for openai without OPENAI_API_KEY")
	}

	t.Setenv("GOOGLE_API_KEY", "")
	if _, err := New("google", "gemini-embedding-001", ""); err == nil {
		t.Error("expected error for google without GOOGLE_API_KEY")
	}
}

func TestNewOllamaHostResolution(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	e, err := New("ollama", "nomic-embed-text", "")
	if err != nil {
		t.Fatalf("New(ollama): %v", err)
	}
	if host := e.(*OllamaEmbedder).host; host != "http://localhost:11434" {
		t.Errorf("host = %q, want the default", host)
	}

	t.Setenv("OLLAMA_HOST", "http://remote:11434")
	e, _ = New("ollama", "nomic-embed-text", "")
	if host := e.(*OllamaEmbedder).host; host != "http://remote:11434" {
		t.Errorf("host = %q, want the env override", host)
	}

	e, _ = New("ollama", "nomic-embed-text", "http://explicit:11434")
	if host := e.(*OllamaEmbedder).host; host != "http://explicit:11434" {
		t.Errorf("host = %q, want the explicit base URL to win", host)
	}
}

func TestOllamaEmbedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("path = %q, want /api/embed", r.URL.Path)
		}
		var req ollamaEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Model != "nomic-embed-text" || len(req.Input) != 2 {
			t.Errorf("request = %+v, want model and both texts", req)
		}
		json.NewEncoder(w).Encode(ollamaEmbedResponse{
			Embeddings: [][]float32{{0.1, 0.2}, {0.3, 0.4}},
		})
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(srv.URL, "nomic-embed-text")
	vecs, err := e.Embed(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("len(vecs) = %d, want 2", len(vecs))
	}
	if vecs[1][1] != 0.4 {
		t.Errorf("vecs[1][1] = %v, want 0.4", vecs[1][1])
	}
	if e.Name() != "ollama/nomic-embed-text" {
		t.Errorf("Name = %q, want ollama/nomic-embed-text", e.Name())
	}
}

func TestOllamaEmbedErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(srv.URL, "nomic-embed-text")
	_, err := e.Embed(context.Background(), []string{"x"})
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Errorf("err = %v, want status 500 error", err)
	}
}

func TestOllamaEmbedCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaEmbedResponse{Embeddings: [][]float32{{0.1}}})
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(srv.URL, "nomic-embed-text")
	_, err := e.Embed(context.Background(), []string{"one", "two"})
	if err == nil || !strings.Contains(err.Error(), "1 embeddings for 2 texts") {
		t.Errorf("err = %v, want count mismatch error", err)
	}
}

func TestOllamaEmbedNoTexts(t *testing.T) {
	e := NewOllamaEmbedder("http://unreachable:1", "nomic-embed-text")
	vecs, err := e.Embed(context.Background(), nil)
	if err != nil || vecs != nil {
		t.Errorf("Embed(nil) = (%v, %v), want (nil, nil) without a request", vecs, err)
	}
}

func TestGoogleEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/models/gemini-embedding-001:embedContent") {
			t.Errorf("path = %q, want embedContent for the model", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %q, want test-key", r.URL.Query().Get("key"))
		}
		w.Write([]byte(`{"embedding": {"values": [0.5, 0.25]}}`))
	}))
	defer srv.Close()

	e := NewGoogleEmbedder("test-key", "gemini-embedding-001", srv.URL)
	vecs, err := e.Embed(context.Background(), []string{"hello"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 1 || len(vecs[0]) != 2 {
		t.Fatalf("vecs = %v, want one 2-wide vector", vecs)
	}
	if vecs[0][0] != 0.5 {
		t.Errorf("vecs[0][0] = %v, want 0.5", vecs[0][0])
	}
}

func TestDimensions(t *testing.T) {
	cases := []struct {
		embedder Embedder
		want     int
	}{
		{NewOpenAIEmbedder("k", "text-embedding-3-small", ""), 1536},
		{NewOpenAIEmbedder("k", "text-embedding-3-large", ""), 3072},
		{NewOpenAIEmbedder("k", "future-model", ""), 1536},
		{NewOllamaEmbedder("http://localhost:11434", "nomic-embed-text"), 768},
		{NewOllamaEmbedder("http://localhost:11434", "mxbai-embed-large"), 1024},
		{NewOllamaEmbedder("http://localhost:11434", "custom"), 768},
		{NewGoogleEmbedder("k", "gemini-embedding-001", ""), 3072},
		{NewGoogleEmbedder("k", "text-embedding-004", ""), 768},
	}
	for _, tc := range cases {
		if got := tc.embedder.Dimensions(); got != tc.want {
			t.Errorf("%s Dimensions = %d, want %d", tc.embedder.Name(), got, tc.want)
		}
	}
}

func TestChromemFunc(t *testing.T) {
	fn := ChromemFunc(&stubEmbedder{vecs: [][]float32{{1, 2, 3}}})
	vec, err := fn(context.Background(), "text")
	if err != nil {
		t.Fatalf("ChromemFunc: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("len(vec) = %d, want 3", len(vec))
	}

	fn = ChromemFunc(&stubEmbedder{})
	if _, err := fn(context.Background(), "text"); err == nil || !strings.Contains(err.Error(), "no vector") {
		t.Errorf("err = %v, want no-vector error", err)
	}

	boom := errors.New("boom")
	fn = ChromemFunc(&stubEmbedder{err: boom})
	if _, err := fn(context.Background(), "text"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want the embedder error", err)
	}
}
