package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultGoogleBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var googleDimensions = map[string]int{
	"gemini-embedding-001": 3072,
	"text-embedding-004":   768,
}

// GoogleEmbedder generates embeddings through the Generative Language API.
type GoogleEmbedder struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGoogleEmbedder creates a Google embedder. baseURL overrides the API
// endpoint and may be empty.
func NewGoogleEmbedder(apiKey, model, baseURL string) *GoogleEmbedder {
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	return &GoogleEmbedder{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (e *GoogleEmbedder) Name() string {
	return e.model
}

func (e *GoogleEmbedder) Dimensions() int {
	if d, ok := googleDimensions[e.model]; ok {
		return d
	}
	return 3072
}

type googleEmbedRequest struct {
	Content googleEmbedContent `json:"content"`
}

type googleEmbedContent struct {
	Parts []googleEmbedPart `json:"parts"`
}

type googleEmbedPart struct {
	Text string `json:"text"`
}

type googleEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (e *GoogleEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := e.embedOne(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

func (e *GoogleEmbedder) embedOne(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(googleEmbedRequest{
		Content: googleEmbedContent{Parts: []googleEmbedPart{{Text: text}}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling google embed request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:embedContent?key=%s", e.baseURL, e.model, e.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating google embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google embed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google embed returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result googleEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding google embed response: %w", err)
	}
	if len(result.Embedding.Values) == 0 {
		return nil, fmt.Errorf("google returned an empty embedding")
	}
	return result.Embedding.Values, nil
}
