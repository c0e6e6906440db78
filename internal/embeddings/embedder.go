package embeddings

import (
	"context"
	"fmt"
	"os"
)

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the width of the embedding vectors.
	Dimensions() int

	// Name returns the model identifier.
	Name() string
}

// New creates an embedder for the given provider. Supported providers:
// "openai", "ollama", "google". API keys come from the environment, the
// same variables the chat providers use. baseURL overrides the provider's
// default endpoint and may be empty.
func New(provider, model, baseURL string) (Embedder, error) {
	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIEmbedder(apiKey, model, baseURL), nil

	case "ollama":
		host := baseURL
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaEmbedder(host, model), nil

	case "google":
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is not set")
		}
		return NewGoogleEmbedder(apiKey, model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}
