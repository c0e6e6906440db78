package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/codebench-ai/codebench/internal/assistant"
	"github.com/codebench-ai/codebench/internal/config"
	"github.com/codebench-ai/codebench/internal/db"
	"github.com/codebench-ai/codebench/internal/embeddings"
	"github.com/codebench-ai/codebench/internal/history"
	"github.com/codebench-ai/codebench/internal/llm"
	"github.com/codebench-ai/codebench/internal/logging"
	"github.com/codebench-ai/codebench/internal/snippets"
)

var warnColor = color.New(color.FgYellow)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `codebench init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogging applies the config's logging settings. The verbose flag
// forces debug level regardless of config.
func setupLogging(cfg *config.Config) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logging.Setup(level, cfg.LogFile, cfg.LogJSON)
}

// buildProvider creates the chat provider from config. Configuration
// problems degrade to a nil provider, which the assistant engine turns
// into the offline mock, so every command keeps working.
func buildProvider(cfg *config.Config) llm.Provider {
	if cfg.Provider == "" {
		warnColor.Fprintln(os.Stderr, "No LLM provider configured; the assistant answers with the built-in mock. Run `codebench init` to pick one.")
		return nil
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultModelFor(cfg.Provider)
	}

	provider, err := llm.NewProvider(string(cfg.Provider), model, cfg.BaseURL)
	if err != nil {
		warnColor.Fprintf(os.Stderr, "Provider %s unavailable (%v); falling back to the built-in mock.\n", cfg.Provider, err)
		return nil
	}

	if cfg.RequestsPerMin > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RequestsPerMin)
	}
	return provider
}

// buildEngine assembles the chat engine all commands share.
func buildEngine(database *db.DB, cfg *config.Config) *assistant.Engine {
	model := cfg.Model
	if model == "" {
		model = config.DefaultModelFor(cfg.Provider)
	}
	return assistant.NewEngine(history.NewStore(database), buildProvider(cfg), model, assistant.Options{
		MaxTokens:     cfg.MaxTokens,
		Temperature:   cfg.Temperature,
		HistoryWindow: cfg.MaxHistory,
	})
}

// openSnippetIndex builds the vector index when an embedding provider is
// configured. Returns nil otherwise: snippet search then falls back to
// plain text matching.
func openSnippetIndex(cfg *config.Config) *snippets.Index {
	if cfg.EmbeddingProvider == "" {
		return nil
	}

	model := cfg.EmbeddingModel
	if model == "" {
		model = config.DefaultEmbeddingModelFor(cfg.EmbeddingProvider)
	}

	embedder, err := embeddings.New(string(cfg.EmbeddingProvider), model, "")
	if err != nil {
		warnColor.Fprintf(os.Stderr, "Embeddings unavailable (%v); snippet search uses text matching.\n", err)
		return nil
	}

	index, err := snippets.NewIndex(embedder, cfg.VectorDir)
	if err != nil {
		warnColor.Fprintf(os.Stderr, "Opening vector index failed (%v); snippet search uses text matching.\n", err)
		return nil
	}
	return index
}
