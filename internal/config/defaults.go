package config

// defaultModels maps each provider to the chat model used when the config
// does not name one.
var defaultModels = map[ProviderType]string{
	ProviderAnthropic: "claude-sonnet-4-5-20250929",
	ProviderOpenAI:    "gpt-4o",
	ProviderGoogle:    "gemini-3-flash-preview",
	ProviderOllama:    "llama3",
	ProviderMock:      "mock",
}

// defaultEmbeddingModels maps each embedding provider to its default model.
var defaultEmbeddingModels = map[ProviderType]string{
	ProviderOpenAI: "text-embedding-3-small",
	ProviderOllama: "nomic-embed-text",
	ProviderGoogle: "gemini-embedding-001",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          "",
		Model:             "",
		RequestsPerMin:    0,
		MaxTokens:         512,
		Temperature:       0.2,
		Port:              8080,
		AllowAllOrigins:   false,
		Python:            "python3",
		RunTimeoutSeconds: 5,
		MaxOutputKB:       64,
		MaxHistory:        20,
		RetentionDays:     0,
		PruneSchedule:     "0 3 * * *",
		EmbeddingProvider: "",
		EmbeddingModel:    "",
		DBPath:            ".codebench/codebench.db",
		VectorDir:         ".codebench/vectors",
		LogLevel:          "info",
		LogFile:           "",
		LogJSON:           false,
	}
}

// DefaultModelFor returns the default chat model for the given provider.
func DefaultModelFor(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderMock]
}

// DefaultEmbeddingModelFor returns the default embedding model for the
// given embedding provider, or an empty string if it has none.
func DefaultEmbeddingModelFor(provider ProviderType) string {
	return defaultEmbeddingModels[provider]
}
