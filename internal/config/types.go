package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderGoogle    ProviderType = "google"
	ProviderOllama    ProviderType = "ollama"
	ProviderMock      ProviderType = "mock"
)

// Config is the top-level codebench configuration, corresponding to .codebench.yml.
type Config struct {
	// LLM settings. An empty Provider means no real model is configured
	// and the assistant answers with the built-in mock.
	Provider       ProviderType `yaml:"provider" koanf:"provider"`
	Model          string       `yaml:"model" koanf:"model"`
	BaseURL        string       `yaml:"base_url" koanf:"base_url"`
	RequestsPerMin int          `yaml:"requests_per_min" koanf:"requests_per_min"`
	MaxTokens      int          `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature    float64      `yaml:"temperature" koanf:"temperature"`

	// Server settings.
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`

	// Sandbox settings.
	Python            string `yaml:"python" koanf:"python"`
	RunTimeoutSeconds int    `yaml:"run_timeout_seconds" koanf:"run_timeout_seconds"`
	MaxOutputKB       int    `yaml:"max_output_kb" koanf:"max_output_kb"`

	// History settings. RetentionDays of 0 keeps everything forever.
	MaxHistory    int    `yaml:"max_history" koanf:"max_history"`
	RetentionDays int    `yaml:"retention_days" koanf:"retention_days"`
	PruneSchedule string `yaml:"prune_schedule" koanf:"prune_schedule"`

	// Embeddings for snippet search. Empty provider disables vector
	// search and snippet queries fall back to plain text matching.
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`

	// Storage paths.
	DBPath    string `yaml:"db_path" koanf:"db_path"`
	VectorDir string `yaml:"vector_dir" koanf:"vector_dir"`

	// Logging.
	LogLevel string `yaml:"log_level" koanf:"log_level"`
	LogFile  string `yaml:"log_file" koanf:"log_file"`
	LogJSON  bool   `yaml:"log_json" koanf:"log_json"`
}
