package config

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .codebench.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to codebench! Let's configure your workbench.")
	fmt.Println()

	// Check for a usable Python interpreter up front.
	if path, err := exec.LookPath("python3"); err == nil {
		fmt.Printf("Found python3 at %s\n\n", path)
	} else {
		fmt.Println("Note: python3 was not found in PATH; code execution will be unavailable until it is installed.")
		fmt.Println()
	}

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{
			"mock      - no model, built-in canned replies",
			"anthropic - Claude models",
			"openai    - GPT models",
			"google    - Gemini models",
			"ollama    - local models",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []ProviderType{ProviderMock, ProviderAnthropic, ProviderOpenAI, ProviderGoogle, ProviderOllama}
	cfg.Provider = providers[providerIdx]

	// 2. Model.
	modelPrompt := promptui.Prompt{
		Label:   "Model",
		Default: DefaultModelFor(cfg.Provider),
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	cfg.Model = model

	// 3. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Port),
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("port %q is not a number", portStr)
	}
	cfg.Port = port

	// 4. Execution timeout.
	timeoutPrompt := promptui.Prompt{
		Label:   "Code execution timeout (seconds)",
		Default: strconv.Itoa(cfg.RunTimeoutSeconds),
	}
	timeoutStr, err := timeoutPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("timeout: %w", err)
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("timeout %q is not a number", timeoutStr)
	}
	cfg.RunTimeoutSeconds = timeout

	// 5. Snippet search embeddings.
	embedPrompt := promptui.Select{
		Label: "Snippet search embeddings",
		Items: []string{
			"none   - plain text matching",
			"openai - text-embedding-3-small",
			"ollama - nomic-embed-text",
			"google - gemini-embedding-001",
		},
	}
	embedIdx, _, err := embedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embeddings selection: %w", err)
	}
	embedProviders := []ProviderType{"", ProviderOpenAI, ProviderOllama, ProviderGoogle}
	cfg.EmbeddingProvider = embedProviders[embedIdx]
	cfg.EmbeddingModel = DefaultEmbeddingModelFor(cfg.EmbeddingProvider)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Check for API key.
	envVar := APIKeyEnvVar(cfg.Provider)
	if envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before starting the server.\n", envVar)
	}

	// Save to .codebench.yml.
	configPath := ".codebench.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
