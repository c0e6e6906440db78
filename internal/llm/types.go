package llm

// Role identifies who authored a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// defaultMaxTokens caps replies when a request does not set its own limit.
const defaultMaxTokens = 512

// Message is a single conversation turn sent to a provider.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest carries one completion call's parameters. A zero
// MaxTokens falls back to defaultMaxTokens; an empty Model falls back to
// the provider's configured default.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// CompletionResponse is a provider's reply plus its token accounting.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
