package llm

import (
	"context"
	"fmt"
)

// MockProvider is an offline Provider that answers every prompt with a
// canned reply. It stands in when no real model is configured so the rest
// of the system stays usable.
type MockProvider struct{}

// NewMockProvider creates the offline mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return "mock"
}

const mockReplyFormat = `[mock reply - no model configured]

I received: "%s"

No LLM provider is configured, so this is a canned response. Configure one
with ` + "`codebench init`" + ` or the CODEBENCH_PROVIDER environment variable.

Here is a sample code snippet:
` + "```python" + `
def greet():
    print("Hello from codebench!")
` + "```" + `
`

func (p *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Echo the last user message so the reply is recognizably canned.
	var prompt string
	for _, msg := range req.Messages {
		if msg.Role == RoleUser {
			prompt = msg.Content
		}
	}

	content := fmt.Sprintf(mockReplyFormat, prompt)
	return &CompletionResponse{
		Content:      content,
		InputTokens:  EstimateTokens(prompt),
		OutputTokens: EstimateTokens(content),
		Model:        "mock",
		FinishReason: "stop",
	}, nil
}
