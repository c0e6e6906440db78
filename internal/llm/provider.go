package llm

import "context"

// Provider is a chat completion backend. Implementations cover the
// hosted APIs plus a deterministic offline mock.
type Provider interface {
	// Complete runs one completion request against the backing model.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name identifies the provider in logs.
	Name() string
}
