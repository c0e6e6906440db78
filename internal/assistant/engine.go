package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codebench-ai/codebench/internal/history"
	"github.com/codebench-ai/codebench/internal/llm"
)

// ErrSessionNotFound is returned when a reply targets a session that does
// not exist.
var ErrSessionNotFound = errors.New("session not found")

// Turn is the outcome of one chat exchange.
type Turn struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// Options tune how the engine talks to the model.
type Options struct {
	MaxTokens     int
	Temperature   float64
	HistoryWindow int
}

// Engine orchestrates chat turns: it resolves sessions, builds model
// context from stored history, and persists both sides of each exchange.
type Engine struct {
	store       *history.Store
	provider    llm.Provider
	model       string
	maxTokens   int
	temperature float64
	window      int
}

// NewEngine creates a chat engine. A nil provider falls back to the
// offline mock so the chat surface keeps working without configuration.
func NewEngine(store *history.Store, provider llm.Provider, model string, opts Options) *Engine {
	if provider == nil {
		provider = llm.NewMockProvider()
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 512
	}
	if opts.Temperature <= 0 {
		opts.Temperature = 0.2
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 20
	}
	return &Engine{
		store:       store,
		provider:    provider,
		model:       model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		window:      opts.HistoryWindow,
	}
}

// Store returns the underlying history store for direct access.
func (e *Engine) Store() *history.Store {
	return e.store
}

// Reply runs one chat turn. An empty sessionID starts a new session; the
// session ID in the returned Turn is always valid for follow-ups.
func (e *Engine) Reply(ctx context.Context, sessionID, input string) (*Turn, error) {
	if sessionID == "" {
		sess, err := e.store.CreateSession(ctx, history.TitleFromMessage(input))
		if err != nil {
			return nil, fmt.Errorf("creating session: %w", err)
		}
		sessionID = sess.ID
	} else {
		sess, err := e.store.GetSession(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("loading session: %w", err)
		}
		if sess == nil {
			return nil, ErrSessionNotFound
		}
	}

	recent, err := e.store.RecentMessages(ctx, sessionID, e.window)
	if err != nil {
		return nil, fmt.Errorf("loading conversation history: %w", err)
	}

	messages := make([]llm.Message, 0, len(recent)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, m := range recent {
		role := llm.Role(m.Role)
		if role != llm.RoleUser && role != llm.RoleAssistant {
			continue
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: input})

	reply := e.complete(ctx, messages)

	if _, err := e.store.AddMessage(ctx, history.Message{SessionID: sessionID, Role: "user", Content: input}); err != nil {
		return nil, fmt.Errorf("saving user message: %w", err)
	}
	if _, err := e.store.AddMessage(ctx, history.Message{SessionID: sessionID, Role: "assistant", Content: reply}); err != nil {
		return nil, fmt.Errorf("saving assistant message: %w", err)
	}
	if err := e.store.SetTitleIfEmpty(ctx, sessionID, history.TitleFromMessage(input)); err != nil {
		slog.Warn("setting session title", "error", err)
	}

	return &Turn{Response: reply, SessionID: sessionID}, nil
}

// Ask answers a one-off question without touching stored history.
func (e *Engine) Ask(ctx context.Context, question string) string {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: question},
	}
	return e.complete(ctx, messages)
}

// complete asks the provider for a reply. Provider failures degrade to the
// offline mock so a chat turn always produces something to show.
func (e *Engine) complete(ctx context.Context, messages []llm.Message) string {
	req := llm.CompletionRequest{
		Model:       e.model,
		Messages:    messages,
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	}

	resp, err := e.provider.Complete(ctx, req)
	if err != nil {
		slog.Error("chat completion failed", "provider", e.provider.Name(), "error", err)
		mock, mockErr := llm.NewMockProvider().Complete(ctx, req)
		if mockErr != nil {
			return "Error regarding LLM: " + err.Error()
		}
		return "Error regarding LLM: " + err.Error() + "\n\n" + mock.Content
	}

	slog.Debug("chat completion",
		"provider", e.provider.Name(),
		"model", resp.Model,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"cost_usd", llm.EstimateCost(resp.Model, resp.InputTokens, resp.OutputTokens))

	return strings.TrimSpace(resp.Content)
}
