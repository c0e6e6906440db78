package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/codebench-ai/codebench/internal/snippets"
)

// handleRunPython executes code in the sandbox and reports its output.
func (s *Server) handleRunPython(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: code"), nil
	}

	res := s.runner.Run(ctx, code)
	if res.Error {
		return mcp.NewToolResultError(res.Stderr), nil
	}
	if res.Stdout == "" {
		return mcp.NewToolResultText("(no output)"), nil
	}
	return mcp.NewToolResultText(res.Stdout), nil
}

// handleAsk forwards a one-off question to the assistant.
func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: prompt"), nil
	}

	return mcp.NewToolResultText(s.engine.Ask(ctx, prompt)), nil
}

// handleSearchSnippets searches the snippet library.
func (s *Server) handleSearchSnippets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	results, err := snippets.Search(ctx, s.store, s.index, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No snippets matched. Save some via the API or `codebench import`."), nil
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// handleListSessions returns recent chat sessions.
func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	sessions, err := s.sessions.ListSessions(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing sessions: %v", err)), nil
	}
	if len(sessions) == 0 {
		return mcp.NewToolResultText("No chat sessions yet."), nil
	}

	out, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding sessions: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
