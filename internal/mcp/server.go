package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/codebench-ai/codebench/internal/assistant"
	"github.com/codebench-ai/codebench/internal/history"
	"github.com/codebench-ai/codebench/internal/sandbox"
	"github.com/codebench-ai/codebench/internal/snippets"
)

// Version is what the server reports to MCP clients. The command layer
// overwrites it with the build version at startup.
var Version = "dev"

// Server wraps an MCP server that exposes the workbench to MCP clients.
type Server struct {
	runner   *sandbox.Runner
	engine   *assistant.Engine
	store    *snippets.Store
	index    *snippets.Index
	sessions *history.Store
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies. index
// may be nil, in which case snippet search falls back to text matching.
func NewServer(runner *sandbox.Runner, engine *assistant.Engine, store *snippets.Store, index *snippets.Index, sessions *history.Store) *Server {
	s := &Server{
		runner:   runner,
		engine:   engine,
		store:    store,
		index:    index,
		sessions: sessions,
	}

	s.mcp = server.NewMCPServer(
		"codebench",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(runPythonTool, s.handleRunPython)
	s.mcp.AddTool(askTool, s.handleAsk)
	s.mcp.AddTool(searchSnippetsTool, s.handleSearchSnippets)
	s.mcp.AddTool(listSessionsTool, s.handleListSessions)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
