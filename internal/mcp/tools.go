package mcp

import "github.com/mark3labs/mcp-go/mcp"

// runPythonTool defines the run_python MCP tool.
var runPythonTool = mcp.NewTool("run_python",
	mcp.WithDescription("Run a Python snippet in the codebench sandbox and return its output. Unsafe imports and calls are rejected before execution."),
	mcp.WithString("code",
		mcp.Required(),
		mcp.Description("Python source code to execute"),
	),
)

// askTool defines the ask MCP tool.
var askTool = mcp.NewTool("ask",
	mcp.WithDescription("Ask the codebench coding assistant a one-off question. Returns the assistant's reply as text."),
	mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("Question or instruction for the assistant"),
	),
)

// searchSnippetsTool defines the search_snippets MCP tool.
var searchSnippetsTool = mcp.NewTool("search_snippets",
	mcp.WithDescription("Search the snippet library. Uses semantic search when an embedding index is configured, plain text matching otherwise."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// listSessionsTool defines the list_sessions MCP tool.
var listSessionsTool = mcp.NewTool("list_sessions",
	mcp.WithDescription("List recent chat sessions with their titles and message counts."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of sessions to return (default 20)"),
	),
)
