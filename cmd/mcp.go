package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codebench-ai/codebench/internal/db"
	"github.com/codebench-ai/codebench/internal/history"
	mcpserver "github.com/codebench-ai/codebench/internal/mcp"
	"github.com/codebench-ai/codebench/internal/sandbox"
	"github.com/codebench-ai/codebench/internal/snippets"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the sandbox, assistant, and snippet library to MCP-capable AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		runner := sandbox.NewRunner(cfg.Python, time.Duration(cfg.RunTimeoutSeconds)*time.Second, cfg.MaxOutputKB)
		snippetStore := snippets.NewStore(database)
		sessions := history.NewStore(database)

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "codebench MCP server started on stdio (db=%s)\n", cfg.DBPath)

		srv := mcpserver.NewServer(runner, buildEngine(database, cfg), snippetStore, openSnippetIndex(cfg), sessions)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
