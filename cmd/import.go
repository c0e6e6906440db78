package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codebench-ai/codebench/internal/db"
	"github.com/codebench-ai/codebench/internal/progress"
	"github.com/codebench-ai/codebench/internal/snippets"
)

var (
	importIncludes []string
	importExcludes []string
)

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import source files from a directory as snippets",
	Long:  `Walks a directory and saves every recognized source file as a snippet. When an embedding provider is configured the new snippets are indexed for semantic search as they come in.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringSliceVar(&importIncludes, "include", nil, "glob patterns to include (default: all recognized files)")
	importCmd.Flags().StringSliceVar(&importExcludes, "exclude", nil, "glob patterns to exclude")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
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

	store := snippets.NewStore(database)
	index := openSnippetIndex(cfg)

	report, err := snippets.ImportDir(context.Background(), store, index, args[0], snippets.ImportOptions{
		Includes: importIncludes,
		Excludes: importExcludes,
	}, progress.New("Importing snippets"))
	if err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}

	color.New(color.FgGreen).Printf("Imported %d snippets (%d skipped)\n", report.Imported, report.Skipped)
	if index != nil {
		fmt.Println("Snippets indexed for semantic search.")
	}
	return nil
}
