package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codebench-ai/codebench/internal/db"
	"github.com/codebench-ai/codebench/internal/history"
	"github.com/codebench-ai/codebench/internal/markdown"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Export a chat session as a standalone HTML page",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default session-<id>.html)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	sessionID := args[0]

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	ctx := context.Background()
	store := history.NewStore(database)

	sess, err := store.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if sess == nil {
		return fmt.Errorf("session %s not found; `codebench sessions` lists known ids", sessionID)
	}

	messages, err := store.GetMessages(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading messages: %w", err)
	}

	entries := make([]markdown.Entry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, markdown.Entry{
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	title := sess.Title
	if title == "" {
		title = "Chat transcript"
	}

	page, err := markdown.ExportHTML(title, entries)
	if err != nil {
		return fmt.Errorf("rendering transcript: %w", err)
	}

	outPath := exportOut
	if outPath == "" {
		id := sessionID
		if len(id) > 8 {
			id = id[:8]
		}
		outPath = fmt.Sprintf("session-%s.html", id)
	}

	if err := os.WriteFile(outPath, page, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	color.New(color.FgGreen).Printf("Exported %d messages to %s\n", len(entries), outPath)
	return nil
}
