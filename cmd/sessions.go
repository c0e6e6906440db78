package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codebench-ai/codebench/internal/db"
	"github.com/codebench-ai/codebench/internal/history"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored chat sessions",
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().Int("limit", 20, "maximum number of sessions")
	sessionsCmd.Flags().Bool("json", false, "output sessions as JSON")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessions, err := history.NewStore(database).ListSessions(context.Background(), limit)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions yet. Start one with `codebench chat`.")
		return nil
	}

	fmt.Printf("Found %d sessions:\n\n", len(sessions))
	for _, s := range sessions {
		title := s.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Printf("  %s  %s\n", s.ID, title)
		fmt.Printf("      %d messages, updated %s\n\n", s.MessageCount, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
