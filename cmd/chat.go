package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codebench-ai/codebench/internal/db"
	"github.com/codebench-ai/codebench/internal/history"
	"github.com/codebench-ai/codebench/internal/logging"
	"github.com/codebench-ai/codebench/internal/tui"
)

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long:  `Opens an interactive chat in the terminal. Conversations are stored in the same history the browser UI uses, so sessions can be resumed from either side.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Stray log lines would tear the chat screen; without a log
		// file, only errors reach stderr.
		if cfg.LogFile == "" {
			logging.Setup("error", "", cfg.LogJSON)
		} else {
			setupLogging(cfg)
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		if chatSession != "" {
			sess, err := history.NewStore(database).GetSession(context.Background(), chatSession)
			if err != nil {
				return fmt.Errorf("loading session: %w", err)
			}
			if sess == nil {
				return fmt.Errorf("session %s not found; `codebench sessions` lists known ids", chatSession)
			}
		}

		return tui.Run(buildEngine(database, cfg), chatSession)
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatSession, "session", "", "resume an existing session by id")
	rootCmd.AddCommand(chatCmd)
}
