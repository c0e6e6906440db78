package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codebench-ai/codebench/internal/db"
	"github.com/codebench-ai/codebench/internal/tui"
)

var askPlain bool

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Ask the assistant a one-off question",
	Long:  `Sends a single prompt and prints the reply. Nothing is stored; use chat for conversations worth keeping.`,
	Args:  cobra.ExactArgs(1),
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

		answer := buildEngine(database, cfg).Ask(context.Background(), args[0])
		fmt.Println(tui.Markdown(answer, askPlain))
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askPlain, "plain", false, "print plain text without terminal formatting")
	rootCmd.AddCommand(askCmd)
}
