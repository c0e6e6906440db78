package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codebench-ai/codebench/internal/db"
	"github.com/codebench-ai/codebench/internal/history"
	"github.com/codebench-ai/codebench/internal/sandbox"
)

var runCmd = &cobra.Command{
	Use:   "run [file.py|-]",
	Short: "Execute a Python file in the sandbox",
	Long:  `Runs a local Python file (or stdin with -) through the same screened sandbox the server uses. Stdout and stderr pass through; the exit code is 1 when the run fails.`,
	Args:  cobra.ExactArgs(1),
	// Failures here are run outcomes, not usage mistakes.
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)

		var code []byte
		if args[0] == "-" {
			code, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
		} else {
			code, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
		}

		runner := sandbox.NewRunner(cfg.Python, time.Duration(cfg.RunTimeoutSeconds)*time.Second, cfg.MaxOutputKB)
		res := runner.Run(cmd.Context(), string(code))

		fmt.Print(res.Stdout)
		fmt.Fprint(os.Stderr, res.Stderr)

		// Keep CLI runs in the same history the server records.
		if database, dbErr := db.Open(cfg.DBPath); dbErr == nil {
			if recErr := history.NewStore(database).RecordRun(context.Background(), string(code), res); recErr != nil {
				warnColor.Fprintf(os.Stderr, "Recording run failed: %v\n", recErr)
			}
			database.Close()
		}

		if res.Error {
			return fmt.Errorf("execution failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
