package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "codebench",
	Short: "Self-hostable AI coding workbench",
	Long: `Codebench pairs an AI chat assistant with a sandboxed Python runner.
Chat about code in the browser or the terminal, execute snippets in an
isolated interpreter, and keep a searchable library of everything you
save along the way.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env next to the binary is the easiest place for API keys.
	// Missing file is fine; the system environment still applies.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".codebench.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
