package cmd

import (
	"github.com/spf13/cobra"

	"github.com/codebench-ai/codebench/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize codebench configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to pick a provider and sandbox settings, then writes a .codebench.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
