package main

import (
	"os"

	"github.com/codebench-ai/codebench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
