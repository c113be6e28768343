// Package main provides the entry point for the claude-hooks CLI.
package main

import (
	"os"

	"github.com/randalmurphal/claude-hooks/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
