// Package main provides the CLI entry point for the techdocs application.
package main

import (
	"fmt"
	"os"

	"github.com/harrison/techdocs/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsExitSentinel(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
