// Package main provides the entry point for the transcript scorer CLI and
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "transcript_scorer",
	Short:   "Self-introduction transcript scoring engine",
	Long:    "Transcript scorer grades a spoken self-introduction against a rubric covering content, speech rate, language, clarity and engagement.",
	Version: version,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
