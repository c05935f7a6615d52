package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// getBinaryPath returns the path to the transcript_scorer binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "transcript_scorer"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// offlineEnv points every collaborator at a local implementation so that
// commands run without network access.
func offlineEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GRAMMAR_PROVIDER", "none")
	t.Setenv("SENTIMENT_PROVIDER", "lexicon")
	t.Setenv("SEMANTIC_PROVIDER", "none")
	t.Setenv("RUBRIC_PATH", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
}

// executeCommand runs the root command in-process and returns what it wrote
// to stdout and stderr.
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	// Flag values and their Changed state survive between Execute calls.
	for _, sub := range rootCmd.Commands() {
		sub.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
