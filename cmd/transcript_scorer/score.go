package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/transcript-scorer/internal/fetch"
	"github.com/jonathan/transcript-scorer/internal/observability"
	"github.com/jonathan/transcript-scorer/internal/schemas"
	"github.com/jonathan/transcript-scorer/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a transcript and print the report as JSON",
	Long:  "Score a self-introduction transcript read from --file, --url or stdin and print the score report as JSON.",
	RunE:  runScore,
}

var (
	scoreInputFile  string
	scoreURL        string
	scoreOutputFile string
	scoreRubricPath string
	scoreDuration   float64
	scoreVerbose    bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInputFile, "file", "f", "", "Path to transcript text file (reads stdin when omitted)")
	scoreCmd.Flags().StringVar(&scoreURL, "url", "", "URL of a plain-text or HTML page holding the transcript")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to output JSON file (prints to stdout when omitted)")
	scoreCmd.Flags().StringVar(&scoreRubricPath, "rubric", "", "Path to a rubric YAML file (overrides RUBRIC_PATH)")
	scoreCmd.Flags().Float64Var(&scoreDuration, "duration", 0, "Spoken duration in seconds (estimated from word count when omitted)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a human-readable breakdown to stderr")

	scoreCmd.MarkFlagsMutuallyExclusive("file", "url")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if scoreDuration < 0 {
		return fmt.Errorf("--duration must be a positive number")
	}

	ctx := context.Background()

	var (
		text string
		err  error
	)
	if scoreURL != "" {
		text, err = fetchTranscript(ctx, scoreURL)
	} else {
		text, err = readTranscript(scoreInputFile, cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	a, err := newApp(ctx, scoreRubricPath, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	t := types.Transcript{Text: text}
	if scoreDuration > 0 {
		t.DurationSec = &scoreDuration
	}

	report, err := a.scorer.Score(ctx, t)
	if err != nil {
		return fmt.Errorf("failed to score transcript: %w", err)
	}

	if scoreVerbose {
		health := a.scorer.Health()
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintCollaborators(&health)
		printer.PrintReport(report)
	}

	return writeReport(report, scoreOutputFile, cmd.OutOrStdout())
}

// readTranscript returns the contents of path, or all of stdin when path is
// empty.
func readTranscript(path string, stdin io.Reader) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read transcript file: %w", err)
		}
		return string(data), nil
	}
	if stdin == nil {
		return "", fmt.Errorf("no transcript provided: use --file or pipe text on stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// fetchTranscript downloads the transcript published at rawURL.
func fetchTranscript(ctx context.Context, rawURL string) (string, error) {
	result, err := fetch.Transcript(ctx, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch transcript: %w", err)
	}
	return result.Text, nil
}

// writeReport validates the report against the score report schema and
// writes it to path, or to out when path is empty.
func writeReport(report *types.ScoreReport, path string, out io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := schemas.ValidateJSON(schemas.ScoreReportSchema, data); err != nil {
		return fmt.Errorf("report does not validate against schema: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(out, strings.TrimRight(string(data), "\n"))
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Output: %s\n", path)
	return nil
}
