// Package observability provides logging, metrics, tracing and formatted
// output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/transcript-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxFeedbackLen truncates long feedback lines inside a box
	maxFeedbackLen = 50
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReport outputs a human-readable summary of a score report followed by
// one box per criterion.
func (p *Printer) PrintReport(report *types.ScoreReport) {
	if report == nil {
		return
	}

	if report.Error != "" {
		p.printBox("SCORE REPORT", fmt.Sprintf("⚠ %s\nOverall: %.2f / 100", report.Error, report.OverallScore))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:    %.2f / 100\n", report.OverallScore))
	sb.WriteString(fmt.Sprintf("Words:      %d\n", report.WordCount))
	sb.WriteString(fmt.Sprintf("Sentences:  %d\n", report.SentenceCount))
	sb.WriteString("\n")
	for _, c := range report.Criteria {
		sb.WriteString(fmt.Sprintf("%-20s %5.1f / %-4.0f\n", c.Name, c.Score, c.MaxScore))
	}
	p.printBox("SCORE REPORT", strings.TrimSuffix(sb.String(), "\n"))

	for i := range report.Criteria {
		p.PrintCriterion(&report.Criteria[i])
	}
}

// PrintCriterion outputs the metric details of one criterion.
func (p *Printer) PrintCriterion(c *types.CriterionResult) {
	if c == nil {
		return
	}

	var sb strings.Builder
	for i, d := range c.Details {
		sb.WriteString(fmt.Sprintf("• %s", d.Metric))
		switch {
		case d.Score != nil && d.MaxScore != nil:
			sb.WriteString(fmt.Sprintf(": %.0f/%.0f", *d.Score, *d.MaxScore))
		case d.Value != nil:
			sb.WriteString(fmt.Sprintf(": %g", *d.Value))
		}
		if d.Level != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", d.Level))
		}
		sb.WriteString("\n")

		feedback := d.Feedback
		if len([]rune(feedback)) > maxFeedbackLen {
			feedback = string([]rune(feedback)[:maxFeedbackLen-3]) + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", feedback))
		if i < len(c.Details)-1 {
			sb.WriteString("\n")
		}
	}
	if c.SemanticSimilarity != nil {
		if c.SemanticSimilarity.Available {
			sb.WriteString(fmt.Sprintf("\nSemantic similarity: %.2f\n", c.SemanticSimilarity.Value))
		} else {
			sb.WriteString(fmt.Sprintf("\nSemantic similarity: %s\n", types.UnavailableMarker))
		}
	}

	title := fmt.Sprintf("%s  %.1f/%.0f (%.0f%%)", strings.ToUpper(c.Name), c.Score, c.MaxScore, c.WeightPercentage)
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCollaborators outputs which language services are loaded.
func (p *Printer) PrintCollaborators(status *types.HealthStatus) {
	if status == nil {
		return
	}

	mark := func(ok bool) string {
		if ok {
			return "✓ loaded"
		}
		return "✗ unavailable"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Grammar:    %s\n", mark(status.GrammarToolLoaded)))
	sb.WriteString(fmt.Sprintf("Semantic:   %s\n", mark(status.SemanticModelLoaded)))
	sb.WriteString(fmt.Sprintf("Sentiment:  %s", status.SentimentProvider))

	p.printBox("LANGUAGE SERVICES", sb.String())
}
