package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/transcript-scorer/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleReport() *types.ScoreReport {
	return &types.ScoreReport{
		OverallScore:  72,
		WordCount:     24,
		SentenceCount: 2,
		Criteria: []types.CriterionResult{
			{
				Name:             "Content & Structure",
				Score:            25,
				MaxScore:         40,
				WeightPercentage: 40,
				Details: []types.MetricDetail{
					{Metric: "Salutation Level", Score: types.Float(4), MaxScore: types.Float(5), Feedback: "Good salutation detected", Level: "Good"},
				},
				SemanticSimilarity: types.Similarity(0.61),
			},
			{
				Name:             "Speech Rate",
				Score:            10,
				MaxScore:         10,
				WeightPercentage: 10,
				Details: []types.MetricDetail{
					{Metric: "Words Per Minute", Value: types.Float(120), Feedback: "Ideal speech rate: 120.0 WPM"},
				},
			},
			{
				Name:               "Clarity",
				Score:              15,
				MaxScore:           15,
				WeightPercentage:   15,
				Details:            []types.MetricDetail{{Metric: "Filler Word Rate", Value: types.Float(0), Feedback: "0 filler words (0.0%). Found: "}},
				SemanticSimilarity: types.SimilarityUnavailable(),
			},
		},
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(sampleReport())
	output := buf.String()

	assert.Contains(t, output, "SCORE REPORT")
	assert.Contains(t, output, "72.00 / 100")
	assert.Contains(t, output, "CONTENT & STRUCTURE")
	assert.Contains(t, output, "Salutation Level: 4/5 (Good)")
	assert.Contains(t, output, "Words Per Minute: 120")
	assert.Contains(t, output, "Semantic similarity: 0.61")
	assert.Contains(t, output, "Semantic similarity: N/A")
}

func TestPrintReport_EmptyTranscript(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(types.EmptyReport())
	output := buf.String()

	assert.Contains(t, output, "Empty transcript")
	assert.Contains(t, output, "0.00 / 100")
	assert.NotContains(t, output, "CONTENT")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(nil)
	p.PrintCriterion(nil)
	p.PrintCollaborators(nil)

	assert.Empty(t, buf.String())
}

func TestPrintCriterion_TruncatesLongFeedback(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCriterion(&types.CriterionResult{
		Name:     "Content & Structure",
		MaxScore: 40,
		Details: []types.MetricDetail{
			{Metric: "Keyword Presence", Feedback: strings.Repeat("name: name, ", 20)},
		},
	})

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintCollaborators(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCollaborators(&types.HealthStatus{
		Status:              "healthy",
		GrammarToolLoaded:   true,
		SemanticModelLoaded: false,
		SentimentProvider:   "lexicon",
	})
	output := buf.String()

	assert.Contains(t, output, "LANGUAGE SERVICES")
	assert.Contains(t, output, "Grammar:    ✓ loaded")
	assert.Contains(t, output, "Semantic:   ✗ unavailable")
	assert.Contains(t, output, "lexicon")
}
