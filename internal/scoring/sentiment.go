package scoring

import (
	"fmt"

	"github.com/jonathan/transcript-scorer/internal/nlp"
	"github.com/jonathan/transcript-scorer/internal/rubric"
)

// SentimentResult is the outcome of the positivity check.
type SentimentResult struct {
	Score    float64
	Positive float64
	Feedback string
}

// GradeSentiment grades the positive polarity of a transcript.
func GradeSentiment(p nlp.Polarity, table rubric.Sentiment) SentimentResult {
	score, _ := table.Bands.Lookup(p.Positive)
	return SentimentResult{
		Score:    score,
		Positive: p.Positive,
		Feedback: fmt.Sprintf("Positive sentiment: %.2f", p.Positive),
	}
}
