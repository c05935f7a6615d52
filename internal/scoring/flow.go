package scoring

import (
	"strings"

	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/tokenize"
)

// Flow feedback strings.
const (
	FlowFull    = "Good flow: Salutation → Details → Closing"
	FlowPartial = "Partial flow: Some structure present"
	FlowNone    = "Flow not followed"
)

// FlowResult is the outcome of the structure check.
type FlowResult struct {
	Score             float64
	Feedback          string
	OpensWithGreeting bool
	EarlyDetails      bool
	ClosesWithThanks  bool
}

// ScoreFlow checks that the transcript opens with a greeting, gives basic
// details in its first third, and closes with thanks.
func ScoreFlow(text string, table rubric.Flow) FlowResult {
	sentences := tokenize.Sentences(tokenize.Normalize(text))

	var res FlowResult
	if len(sentences) > 0 {
		_, res.OpensWithGreeting = firstMatch(sentences[0], table.Salutation)
		_, res.ClosesWithThanks = firstMatch(sentences[len(sentences)-1], table.Closing)
	}
	// A single sentence has no "first third" to speak of.
	if len(sentences) > 1 {
		n := max(1, len(sentences)/3)
		_, res.EarlyDetails = firstMatch(strings.Join(sentences[:n], " "), table.BasicDetails)
	}

	switch {
	case res.OpensWithGreeting && res.EarlyDetails && res.ClosesWithThanks:
		res.Score, res.Feedback = table.FullScore, FlowFull
	case res.EarlyDetails:
		res.Score, res.Feedback = table.PartialScore, FlowPartial
	default:
		res.Feedback = FlowNone
	}
	return res
}
