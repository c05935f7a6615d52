package scoring

import (
	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/tokenize"
)

// LevelNone is the salutation level when no tier matches.
const LevelNone = "None"

// SalutationResult is the outcome of the salutation check.
type SalutationResult struct {
	Score    float64
	Feedback string
	Level    string
	Phrase   string
}

// ScoreSalutation returns the first tier, in table order, whose phrases
// appear in text.
func ScoreSalutation(text string, table rubric.Salutation) SalutationResult {
	norm := tokenize.Normalize(text)
	for _, tier := range table.Tiers {
		if phrase, ok := firstMatch(norm, tier.Phrases); ok {
			return SalutationResult{
				Score:    tier.Score,
				Feedback: tier.Feedback,
				Level:    tier.Level,
				Phrase:   phrase,
			}
		}
	}
	return SalutationResult{Feedback: table.NoneFeedback, Level: LevelNone}
}
