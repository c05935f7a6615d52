package scoring

import (
	"fmt"

	"github.com/jonathan/transcript-scorer/internal/rubric"
)

// GrammarUnavailableFeedback is reported when no grammar checker answered.
const GrammarUnavailableFeedback = "Grammar check unavailable"

// GrammarResult is the outcome of the grammar check.
type GrammarResult struct {
	Score        float64
	Errors       int
	ErrorsPer100 float64
	Quality      float64
	Available    bool
	Feedback     string
}

// GradeGrammar turns an error count into a grammar score.
func GradeGrammar(errors, words int, table rubric.Grammar) GrammarResult {
	per100 := float64(errors) / float64(max(words, 1)) * 100
	quality := 1 - min(per100/table.ErrorsPer100Ceiling, 1)
	score, _ := table.Bands.Lookup(quality)

	return GrammarResult{
		Score:        score,
		Errors:       errors,
		ErrorsPer100: per100,
		Quality:      quality,
		Available:    true,
		Feedback:     fmt.Sprintf("%d grammar errors detected (%.1f per 100 words)", errors, per100),
	}
}

// GrammarFallback is the fixed result used when no checker is available
// or the checker failed.
func GrammarFallback(table rubric.Grammar) GrammarResult {
	return GrammarResult{
		Score:    table.UnavailableScore,
		Feedback: GrammarUnavailableFeedback,
	}
}
