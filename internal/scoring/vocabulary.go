package scoring

import (
	"fmt"

	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/tokenize"
)

// VocabularyResult is the outcome of the type-token ratio check.
type VocabularyResult struct {
	Score    float64
	TTR      float64
	Unique   int
	Total    int
	Feedback string
}

// ScoreVocabulary grades the type-token ratio of the transcript's words.
func ScoreVocabulary(text string, table rubric.Vocabulary) VocabularyResult {
	words := tokenize.Words(text)
	if len(words) == 0 {
		return VocabularyResult{Feedback: "No words found"}
	}

	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}

	res := VocabularyResult{
		Unique: len(seen),
		Total:  len(words),
	}
	res.TTR = float64(res.Unique) / float64(res.Total)
	res.Score, _ = table.Bands.Lookup(res.TTR)
	res.Feedback = fmt.Sprintf("TTR: %.2f (%d unique / %d total words)", res.TTR, res.Unique, res.Total)
	return res
}
