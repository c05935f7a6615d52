package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/tokenize"
)

// FillerCount is the number of occurrences of one filler phrase.
type FillerCount struct {
	Phrase string
	Count  int
}

func (f FillerCount) String() string {
	return fmt.Sprintf("%s(%d)", f.Phrase, f.Count)
}

// FillerResult is the outcome of the filler-word check.
type FillerResult struct {
	Score    float64
	Rate     float64
	Total    int
	Found    []FillerCount
	Feedback string
}

// ScoreFillers grades the filler rate per 100 words.
//
// Occurrences are raw, non-overlapping substring counts against the
// lower-cased text, so "like" is also counted inside "likely". Word counts
// come from the tokenizer. The two are intentionally independent.
func ScoreFillers(text string, table rubric.Fillers) FillerResult {
	words, _ := tokenize.Counts(text)
	if words == 0 {
		return FillerResult{Feedback: "No words to analyze"}
	}

	norm := tokenize.Normalize(text)
	var res FillerResult
	for _, phrase := range table.Phrases {
		if n := strings.Count(norm, phrase); n > 0 {
			res.Total += n
			res.Found = append(res.Found, FillerCount{Phrase: phrase, Count: n})
		}
	}
	res.Rate = float64(res.Total) / float64(max(words, 1)) * 100
	res.Score, _ = table.Bands.Lookup(res.Rate)

	shown := res.Found
	if len(shown) > table.FeedbackLimit {
		shown = shown[:table.FeedbackLimit]
	}
	parts := make([]string, len(shown))
	for i, f := range shown {
		parts[i] = f.String()
	}
	res.Feedback = fmt.Sprintf("%d filler words (%.1f%%). Found: %s", res.Total, res.Rate, strings.Join(parts, ", "))
	return res
}
