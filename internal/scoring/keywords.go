package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/tokenize"
)

// KeywordMatch is the first phrase found for a category.
type KeywordMatch struct {
	Category string
	Phrase   string
}

func (m KeywordMatch) String() string {
	return m.Category + ": " + m.Phrase
}

// KeywordResult is the outcome of the keyword presence check.
type KeywordResult struct {
	Score      float64
	MustHave   float64
	GoodToHave float64
	Matches    []KeywordMatch
	Feedback   string
}

// ScoreKeywords awards points per topic category present in text.
// Each category counts at most once. Must-have and good-to-have totals are
// capped independently.
func ScoreKeywords(text string, table rubric.Keywords) KeywordResult {
	norm := tokenize.Normalize(text)

	mustHave, mustMatches := scoreTopics(norm, table.MustHave)
	goodToHave, goodMatches := scoreTopics(norm, table.GoodToHave)
	matches := append(mustMatches, goodMatches...)

	return KeywordResult{
		Score:      mustHave + goodToHave,
		MustHave:   mustHave,
		GoodToHave: goodToHave,
		Matches:    matches,
		Feedback:   keywordFeedback(matches, table.FeedbackLimit),
	}
}

func scoreTopics(norm string, table rubric.TopicTable) (float64, []KeywordMatch) {
	var matches []KeywordMatch
	for _, c := range table.Categories {
		if phrase, ok := firstMatch(norm, c.Phrases); ok {
			matches = append(matches, KeywordMatch{Category: c.Name, Phrase: phrase})
		}
	}
	return min(float64(len(matches))*table.Points, table.Cap), matches
}

func keywordFeedback(matches []KeywordMatch, limit int) string {
	shown := matches
	if len(shown) > limit {
		shown = shown[:limit]
	}
	parts := make([]string, len(shown))
	for i, m := range shown {
		parts[i] = m.String()
	}
	return fmt.Sprintf("Found %d key elements. Keywords: %s", len(matches), strings.Join(parts, ", "))
}
