// Package scoring evaluates self-introduction transcripts against a rubric.
//
// The rubric evaluators (salutation, keywords, flow, speech rate, vocabulary
// and fillers) are pure functions of the text and the rubric tables. Grammar,
// sentiment and semantic similarity delegate to nlp collaborators. Scorer
// runs them all and assembles the report.
package scoring

import (
	"math"
	"strings"
)

// firstMatch returns the first phrase contained in text.
// Matching is a plain substring search; callers pass normalized text.
func firstMatch(text string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return p, true
		}
	}
	return "", false
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
