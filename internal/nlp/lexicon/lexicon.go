// Package lexicon implements nlp.SentimentAnalyzer with the VADER lexicon
// and rules. It runs in-process and never fails, so it is always available
// as the default analyzer.
package lexicon

import (
	"context"

	"github.com/jonreiter/govader"

	"github.com/jonathan/transcript-scorer/internal/nlp"
)

var _ nlp.SentimentAnalyzer = (*Analyzer)(nil)

// Analyzer scores polarity with a VADER sentiment intensity analyzer.
// The analyzer only reads its tables after construction, so one Analyzer
// may be shared between goroutines.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// New builds an Analyzer. Loading the lexicon takes a few milliseconds;
// build one per process.
func New() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Size returns the number of lexicon entries.
func (a *Analyzer) Size() int {
	return len(a.vader.Lexicon)
}

// Polarity implements nlp.SentimentAnalyzer.
// Text with no scorable tokens is fully neutral.
func (a *Analyzer) Polarity(_ context.Context, text string) (nlp.Polarity, error) {
	s := a.vader.PolarityScores(text)
	if s.Positive == 0 && s.Negative == 0 && s.Neutral == 0 {
		return nlp.Polarity{Neutral: 1}, nil
	}
	return nlp.Polarity{
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Compound: s.Compound,
	}, nil
}
