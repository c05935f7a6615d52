// Package nlp defines the contracts for the language services the scoring
// engine delegates to: grammar checking, sentiment polarity and text
// embeddings.
//
// Adapters live in sub-packages (languagetool, lexicon, gemini, openai).
// The engine never sees an adapter directly; it receives a Capability that is
// either Available with a handle or Unavailable with a reason.
package nlp

import "context"

// GrammarChecker counts grammar issues in a text.
type GrammarChecker interface {
	Check(ctx context.Context, text string) (int, error)
}

// Polarity is the sentiment breakdown of a text. Positive, Negative and
// Neutral lie in [0,1]; Compound lies in [-1,1].
type Polarity struct {
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Compound float64 `json:"compound"`
}

// SentimentAnalyzer scores the polarity of a text.
type SentimentAnalyzer interface {
	Polarity(ctx context.Context, text string) (Polarity, error)
}

// Encoder maps a text to a fixed-size embedding vector.
//
// All vectors produced by one Encoder share the same dimensionality.
type Encoder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
