// Package gemini adapts an llm.Client to the grammar, sentiment and
// embedding contracts of package nlp.
package gemini

import (
	"context"
	"fmt"
	"math"

	"github.com/jonathan/transcript-scorer/internal/llm"
	"github.com/jonathan/transcript-scorer/internal/nlp"
)

// Compile-time interface assertions.
var (
	_ nlp.GrammarChecker    = (*Grammar)(nil)
	_ nlp.SentimentAnalyzer = (*Sentiment)(nil)
	_ nlp.Encoder           = (*Encoder)(nil)
)

// Issue is a single grammar problem reported by the model.
type Issue struct {
	Fragment string `json:"fragment"`
	Reason   string `json:"reason"`
}

type grammarResponse struct {
	Issues []Issue `json:"issues"`
	Count  *int    `json:"count"`
}

// Grammar counts grammar issues by asking the model to proofread the text.
type Grammar struct {
	client   llm.Client
	language string
	tier     llm.ModelTier
}

// NewGrammar returns a Grammar checker for the given language tag.
func NewGrammar(client llm.Client, language string) *Grammar {
	if language == "" {
		language = "en-US"
	}
	return &Grammar{client: client, language: language, tier: llm.TierStandard}
}

// Check implements nlp.GrammarChecker.
func (g *Grammar) Check(ctx context.Context, text string) (int, error) {
	schema, err := llm.GrammarIssuesSchema(g.language)
	if err != nil {
		return 0, err
	}

	raw, err := g.client.GenerateJSON(ctx, llm.BuildExtractionPrompt(schema, text), g.tier)
	if err != nil {
		return 0, fmt.Errorf("gemini grammar: %w", err)
	}

	var resp grammarResponse
	if err := llm.DecodeJSON(raw, &resp); err != nil {
		return 0, fmt.Errorf("gemini grammar: %w", err)
	}

	// The issue list is authoritative when the two disagree.
	if len(resp.Issues) > 0 || resp.Count == nil {
		return len(resp.Issues), nil
	}
	if *resp.Count < 0 {
		return 0, fmt.Errorf("gemini grammar: negative issue count %d", *resp.Count)
	}
	return *resp.Count, nil
}

// Sentiment estimates polarity with the model.
type Sentiment struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewSentiment returns a Sentiment analyzer backed by client.
func NewSentiment(client llm.Client) *Sentiment {
	return &Sentiment{client: client, tier: llm.TierLite}
}

// Polarity implements nlp.SentimentAnalyzer.
func (s *Sentiment) Polarity(ctx context.Context, text string) (nlp.Polarity, error) {
	schema, err := llm.SentimentPolaritySchema()
	if err != nil {
		return nlp.Polarity{}, err
	}

	raw, err := s.client.GenerateJSON(ctx, llm.BuildExtractionPrompt(schema, text), s.tier)
	if err != nil {
		return nlp.Polarity{}, fmt.Errorf("gemini sentiment: %w", err)
	}

	var p nlp.Polarity
	if err := llm.DecodeJSON(raw, &p); err != nil {
		return nlp.Polarity{}, fmt.Errorf("gemini sentiment: %w", err)
	}
	return normalize(p), nil
}

// normalize clamps the proportions into range and rescales them to sum to 1.
func normalize(p nlp.Polarity) nlp.Polarity {
	p.Positive = clamp(p.Positive, 0, 1)
	p.Negative = clamp(p.Negative, 0, 1)
	p.Neutral = clamp(p.Neutral, 0, 1)
	p.Compound = clamp(p.Compound, -1, 1)

	if sum := p.Positive + p.Negative + p.Neutral; sum > 0 {
		p.Positive /= sum
		p.Negative /= sum
		p.Neutral /= sum
	} else {
		p.Neutral = 1
	}
	return p
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Encoder embeds text with the client's embedding model.
type Encoder struct {
	client llm.Client
}

// NewEncoder returns an Encoder backed by client.
func NewEncoder(client llm.Client) *Encoder {
	return &Encoder{client: client}
}

// Embed implements nlp.Encoder.
func (e *Encoder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := e.client.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	return vec, nil
}
