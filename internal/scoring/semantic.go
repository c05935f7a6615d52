package scoring

import (
	"context"
	"fmt"

	"github.com/jonathan/transcript-scorer/internal/nlp"
	"github.com/jonathan/transcript-scorer/internal/rubric"
)

// Similarities are the cosine similarities, clamped to [0,1], of a
// transcript against each reference description.
type Similarities struct {
	Content    float64
	Engagement float64
	Clarity    float64
}

// UniformSimilarities returns v for every reference.
func UniformSimilarities(v float64) Similarities {
	return Similarities{Content: v, Engagement: v, Clarity: v}
}

// SemanticIndex holds precomputed reference embeddings.
type SemanticIndex struct {
	encoder    nlp.Encoder
	content    []float32
	engagement []float32
	clarity    []float32
}

// NewSemanticIndex embeds the reference descriptions once.
func NewSemanticIndex(ctx context.Context, enc nlp.Encoder, refs rubric.References) (*SemanticIndex, error) {
	ix := &SemanticIndex{encoder: enc}
	targets := []struct {
		name string
		text string
		dst  *[]float32
	}{
		{"content", refs.Content, &ix.content},
		{"engagement", refs.Engagement, &ix.engagement},
		{"clarity", refs.Clarity, &ix.clarity},
	}
	for _, t := range targets {
		vec, err := enc.Embed(ctx, t.text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed %s reference: %w", t.name, err)
		}
		if len(vec) == 0 {
			return nil, fmt.Errorf("empty embedding for %s reference", t.name)
		}
		*t.dst = vec
	}
	return ix, nil
}

// Compare embeds text and compares it with every reference.
func (ix *SemanticIndex) Compare(ctx context.Context, text string) (Similarities, error) {
	vec, err := ix.encoder.Embed(ctx, text)
	if err != nil {
		return Similarities{}, fmt.Errorf("failed to embed transcript: %w", err)
	}

	var sims Similarities
	pairs := []struct {
		ref []float32
		dst *float64
	}{
		{ix.content, &sims.Content},
		{ix.engagement, &sims.Engagement},
		{ix.clarity, &sims.Clarity},
	}
	for _, p := range pairs {
		cos, err := nlp.Cosine(vec, p.ref)
		if err != nil {
			return Similarities{}, err
		}
		*p.dst = nlp.ClampUnit(cos)
	}
	return sims, nil
}
