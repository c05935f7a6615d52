package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ashaText = "Hello everyone, my name is Asha, I am 10 years old, I study in class 5, I love painting and playing chess. Thank you."

func TestNew_LoadsFullLexicon(t *testing.T) {
	assert.Greater(t, New().Size(), 7000)
}

func TestPolarity_KnownTexts(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		positive float64
	}{
		{
			name:     "self introduction",
			text:     ashaText,
			positive: 0.288,
		},
		{
			name:     "strongly positive",
			text:     "I am thrilled and overjoyed, this is fantastic and wonderful, I adore my lovely family.",
			positive: 0.703,
		},
	}

	a := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := a.Polarity(t.Context(), tt.text)
			require.NoError(t, err)
			assert.InDelta(t, tt.positive, p.Positive, 0.005)
			assert.Greater(t, p.Compound, 0.0)
		})
	}
}

func TestPolarity_ProportionsSumToOne(t *testing.T) {
	texts := []string{
		"I am so happy and grateful to be here, thank you!",
		"I hate this, it was a terrible and boring day.",
		"Good morning everyone, I am not sad at all.",
	}
	a := New()
	for _, text := range texts {
		p, err := a.Polarity(t.Context(), text)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, p.Positive+p.Negative+p.Neutral, 1e-6, text)
		assert.GreaterOrEqual(t, p.Compound, -1.0)
		assert.LessOrEqual(t, p.Compound, 1.0)
	}
}

func TestPolarity_Negation(t *testing.T) {
	a := New()

	plain, err := a.Polarity(t.Context(), "I am happy")
	require.NoError(t, err)
	negated, err := a.Polarity(t.Context(), "I am not happy")
	require.NoError(t, err)

	assert.Greater(t, plain.Compound, 0.0)
	assert.Less(t, negated.Compound, 0.0)
	assert.Zero(t, negated.Positive)
}

func TestPolarity_NoWords(t *testing.T) {
	p, err := New().Polarity(t.Context(), "...")
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Neutral)
	assert.Zero(t, p.Positive)
	assert.Zero(t, p.Compound)
}
