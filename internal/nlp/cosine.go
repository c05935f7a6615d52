package nlp

import (
	"fmt"
	"math"
)

// Cosine returns the cosine similarity of a and b in [-1,1].
// A zero vector has similarity 0 with everything.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("empty embedding")
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// ClampUnit clamps v to [0,1].
func ClampUnit(v float64) float64 {
	return max(0, min(1, v))
}
