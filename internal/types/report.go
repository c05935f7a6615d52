// Package types provides type definitions for structured data used throughout the transcript scorer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EmptyTranscriptError is the marker carried by the report for blank input.
const EmptyTranscriptError = "Empty transcript"

// UnavailableMarker is how an unavailable semantic similarity is serialized.
const UnavailableMarker = "N/A"

// Transcript is the input of a single scoring call.
type Transcript struct {
	Text string
	// DurationSec is nil when the caller did not supply a duration.
	DurationSec *float64
}

// MetricDetail is one line item of a criterion breakdown.
type MetricDetail struct {
	Metric     string   `json:"metric"`
	Score      *float64 `json:"score,omitempty"`
	MaxScore   *float64 `json:"max_score,omitempty"`
	Value      *float64 `json:"value,omitempty"`
	ErrorCount *int     `json:"error_count,omitempty"`
	Feedback   string   `json:"feedback"`
	Level      string   `json:"level,omitempty"`
}

// CriterionResult is the scored outcome of one rubric category.
type CriterionResult struct {
	Name             string         `json:"name"`
	Score            float64        `json:"score"`
	MaxScore         float64        `json:"max_score"`
	WeightPercentage float64        `json:"weight_percentage"`
	Details          []MetricDetail `json:"details"`
	// SemanticSimilarity is nil for criteria that never carry a similarity.
	SemanticSimilarity *SemanticSimilarity `json:"semantic_similarity,omitempty"`
}

// ScoreReport is the full result of scoring a transcript.
type ScoreReport struct {
	Error         string            `json:"error,omitempty"`
	OverallScore  float64           `json:"overall_score"`
	WordCount     int               `json:"word_count"`
	SentenceCount int               `json:"sentence_count"`
	Criteria      []CriterionResult `json:"criteria"`
}

// EmptyReport returns the degenerate report produced for blank input.
func EmptyReport() *ScoreReport {
	return &ScoreReport{
		Error:    EmptyTranscriptError,
		Criteria: []CriterionResult{},
	}
}

// CategoryTotal returns the sum of all criterion scores.
func (r *ScoreReport) CategoryTotal() float64 {
	total := 0.0
	for _, c := range r.Criteria {
		total += c.Score
	}
	return total
}

// Criterion returns the criterion with the given name, or nil.
func (r *ScoreReport) Criterion(name string) *CriterionResult {
	for i := range r.Criteria {
		if r.Criteria[i].Name == name {
			return &r.Criteria[i]
		}
	}
	return nil
}

// Detail returns the metric detail with the given name, or nil.
func (c *CriterionResult) Detail(metric string) *MetricDetail {
	for i := range c.Details {
		if c.Details[i].Metric == metric {
			return &c.Details[i]
		}
	}
	return nil
}

// SemanticSimilarity is either a cosine similarity in [0,1] or the
// unavailable marker when no encoder is configured.
type SemanticSimilarity struct {
	Value     float64
	Available bool
}

// Similarity returns an available similarity value.
func Similarity(v float64) *SemanticSimilarity {
	return &SemanticSimilarity{Value: v, Available: true}
}

// SimilarityUnavailable returns the unavailable marker.
func SimilarityUnavailable() *SemanticSimilarity {
	return &SemanticSimilarity{}
}

// MarshalJSON encodes the similarity as a number or as "N/A".
func (s SemanticSimilarity) MarshalJSON() ([]byte, error) {
	if !s.Available {
		return json.Marshal(UnavailableMarker)
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts either a number or the "N/A" marker.
func (s *SemanticSimilarity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var marker string
		if err := json.Unmarshal(data, &marker); err != nil {
			return err
		}
		if marker != UnavailableMarker {
			return fmt.Errorf("unexpected semantic similarity marker %q", marker)
		}
		*s = SemanticSimilarity{}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid semantic similarity: %w", err)
	}
	*s = SemanticSimilarity{Value: v, Available: true}
	return nil
}

// Float returns a pointer to v, for optional detail fields.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for optional detail fields.
func Int(v int) *int {
	return &v
}
