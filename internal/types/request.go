package types

import (
	"github.com/go-playground/validator/v10"
)

// ScoreRequest is the body of POST /score.
type ScoreRequest struct {
	Transcript  *string  `json:"transcript" validate:"required"`
	DurationSec *float64 `json:"duration_sec,omitempty" validate:"omitempty,gt=0"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ToTranscript converts the request into a scoring input.
func (r *ScoreRequest) ToTranscript() Transcript {
	t := Transcript{DurationSec: r.DurationSec}
	if r.Transcript != nil {
		t.Text = *r.Transcript
	}
	return t
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status              string `json:"status"`
	GrammarToolLoaded   bool   `json:"grammar_tool_loaded"`
	SemanticModelLoaded bool   `json:"semantic_model_loaded"`
	SentimentProvider   string `json:"sentiment_provider"`
}
