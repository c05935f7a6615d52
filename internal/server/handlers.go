package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/transcript-scorer/internal/observability"
	"github.com/jonathan/transcript-scorer/internal/server/middleware"
	"github.com/jonathan/transcript-scorer/internal/tokenize"
	"github.com/jonathan/transcript-scorer/internal/types"
)

// Messages returned for malformed scoring requests.
const (
	msgNoTranscript    = "No transcript provided"
	msgEmptyTranscript = "Transcript cannot be empty"
	msgBadDuration     = "duration_sec must be a positive number"
)

// handleScore scores one transcript
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := s.decodeScoreRequest(w, r)
	if err != nil {
		s.metrics.RecordRequest(ctx, observability.OutcomeError)
		s.errorResponse(w, HTTPStatus(err), clientMessage(err))
		return
	}

	report, err := s.scorer.Score(ctx, req.ToTranscript())
	if err != nil {
		s.metrics.RecordRequest(ctx, observability.OutcomeError)
		s.logger.Error("scoring failed",
			zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.metrics.RecordRequest(ctx, observability.OutcomeOK)
	s.jsonResponse(w, http.StatusOK, report)
}

// handleHealth reports collaborator availability
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.scorer.Health())
}

// decodeScoreRequest parses and validates the request body.
func (s *Server) decodeScoreRequest(w http.ResponseWriter, r *http.Request) (*types.ScoreRequest, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req types.ScoreRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, &ErrPayloadTooLarge{Limit: tooLarge.Limit}
		case errors.Is(err, io.EOF):
			return nil, &ErrValidation{Field: "transcript", Message: msgNoTranscript}
		default:
			return nil, &ErrValidation{Message: "Invalid request body: " + err.Error()}
		}
	}

	if err := req.Validate(); err != nil {
		return nil, fieldError(err)
	}
	if tokenize.IsBlank(*req.Transcript) {
		return nil, &ErrValidation{Field: "transcript", Message: msgEmptyTranscript}
	}
	return &req, nil
}

// fieldError maps validator failures onto client-facing messages.
func fieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Message: err.Error()}
	}

	switch fe := verrs[0]; fe.Field() {
	case "Transcript":
		return &ErrValidation{Field: "transcript", Message: msgNoTranscript}
	case "DurationSec":
		return &ErrValidation{Field: "duration_sec", Message: msgBadDuration}
	default:
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed on %q", fe.Tag())}
	}
}

// clientMessage is the text placed in the error body.
func clientMessage(err error) string {
	var validation *ErrValidation
	if errors.As(err, &validation) {
		return validation.Message
	}
	return err.Error()
}
