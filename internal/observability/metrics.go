package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all scorer metrics.
const meterName = "github.com/jonathan/transcript-scorer"

// Collaborator call outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
)

// Metrics holds the OpenTelemetry instruments for the scorer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// ScoreDuration tracks end-to-end scoring latency.
	ScoreDuration metric.Float64Histogram

	// OverallScore tracks the distribution of overall scores.
	OverallScore metric.Float64Histogram

	// Requests counts scoring requests. Use with attribute:
	//   attribute.String("status", ...)
	Requests metric.Int64Counter

	// CollaboratorCalls counts grammar, sentiment and semantic calls. Use with attributes:
	//   attribute.String("collaborator", ...), attribute.String("outcome", ...)
	CollaboratorCalls metric.Int64Counter

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...), attribute.Int("status", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets are histogram bounds in seconds. Pure scoring is sub-millisecond;
// collaborator round trips dominate the upper buckets.
var latencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// NewMetrics creates the instruments on the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ScoreDuration, err = m.Float64Histogram("scorer.score.duration",
		metric.WithDescription("Latency of scoring one transcript."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.OverallScore, err = m.Float64Histogram("scorer.overall_score",
		metric.WithDescription("Overall transcript scores."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Requests, err = m.Int64Counter("scorer.requests",
		metric.WithDescription("Scoring requests by status."),
	); err != nil {
		return nil, err
	}
	if met.CollaboratorCalls, err = m.Int64Counter("scorer.collaborator.calls",
		metric.WithDescription("Language service calls by collaborator and outcome."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("scorer.http.request.duration",
		metric.WithDescription("HTTP request latency by method, path and status."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// RecordScore records one completed scoring call.
func (m *Metrics) RecordScore(ctx context.Context, d time.Duration, overall float64) {
	if m == nil {
		return
	}
	m.ScoreDuration.Record(ctx, d.Seconds())
	m.OverallScore.Record(ctx, overall)
}

// RecordRequest counts a scoring request with its outcome status.
func (m *Metrics) RecordRequest(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.Requests.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordCollaborator counts one collaborator call.
func (m *Metrics) RecordCollaborator(ctx context.Context, collaborator, outcome string) {
	if m == nil {
		return
	}
	m.CollaboratorCalls.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("collaborator", collaborator),
			attribute.String("outcome", outcome),
		),
	)
}

// RecordHTTP records the latency of one HTTP request.
func (m *Metrics) RecordHTTP(ctx context.Context, method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
			attribute.Int("status", status),
		),
	)
}
