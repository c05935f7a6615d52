package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestRecordScore(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordScore(ctx, 20*time.Millisecond, 72)
	m.RecordScore(ctx, 30*time.Millisecond, 55)

	rm := collect(t, reader)

	dur := findMetric(rm, "scorer.score.duration")
	require.NotNil(t, dur)
	hist, ok := dur.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)

	overall := findMetric(rm, "scorer.overall_score")
	require.NotNil(t, overall)
	scores := overall.Data.(metricdata.Histogram[float64])
	assert.InDelta(t, 127.0, scores.DataPoints[0].Sum, 1e-9)
}

func TestRecordCollaborator(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordCollaborator(ctx, "grammar", OutcomeOK)
	m.RecordCollaborator(ctx, "grammar", OutcomeOK)
	m.RecordCollaborator(ctx, "semantic", OutcomeUnavailable)

	rm := collect(t, reader)
	calls := findMetric(rm, "scorer.collaborator.calls")
	require.NotNil(t, calls)

	sum, ok := calls.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		name, _ := dp.Attributes.Value(attribute.Key("collaborator"))
		outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
		counts[name.AsString()+"/"+outcome.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{
		"grammar/ok":           2,
		"semantic/unavailable": 1,
	}, counts)
}

func TestRecordRequestAndHTTP(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordRequest(ctx, "ok")
	m.RecordHTTP(ctx, "POST", "/score", 200, 5*time.Millisecond)

	rm := collect(t, reader)
	assert.NotNil(t, findMetric(rm, "scorer.requests"))
	assert.NotNil(t, findMetric(rm, "scorer.http.request.duration"))
}

func TestNilMetrics_RecordsNothing(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordScore(ctx, time.Second, 50)
		m.RecordRequest(ctx, "ok")
		m.RecordCollaborator(ctx, "grammar", OutcomeError)
		m.RecordHTTP(ctx, "GET", "/health", 200, time.Millisecond)
	})
}
