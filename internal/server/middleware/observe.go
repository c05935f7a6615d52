package middleware

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/jonathan/transcript-scorer/internal/observability"
)

// OtherRoute labels metrics and spans for paths outside the route list.
const OtherRoute = "other"

// Observe returns middleware that continues or starts a trace, records
// request latency and logs one line per request. Metric and span labels use
// the request path only when it is one of routes, so unknown paths share one
// series.
func Observe(logger *zap.Logger, metrics *observability.Metrics, routes ...string) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	prop := propagation.TraceContext{}
	known := make(map[string]bool, len(routes))
	for _, r := range routes {
		known[r] = true
	}
	label := func(path string) string {
		if known[path] {
			return path
		}
		return OtherRoute
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := label(r.URL.Path)
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := observability.StartSpan(ctx, "HTTP "+r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.HTTPRoute(route),
				),
			)
			defer span.End()

			prop.Inject(ctx, propagation.HeaderCarrier(w.Header()))
			r = r.WithContext(ctx)

			m := httpsnoop.CaptureMetrics(next, w, r)

			span.SetAttributes(semconv.HTTPResponseStatusCode(m.Code))
			metrics.RecordHTTP(ctx, r.Method, route, m.Code, m.Duration)

			fields := append([]zap.Field{
				zap.String("request_id", GetRequestID(ctx)),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", m.Code),
				zap.Int64("bytes", m.Written),
				zap.Duration("duration", m.Duration),
				zap.String("remote_addr", r.RemoteAddr),
			}, observability.TraceFields(ctx)...)

			if m.Code >= http.StatusInternalServerError {
				logger.Error("request completed", fields...)
				return
			}
			logger.Info("request completed", fields...)
		})
	}
}
