package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/quoteboard/internal/platform/telemetry"

// HeaderTraceID carries the server span's trace ID back to the caller.
const HeaderTraceID = "X-Trace-ID"

// httpMetrics are the OTLP-exported request instruments. Prometheus
// counters for the same traffic live with the application services.
type httpMetrics struct {
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

func newHTTPMetrics(mp metric.MeterProvider) (*httpMetrics, error) {
	meter := mp.Meter(instrumentationName)

	duration, err := meter.Float64Histogram("quoteboard.http.server.duration",
		metric.WithDescription("Time to serve a quoteboard API request."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	inFlight, err := meter.Int64UpDownCounter("quoteboard.http.server.in_flight",
		metric.WithDescription("Requests currently being served."),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{duration: duration, inFlight: inFlight}, nil
}

// Middleware records request duration and in-flight count against the
// global meter provider and echoes the trace ID in HeaderTraceID. It runs
// after TracingMiddleware, which starts the server span.
func Middleware() gin.HandlerFunc {
	m, err := newHTTPMetrics(otel.GetMeterProvider())
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		if m == nil {
			c.Next()
			return
		}

		route := attribute.String("http.route", c.FullPath())
		method := attribute.String("http.request.method", c.Request.Method)

		m.inFlight.Add(ctx, 1, metric.WithAttributes(route, method))
		defer m.inFlight.Add(ctx, -1, metric.WithAttributes(route, method))

		start := time.Now()

		c.Next()

		m.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
			route, method, attribute.Int("http.response.status_code", c.Writer.Status()),
		))
	}
}

// TracingMiddleware starts a server span per request named after the
// matched route.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}
