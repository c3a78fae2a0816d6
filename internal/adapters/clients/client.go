// Package clients provides the outbound HTTP client used to reach the
// identity provider.
package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteboard/internal/platform/config"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

const instrumentationName = "github.com/jsamuelsen/quoteboard/internal/adapters/clients"

// defaultTimeout applies when Config.Timeout is unset.
const defaultTimeout = 30 * time.Second

// Client errors. Callers translate them to domain errors.
var (
	// ErrCircuitOpen means the breaker refused the call without contacting
	// the provider.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last failure once every attempt is spent.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// errServerStatus marks a 5xx response as retryable.
var errServerStatus = errors.New("server error")

// Config configures a Client.
type Config struct {
	// BaseURL is the base URL for all requests. It may be a complete
	// endpoint such as a JWKS document URL.
	BaseURL string

	// ServiceName identifies the downstream service in logs, spans and metrics.
	ServiceName string

	// Timeout bounds a single attempt. Retries can make a call take longer.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Client is an instrumented HTTP client. Each call runs through a circuit
// breaker, and inside it transport errors and 5xx responses are retried
// with jittered exponential backoff. Calls are traced and counted with
// OpenTelemetry and forward the inbound request and correlation IDs.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	retry       config.RetryConfig
	breaker     *gobreaker.CircuitBreaker[*http.Response]

	tracer          trace.Tracer
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a Client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	retry := cfg.Retry
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		retry:           retry,
		breaker:         newBreaker(cfg.ServiceName, cfg.Circuit, logger),
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

func newTransport(cfg config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.MaxIdleConns > 0 {
		t.MaxIdleConns = cfg.MaxIdleConns
	}

	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}

	if cfg.IdleConnTimeout > 0 {
		t.IdleConnTimeout = cfg.IdleConnTimeout
	}

	return t
}

// newBreaker opens after MaxFailures consecutive failed calls, stays open
// for Timeout, then closes again after HalfOpenLimit successful probes.
func newBreaker(name string, cfg config.CircuitBreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[*http.Response] {
	maxFailures := uint32(max(cfg.MaxFailures, 1)) //nolint:gosec // small positive config value
	halfOpen := uint32(max(cfg.HalfOpenLimit, 1))  //nolint:gosec // small positive config value

	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: halfOpen,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
		// A cancelled caller says nothing about the provider's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// Do sends req through the breaker and retry loop. Non-5xx responses,
// including 4xx, are returned to the caller as is. Requests with a body
// must set GetBody so retries can resend it.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	c.injectHeaders(ctx, req)

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.doWithRetry(ctx, req, logger)
	})

	duration := time.Since(start)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		span.SetStatus(codes.Error, "circuit open")
		c.recordMetrics(ctx, req.Method, 0, duration, "circuit_open")
		logger.Warn("request blocked by circuit breaker")

		return nil, ErrCircuitOpen

	case err != nil:
		span.SetStatus(codes.Error, err.Error())
		c.recordMetrics(ctx, req.Method, 0, duration, "error")
		logger.Error("request failed", slog.Duration("duration", duration), slog.Any("error", err))

		if ctx.Err() != nil {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, fmt.Sprintf("%dxx", resp.StatusCode/100))
	logger.Debug("request completed", slog.Int("status", resp.StatusCode), slog.Duration("duration", duration))

	return resp, nil
}

func (c *Client) doWithRetry(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, error) {
	attempt := 0

	return backoff.Retry(ctx, func() (*http.Response, error) {
		attempt++

		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, backoff.Permanent(err)
			}

			req.Body = body
		}

		resp, err := c.http.Do(req.WithContext(ctx))
		if err != nil {
			if !isRetryableError(err) {
				return nil, backoff.Permanent(err)
			}

			logger.Debug("attempt failed", slog.Int("attempt", attempt), slog.Any("error", err))

			return nil, err
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			_ = resp.Body.Close()
			logger.Debug("attempt failed", slog.Int("attempt", attempt), slog.Int("status", resp.StatusCode))

			return nil, fmt.Errorf("%w: %d", errServerStatus, resp.StatusCode)
		}

		return resp, nil
	},
		backoff.WithBackOff(c.backoffPolicy()),
		backoff.WithMaxTries(uint(c.retry.MaxAttempts)), //nolint:gosec // at least 1
	)
}

// backoffPolicy builds a fresh policy per call. Zero config fields keep
// the library defaults.
func (c *Client) backoffPolicy() *backoff.ExponentialBackOff {
	policy := backoff.NewExponentialBackOff()
	policy.RandomizationFactor = c.retry.JitterFactor

	if c.retry.InitialInterval > 0 {
		policy.InitialInterval = c.retry.InitialInterval
	}

	if c.retry.MaxInterval > 0 {
		policy.MaxInterval = c.retry.MaxInterval
	}

	if c.retry.Multiplier > 0 {
		policy.Multiplier = c.retry.Multiplier
	}

	return policy
}

// Get requests path relative to the base URL. An empty path requests the
// base URL itself.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return c.Do(ctx, req)
}

// CircuitState reports the breaker state: "closed", "half-open" or "open".
func (c *Client) CircuitState() string {
	return c.breaker.State().String()
}

func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func (c *Client) buildURL(path string) string {
	if path == "" {
		return c.baseURL
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	opt := metric.WithAttributes(attrs...)
	c.requestDuration.Record(ctx, duration.Seconds(), opt)
	c.requestTotal.Add(ctx, 1, opt)
}

// isRetryableError reports whether a transport error is worth another
// attempt: timeouts and connection-level failures, never cancellation.
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
