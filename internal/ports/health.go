package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrDuplicateChecker is returned when a checker name is registered twice.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// DefaultCheckTimeout bounds a single health check when the registry has
// no explicit timeout.
const DefaultCheckTimeout = 2 * time.Second

// HealthChecker is implemented by dependencies that can report their
// health: the quote and user stores and the JWKS key-set client.
type HealthChecker interface {
	// Name identifies the dependency in readiness responses.
	Name() string

	// Check returns nil when the dependency is usable. It must honour ctx.
	Check(ctx context.Context) error
}

// HealthRegistry aggregates the checks of every registered dependency.
type HealthRegistry interface {
	// Register adds a checker. Names must be unique.
	Register(checker HealthChecker, opts ...RegisterOption) error

	// CheckAll runs every check concurrently.
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus is the state of one dependency or of the whole service.
type HealthStatus string

const (
	// HealthStatusHealthy means every check passed.
	HealthStatusHealthy HealthStatus = "healthy"

	// HealthStatusDegraded means only non-critical checks failed. The
	// service still takes traffic, for example when the identity provider
	// is down but static admins and accounts still authenticate.
	HealthStatusDegraded HealthStatus = "degraded"

	// HealthStatusUnhealthy means a critical check failed.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// Ready reports whether a service in this state should receive traffic.
func (s HealthStatus) Ready() bool {
	return s != HealthStatusUnhealthy
}

// HealthResult is the aggregated outcome of CheckAll.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Status   HealthStatus  `json:"status"`
	Critical bool          `json:"critical"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RegisterOption customises how a checker is registered.
type RegisterOption func(*registration)

// NonCritical marks a checker whose failure degrades the service without
// taking it out of rotation.
func NonCritical() RegisterOption {
	return func(r *registration) { r.critical = false }
}

type registration struct {
	checker  HealthChecker
	critical bool
}

// DefaultHealthRegistry is the concurrency-safe HealthRegistry.
type DefaultHealthRegistry struct {
	mu            sync.RWMutex
	registrations []registration
	timeout       time.Duration
}

// NewHealthRegistry creates a registry whose checks each get
// DefaultCheckTimeout.
func NewHealthRegistry() *DefaultHealthRegistry {
	return &DefaultHealthRegistry{timeout: DefaultCheckTimeout}
}

// WithCheckTimeout sets the per-check timeout. Non-positive values keep
// the current one.
func (r *DefaultHealthRegistry) WithCheckTimeout(d time.Duration) *DefaultHealthRegistry {
	if d > 0 {
		r.timeout = d
	}

	return r
}

// Register adds a checker. Checkers are critical unless NonCritical is given.
func (r *DefaultHealthRegistry) Register(checker HealthChecker, opts ...RegisterOption) error {
	reg := registration{checker: checker, critical: true}
	for _, opt := range opts {
		opt(&reg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	for _, existing := range r.registrations {
		if existing.checker.Name() == name {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
		}
	}

	r.registrations = append(r.registrations, reg)

	return nil
}

// CheckAll runs every check concurrently, each under the registry timeout.
// A failing critical check makes the result unhealthy; a failing
// non-critical one makes it degraded.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	regs := append([]registration(nil), r.registrations...)
	timeout := r.timeout
	r.mu.RUnlock()

	results := make([]*CheckResult, len(regs))

	var g errgroup.Group

	for i, reg := range regs {
		g.Go(func() error {
			results[i] = runCheck(ctx, reg, timeout)
			return nil
		})
	}

	_ = g.Wait()

	out := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(regs)),
		Timestamp: time.Now(),
	}

	for i, reg := range regs {
		res := results[i]
		out.Checks[reg.checker.Name()] = res

		switch {
		case res.Status == HealthStatusHealthy:
		case res.Critical:
			out.Status = HealthStatusUnhealthy
		case out.Status == HealthStatusHealthy:
			out.Status = HealthStatusDegraded
		}
	}

	return out
}

func runCheck(ctx context.Context, reg registration, timeout time.Duration) *CheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := reg.checker.Check(ctx)

	res := &CheckResult{
		Status:   HealthStatusHealthy,
		Critical: reg.critical,
		Duration: time.Since(start),
	}

	if err != nil {
		res.Status = HealthStatusUnhealthy
		res.Message = err.Error()
	}

	return res
}
