package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	lperrors "github.com/vnykmshr/looppace/pkg/common/errors"
	"github.com/vnykmshr/looppace/pkg/metrics"
	"github.com/vnykmshr/looppace/pkg/pacing/loop"
)

// DefaultName identifies runners that were not given an explicit name.
const DefaultName = "loop runner"

// Func is one iteration of a paced loop. A non-nil error is recorded and
// logged (throttled) but never stops the loop; cancellation of the runner's
// context is the only way the loop ends.
type Func func(ctx context.Context) error

// Runner drives a callback at a fixed frequency until stopped. It owns a
// blocking loop.Limiter and calls it once per iteration.
type Runner interface {
	// Start launches the loop goroutine. It returns ErrAlreadyRunning if
	// the runner is already started.
	Start() error

	// Stop cancels the loop and returns a channel that is closed once the
	// loop goroutine has exited. Stopping a runner that never started
	// returns an already-closed channel.
	Stop() <-chan struct{}

	// Running reports whether the loop goroutine is currently active.
	Running() bool

	// Iterations returns the number of completed loop iterations.
	Iterations() uint64

	// LastError returns the most recent callback error, wrapped in an
	// OperationError, or nil if no iteration has failed.
	LastError() error

	// Limiter exposes the pacing state of the underlying limiter.
	Limiter() loop.Limiter
}

// Config holds configuration options for creating a new Runner.
type Config struct {
	// Frequency is the desired loop frequency in hertz.
	// Required; must be positive and finite.
	Frequency loop.Frequency

	// Name identifies the runner (and its limiter) in log output.
	// Defaults to DefaultName.
	Name string

	// Quiet suppresses the limiter's lateness warnings.
	Quiet bool

	// ErrorLogRate caps how often callback errors are logged, in events
	// per second. Errors beyond the cap are still counted and kept in
	// LastError. If zero, one log line per second is allowed.
	ErrorLogRate rate.Limit

	// Clock provides the current time for the limiter. If nil,
	// loop.SystemClock is used.
	Clock loop.Clock

	// Logger receives lateness warnings and throttled callback errors.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// loopRunner implements the Runner interface.
type loopRunner struct {
	fn      Func
	limiter loop.Limiter
	name    string
	logger  *slog.Logger
	errLog  *rate.Limiter

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	lastErr error

	iterations atomic.Uint64

	registry       *metrics.Registry
	metricsEnabled bool
}

// New creates a new Runner that drives fn at the configured frequency.
func New(fn Func, config Config) (Runner, error) {
	if fn == nil {
		return nil, lperrors.NewValidationError("runner", "fn", nil, "cannot be nil").
			WithHint("provide the loop body to drive")
	}

	if config.Name == "" {
		config.Name = DefaultName
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.ErrorLogRate == 0 {
		config.ErrorLogRate = 1
	}

	limiter, err := loop.NewWithConfig(loop.Config{
		Frequency: config.Frequency,
		Name:      config.Name,
		Quiet:     config.Quiet,
		Clock:     config.Clock,
		Logger:    config.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &loopRunner{
		fn:      fn,
		limiter: limiter,
		name:    config.Name,
		logger:  config.Logger,
		errLog:  rate.NewLimiter(config.ErrorLogRate, 1),
	}, nil
}

// Start launches the loop goroutine.
func (r *loopRunner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return lperrors.ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true

	if r.metricsEnabled {
		r.registry.RunnerRunning.WithLabelValues(r.name).Set(1)
	}

	go r.run(ctx, r.done)
	return nil
}

// run is the loop goroutine body. The metrics switch is snapshotted at start:
// EnableMetrics is rejected while running, so toggles take effect on the next
// Start.
func (r *loopRunner) run(ctx context.Context, done chan struct{}) {
	r.mu.Lock()
	metricsOn := r.metricsEnabled
	registry := r.registry
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()

		if metricsOn {
			registry.RunnerRunning.WithLabelValues(r.name).Set(0)
		}
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := r.fn(ctx); err != nil {
			r.recordError(err, metricsOn, registry)
		}

		r.iterations.Add(1)
		if metricsOn {
			registry.RunnerIterations.WithLabelValues(r.name).Inc()
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return
		}
	}
}

// recordError keeps the error for LastError and logs it if the throttle
// allows.
func (r *loopRunner) recordError(err error, metricsOn bool, registry *metrics.Registry) {
	opErr := lperrors.NewOperationError("runner", "iterate", err).
		WithContext(r.name)

	r.mu.Lock()
	r.lastErr = opErr
	r.mu.Unlock()

	if metricsOn {
		registry.RunnerErrors.WithLabelValues(r.name).Inc()
	}

	if r.errLog.Allow() {
		r.logger.Warn(fmt.Sprintf("%s iteration failed: %v", r.name, err))
	}
}

// Stop cancels the loop and returns its completion channel.
func (r *loopRunner) Stop() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done == nil {
		// Never started.
		closed := make(chan struct{})
		close(closed)
		return closed
	}

	if r.cancel != nil {
		r.cancel()
	}
	return r.done
}

// Running reports whether the loop goroutine is currently active.
func (r *loopRunner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Iterations returns the number of completed loop iterations.
func (r *loopRunner) Iterations() uint64 {
	return r.iterations.Load()
}

// LastError returns the most recent callback error, or nil.
func (r *loopRunner) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Limiter exposes the pacing state of the underlying limiter.
func (r *loopRunner) Limiter() loop.Limiter {
	return r.limiter
}
