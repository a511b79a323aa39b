package coop

import (
	"context"
	"log/slog"
	"time"

	taskctx "github.com/vnykmshr/looppace/pkg/common/context"
	"github.com/vnykmshr/looppace/pkg/common/validation"
	"github.com/vnykmshr/looppace/pkg/pacing/loop"
)

const (
	// DefaultBlockDuration is how long before the deadline a pacing call
	// stops yielding and busy-waits for precision. Empirically 0.5ms gives
	// good behavior at 400 Hz and below.
	DefaultBlockDuration = 500 * time.Microsecond

	// DefaultYieldInterval is the minimal non-zero duration of one
	// cooperative yield.
	DefaultYieldInterval = 10 * time.Microsecond
)

// Limiter regulates the frequency of a cooperative task's loop. Unlike the
// blocking loop.Limiter, a pacing call never parks the task for the whole
// remaining slack at once: it waits in short cancellable slices so the
// surrounding scheduler stays responsive, then busy-waits for the final
// block duration to keep the measured period close to the desired one.
//
// A Limiter paces exactly one task. Calling Sleep concurrently from several
// goroutines on the same instance produces undefined deadline state; the
// single-owner contract is the caller's responsibility.
type Limiter interface {
	// Remaining returns the time remaining until the next expected tick.
	// It is a pure read, exposed for symmetry with the pacing calls.
	Remaining() time.Duration

	// Sleep suspends the calling task for the duration required to
	// regulate the loop frequency, using the configured block duration.
	// It is meant to be called once per loop cycle. If ctx is canceled
	// while suspended, Sleep returns ctx.Err() and leaves all limiter
	// state at its pre-call values.
	Sleep(ctx context.Context) error

	// SleepBlock is Sleep with an explicit block duration: the call
	// busy-waits (instead of yielding) for the final blockDuration before
	// the tick.
	SleepBlock(ctx context.Context, blockDuration time.Duration) error

	// Period returns the desired period between ticks.
	Period() time.Duration

	// Frequency returns the desired loop frequency in hertz.
	Frequency() loop.Frequency

	// NextTick returns the absolute time of the next expected tick.
	NextTick() time.Time

	// Slack returns the signed time that remained until the next tick at
	// the start of the last completed pacing call.
	Slack() time.Duration

	// MeasuredPeriod returns the wall-clock duration between the ends of
	// the two most recent pacing calls. It is zero until the first call
	// completes.
	MeasuredPeriod() time.Duration

	// Name returns the name used in log output.
	Name() string

	// Warn returns whether lateness warnings are enabled.
	Warn() bool

	// SetWarn enables or disables lateness warnings.
	SetWarn(warn bool)

	// SetFrequency changes the desired loop frequency. The next tick is
	// adjusted so that it still falls one (new) period after the last
	// completed cycle. Panics if the frequency is not positive.
	SetFrequency(frequency loop.Frequency)
}

// Config holds configuration options for creating a new Limiter.
type Config struct {
	// Frequency is the desired loop frequency in hertz.
	// Required; must be positive and finite.
	Frequency loop.Frequency

	// Name identifies the limiter in log output. Defaults to loop.DefaultName.
	Name string

	// Quiet suppresses lateness warnings. By default the limiter warns
	// when a cycle overruns its deadline by more than a tenth of the
	// period.
	Quiet bool

	// BlockDuration is how long before the tick Sleep switches from
	// yielding to busy-waiting. If zero, DefaultBlockDuration is used.
	// Must not be negative.
	BlockDuration time.Duration

	// YieldInterval is the duration of one cooperative yield while far
	// from the deadline. If zero, DefaultYieldInterval is used. Must not
	// be negative.
	YieldInterval time.Duration

	// Clock provides the current time. If nil, loop.SystemClock is used.
	Clock loop.Clock

	// Logger receives lateness warnings. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// coopLimiter implements the Limiter interface for cooperative tasks.
type coopLimiter struct {
	period         time.Duration
	freq           loop.Frequency
	nextTick       time.Time
	lastLoop       time.Time
	slack          time.Duration
	measuredPeriod time.Duration
	name           string
	warn           bool
	blockDuration  time.Duration
	yieldInterval  time.Duration
	clock          loop.Clock
	logger         *slog.Logger
}

// New creates a new cooperative rate limiter for the given frequency in
// hertz. ctx is the context of the task that will own the limiter; a nil or
// already-canceled context means no task is active and construction fails
// with ErrNoActiveTask.
func New(ctx context.Context, frequency loop.Frequency) (Limiter, error) {
	return NewWithConfig(ctx, Config{Frequency: frequency})
}

// NewWithConfig creates a new cooperative rate limiter with the given
// configuration. See New for the context precondition.
func NewWithConfig(ctx context.Context, config Config) (Limiter, error) {
	if err := taskctx.Active(ctx); err != nil {
		return nil, err
	}

	period, err := loop.PeriodFor("coop", config.Frequency)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateNonNegativeDuration("coop", "blockDuration", config.BlockDuration); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeDuration("coop", "yieldInterval", config.YieldInterval); err != nil {
		return nil, err
	}

	if config.Name == "" {
		config.Name = loop.DefaultName
	}
	if config.BlockDuration == 0 {
		config.BlockDuration = DefaultBlockDuration
	}
	if config.YieldInterval == 0 {
		config.YieldInterval = DefaultYieldInterval
	}
	if config.Clock == nil {
		config.Clock = loop.SystemClock{}
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	now := config.Clock.Now()
	return &coopLimiter{
		period:        period,
		freq:          config.Frequency,
		nextTick:      now.Add(period),
		lastLoop:      now,
		name:          config.Name,
		warn:          !config.Quiet,
		blockDuration: config.BlockDuration,
		yieldInterval: config.YieldInterval,
		clock:         config.Clock,
		logger:        config.Logger,
	}, nil
}
