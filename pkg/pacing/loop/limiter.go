package loop

import (
	"context"
	"log/slog"
	"time"

	"github.com/vnykmshr/looppace/pkg/common/validation"
)

// Frequency represents a desired loop frequency in hertz.
type Frequency float64

// Every converts a desired period between ticks to a Frequency.
// A non-positive period converts to 0, which constructors reject.
func Every(period time.Duration) Frequency {
	if period <= 0 {
		return 0
	}
	return Frequency(float64(time.Second) / float64(period))
}

// DefaultName identifies limiters that were not given an explicit name.
const DefaultName = "rate limiter"

// Limiter regulates the frequency of a synchronous loop. One call to Sleep
// (or Wait) per cycle keeps the loop at the configured frequency by blocking
// for whatever time remains until the next tick.
//
// A limiter is a rate limiter, not a synchronous clock: when the caller
// overruns a deadline the next tick is rebased from the actual completion
// time instead of accumulating backlog, so sustained overload throttles the
// effective rate below target rather than scheduling ticks in the past.
//
// A Limiter is single-owner. Calling its methods from multiple goroutines
// concurrently produces undefined interleaving of deadline state; it is the
// caller's responsibility to confine an instance to one loop.
type Limiter interface {
	// Remaining returns the time remaining until the next expected tick.
	// It is a pure read and may be called any number of times without
	// affecting limiter state.
	Remaining() time.Duration

	// Sleep blocks the calling goroutine for the duration required to
	// regulate the loop frequency. It is meant to be called once per
	// loop cycle.
	Sleep()

	// Wait is Sleep with context support: if ctx is canceled while
	// waiting, Wait returns ctx.Err() and leaves all limiter state at
	// its pre-call values.
	Wait(ctx context.Context) error

	// Period returns the desired period between ticks.
	Period() time.Duration

	// Frequency returns the desired loop frequency in hertz.
	Frequency() Frequency

	// NextTick returns the absolute time of the next expected tick.
	NextTick() time.Time

	// Slack returns the signed time that remained until the next tick at
	// the start of the last completed pacing call. Negative slack means
	// the caller was behind schedule.
	Slack() time.Duration

	// Name returns the name used in log output.
	Name() string

	// Warn returns whether lateness warnings are enabled.
	Warn() bool

	// SetWarn enables or disables lateness warnings.
	SetWarn(warn bool)

	// SetFrequency changes the desired loop frequency. The next tick is
	// adjusted so that it still falls one (new) period after the last
	// completed cycle. Panics if the frequency is not positive.
	SetFrequency(frequency Frequency)
}

// Clock provides the current time. It can be mocked for testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Config holds configuration options for creating a new Limiter.
type Config struct {
	// Frequency is the desired loop frequency in hertz.
	// Required; must be positive and finite.
	Frequency Frequency

	// Name identifies the limiter in log output. Defaults to DefaultName.
	Name string

	// Quiet suppresses lateness warnings. By default the limiter warns
	// when a cycle overruns its deadline by more than a tenth of the
	// period.
	Quiet bool

	// Clock provides the current time. If nil, SystemClock is used.
	Clock Clock

	// Logger receives lateness warnings. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// loopLimiter implements the Limiter interface for synchronous loops.
type loopLimiter struct {
	period   time.Duration
	freq     Frequency
	nextTick time.Time
	slack    time.Duration
	name     string
	warn     bool
	clock    Clock
	logger   *slog.Logger
}

// New creates a new blocking rate limiter for the given frequency in hertz.
func New(frequency Frequency) (Limiter, error) {
	return NewWithConfig(Config{Frequency: frequency})
}

// NewWithConfig creates a new blocking rate limiter with the given
// configuration. It returns a ValidationError if the frequency is not a
// positive finite number.
func NewWithConfig(config Config) (Limiter, error) {
	period, err := PeriodFor("loop", config.Frequency)
	if err != nil {
		return nil, err
	}

	if config.Name == "" {
		config.Name = DefaultName
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &loopLimiter{
		period:   period,
		freq:     config.Frequency,
		nextTick: config.Clock.Now().Add(period),
		name:     config.Name,
		warn:     !config.Quiet,
		clock:    config.Clock,
		logger:   config.Logger,
	}, nil
}

// PeriodFor validates a frequency on behalf of module and converts it to the
// corresponding tick period. Shared with the cooperative limiter, which
// reports its own module name in validation errors.
func PeriodFor(module string, frequency Frequency) (time.Duration, error) {
	f := float64(frequency)
	if err := validation.ValidateFiniteFloat(module, "frequency", f); err != nil {
		return 0, err
	}
	if err := validation.ValidatePositiveFloat(module, "frequency", f); err != nil {
		return 0, err
	}

	period := time.Duration(float64(time.Second) / f)
	if err := validation.ValidatePositiveDuration(module, "period", period); err != nil {
		// Frequencies above 1e9 Hz truncate to a zero period.
		return 0, err
	}
	return period, nil
}
