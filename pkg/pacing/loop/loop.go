package loop

import (
	"context"
	"fmt"
	"time"
)

// Remaining returns the time remaining until the next expected tick.
func (l *loopLimiter) Remaining() time.Duration {
	return l.nextTick.Sub(l.clock.Now())
}

// Sleep blocks for the duration required to regulate the loop frequency.
func (l *loopLimiter) Sleep() {
	// Background context never cancels, so the error is always nil.
	_ = l.Wait(context.Background())
}

// Wait blocks for the duration required to regulate the loop frequency,
// returning early with ctx.Err() if the context is canceled. On cancellation
// the deadline and slack keep their pre-call values, so the interrupted cycle
// can be retried or abandoned without corrupting the schedule.
func (l *loopLimiter) Wait(ctx context.Context) error {
	slack := l.nextTick.Sub(l.clock.Now())
	if slack > 0 {
		timer := time.NewTimer(slack)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	} else if l.warn && slack < -l.period/10 {
		// Small overruns are scheduler jitter, not caller lag; only
		// lateness beyond a tenth of the period is worth a log line.
		l.logLate(slack)
	}

	l.slack = slack
	l.nextTick = l.clock.Now().Add(l.period)
	return nil
}

// logLate emits the single-line lateness warning.
func (l *loopLimiter) logLate(slack time.Duration) {
	lateMs := -float64(slack) / float64(time.Millisecond)
	l.logger.Warn(fmt.Sprintf("%s is late by %.1f [ms]", l.name, lateMs))
}

// Period returns the desired period between ticks.
func (l *loopLimiter) Period() time.Duration {
	return l.period
}

// Frequency returns the desired loop frequency in hertz.
func (l *loopLimiter) Frequency() Frequency {
	return l.freq
}

// NextTick returns the absolute time of the next expected tick.
func (l *loopLimiter) NextTick() time.Time {
	return l.nextTick
}

// Slack returns the slack measured at the start of the last pacing call.
func (l *loopLimiter) Slack() time.Duration {
	return l.slack
}

// Name returns the name used in log output.
func (l *loopLimiter) Name() string {
	return l.name
}

// Warn returns whether lateness warnings are enabled.
func (l *loopLimiter) Warn() bool {
	return l.warn
}

// SetWarn enables or disables lateness warnings.
func (l *loopLimiter) SetWarn(warn bool) {
	l.warn = warn
}

// SetFrequency changes the desired loop frequency. The pending deadline is
// shifted by the period delta so that it still falls one (new) period after
// the last completed cycle.
func (l *loopLimiter) SetFrequency(frequency Frequency) {
	period, err := PeriodFor("loop", frequency)
	if err != nil {
		panic("loop: SetFrequency: " + err.Error())
	}

	l.nextTick = l.nextTick.Add(period - l.period)
	l.period = period
	l.freq = frequency
}
