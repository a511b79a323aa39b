package loop

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/looppace/pkg/metrics"
)

const limiterType = "loop"

// MetricsLimiter wraps a Limiter with Prometheus metrics collection.
type MetricsLimiter struct {
	limiter  Limiter
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a new blocking rate limiter with metrics enabled.
func NewWithMetrics(frequency Frequency, name string) (Limiter, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{Frequency: frequency}, name, config)
}

// NewWithConfigAndMetrics creates a new blocking rate limiter with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (Limiter, error) {
	baseLimiter, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}

	if !metricsConfig.Enabled {
		return baseLimiter, nil
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	return &MetricsLimiter{
		limiter:  baseLimiter,
		name:     name,
		registry: registry,
		enabled:  true,
	}, nil
}

// Remaining returns the time remaining until the next expected tick.
func (ml *MetricsLimiter) Remaining() time.Duration {
	return ml.limiter.Remaining()
}

// Sleep blocks for the duration required to regulate the loop frequency.
func (ml *MetricsLimiter) Sleep() {
	_ = ml.Wait(context.Background())
}

// Wait blocks for the duration required to regulate the loop frequency,
// recording cycle, slack and wait-time metrics for completed calls.
func (ml *MetricsLimiter) Wait(ctx context.Context) error {
	start := time.Now()

	err := ml.limiter.Wait(ctx)
	if err != nil {
		// Canceled waits complete no cycle and leave no slack to record.
		return err
	}

	if ml.enabled {
		slack := ml.limiter.Slack()
		ml.registry.PaceCycles.WithLabelValues(limiterType, ml.name).Inc()
		ml.registry.PaceSlack.WithLabelValues(limiterType, ml.name).Observe(slack.Seconds())
		ml.registry.PaceWaitTime.WithLabelValues(limiterType, ml.name).Observe(time.Since(start).Seconds())
		if slack < 0 {
			ml.registry.PaceLateCycles.WithLabelValues(limiterType, ml.name).Inc()
		}
	}

	return nil
}

// Period returns the desired period between ticks.
func (ml *MetricsLimiter) Period() time.Duration {
	return ml.limiter.Period()
}

// Frequency returns the desired loop frequency in hertz.
func (ml *MetricsLimiter) Frequency() Frequency {
	return ml.limiter.Frequency()
}

// NextTick returns the absolute time of the next expected tick.
func (ml *MetricsLimiter) NextTick() time.Time {
	return ml.limiter.NextTick()
}

// Slack returns the slack measured at the start of the last pacing call.
func (ml *MetricsLimiter) Slack() time.Duration {
	return ml.limiter.Slack()
}

// Name returns the name used in log output.
func (ml *MetricsLimiter) Name() string {
	return ml.limiter.Name()
}

// Warn returns whether lateness warnings are enabled.
func (ml *MetricsLimiter) Warn() bool {
	return ml.limiter.Warn()
}

// SetWarn enables or disables lateness warnings.
func (ml *MetricsLimiter) SetWarn(warn bool) {
	ml.limiter.SetWarn(warn)
}

// SetFrequency changes the desired loop frequency.
func (ml *MetricsLimiter) SetFrequency(frequency Frequency) {
	ml.limiter.SetFrequency(frequency)
}

// EnableMetrics enables metrics collection.
func (ml *MetricsLimiter) EnableMetrics(config metrics.Config) error {
	ml.enabled = config.Enabled

	if config.Registry != nil {
		ml.registry = metrics.NewRegistry(config.Registry)
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (ml *MetricsLimiter) DisableMetrics() {
	ml.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (ml *MetricsLimiter) MetricsEnabled() bool {
	return ml.enabled
}
