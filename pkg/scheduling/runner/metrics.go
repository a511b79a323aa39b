package runner

import (
	"github.com/prometheus/client_golang/prometheus"

	lperrors "github.com/vnykmshr/looppace/pkg/common/errors"
	"github.com/vnykmshr/looppace/pkg/metrics"
)

// NewWithMetrics creates a new Runner with metrics enabled.
func NewWithMetrics(fn Func, config Config, name string) (Runner, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	metricsConfig := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(fn, config, name, metricsConfig)
}

// NewWithConfigAndMetrics creates a new Runner with custom config and metrics.
func NewWithConfigAndMetrics(fn Func, config Config, name string, metricsConfig metrics.Config) (Runner, error) {
	if name != "" {
		config.Name = name
	}

	base, err := New(fn, config)
	if err != nil {
		return nil, err
	}

	r := base.(*loopRunner)
	if err := r.EnableMetrics(metricsConfig); err != nil {
		return nil, err
	}
	return r, nil
}

// EnableMetrics enables metrics collection. It must not be called while the
// runner is running.
func (r *loopRunner) EnableMetrics(config metrics.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return lperrors.ErrAlreadyRunning
	}

	r.metricsEnabled = config.Enabled
	if config.Registry != nil {
		r.registry = metrics.NewRegistry(config.Registry)
	} else if r.registry == nil {
		r.registry = metrics.DefaultRegistry
	}
	return nil
}

// DisableMetrics disables metrics collection.
func (r *loopRunner) DisableMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metricsEnabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (r *loopRunner) MetricsEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metricsEnabled
}
