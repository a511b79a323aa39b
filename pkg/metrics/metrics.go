// Package metrics provides Prometheus instrumentation for looppace components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for looppace components.
type Registry struct {
	// Pacing Metrics
	PaceCycles         *prometheus.CounterVec
	PaceLateCycles     *prometheus.CounterVec
	PaceSlack          *prometheus.HistogramVec
	PaceWaitTime       *prometheus.HistogramVec
	PaceMeasuredPeriod *prometheus.HistogramVec

	// Runner Metrics
	RunnerIterations *prometheus.CounterVec
	RunnerErrors     *prometheus.CounterVec
	RunnerRunning    *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by looppace components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// slackBuckets cover both overruns (negative slack) and time to spare.
var slackBuckets = []float64{
	-0.1, -0.01, -0.001, -0.0001, 0, 0.0001, 0.001, 0.01, 0.1, 1,
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Pacing Metrics
		PaceCycles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "looppace",
				Subsystem: "pacing",
				Name:      "cycles_total",
				Help:      "Total number of completed pacing cycles",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		PaceLateCycles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "looppace",
				Subsystem: "pacing",
				Name:      "late_cycles_total",
				Help:      "Total number of cycles that missed their deadline",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		PaceSlack: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "looppace",
				Subsystem: "pacing",
				Name:      "slack_seconds",
				Help:      "Signed time remaining until the deadline at the start of each pacing call",
				Buckets:   slackBuckets,
			},
			[]string{"limiter_type", "limiter_name"},
		),

		PaceWaitTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "looppace",
				Subsystem: "pacing",
				Name:      "wait_duration_seconds",
				Help:      "Time spent waiting inside pacing calls",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"limiter_type", "limiter_name"},
		),

		PaceMeasuredPeriod: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "looppace",
				Subsystem: "pacing",
				Name:      "measured_period_seconds",
				Help:      "Wall-clock duration between ends of consecutive pacing calls",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
			},
			[]string{"limiter_type", "limiter_name"},
		),

		// Runner Metrics
		RunnerIterations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "looppace",
				Subsystem: "runner",
				Name:      "iterations_total",
				Help:      "Total number of loop iterations executed",
			},
			[]string{"runner_name"},
		),

		RunnerErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "looppace",
				Subsystem: "runner",
				Name:      "errors_total",
				Help:      "Total number of loop iterations that returned an error",
			},
			[]string{"runner_name"},
		),

		RunnerRunning: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "looppace",
				Subsystem: "runner",
				Name:      "running",
				Help:      "Whether the runner loop is currently running (1) or stopped (0)",
			},
			[]string{"runner_name"},
		),
	}
}
