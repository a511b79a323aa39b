// Package metrics provides Prometheus instrumentation for looppace components.
//
// This package enables monitoring of loop pacing behavior: how many cycles a
// limiter completed, how often the caller missed its deadline, how much slack
// was left when each pacing call started, and how close the measured period
// tracks the desired one.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Blocking limiter with metrics
//	limiter, _ := loop.NewWithMetrics(100, "control_loop")
//
//	// Cooperative limiter with metrics
//	limiter, _ := coop.NewWithMetrics(ctx, 400, "sim_step")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	limiter, _ := loop.NewWithConfigAndMetrics(
//		loop.Config{Frequency: 100},
//		"control_loop",
//		config,
//	)
//
// # Available Metrics
//
// ## Pacing Metrics
//
//   - looppace_pacing_cycles_total: Total number of completed pacing cycles
//   - looppace_pacing_late_cycles_total: Total number of cycles that missed their deadline
//   - looppace_pacing_slack_seconds: Signed slack at the start of each pacing call
//   - looppace_pacing_wait_duration_seconds: Time spent waiting inside pacing calls
//   - looppace_pacing_measured_period_seconds: Wall-clock duration between consecutive cycles
//
// ## Runner Metrics
//
//   - looppace_runner_iterations_total: Total number of loop iterations executed
//   - looppace_runner_errors_total: Total number of iterations that returned an error
//   - looppace_runner_running: Whether the runner loop is currently running
//
// # Labels
//
//   - limiter_type: "loop" or "coop"
//   - limiter_name: User-provided name for the limiter instance
//   - runner_name: User-provided name for the runner instance
//
// # Runtime Control
//
// Components implementing the Instrumentable interface support runtime control:
//
//	limiter, _ := loop.NewWithMetrics(100, "control_loop")
//	limiter.DisableMetrics()            // Stop collecting metrics
//	limiter.EnableMetrics(config)       // Re-enable with new config
//	enabled := limiter.MetricsEnabled() // Check current state
package metrics
