/*
Package scheduling provides execution primitives built on the pacing limiters.

  - runner: drives a callback at a fixed frequency on a dedicated goroutine

A Runner wraps a blocking limiter with lifecycle management:

	r, _ := runner.New(func(ctx context.Context) error {
		return poll(ctx)
	}, runner.Config{Frequency: 100})

	_ = r.Start()
	defer func() { <-r.Stop() }()

The runner components are safe for concurrent control; the limiters they
wrap remain single-owner.
*/
package scheduling
