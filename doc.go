/*
Package looppace provides loop-frequency regulation for Go control loops.

Pacing (pkg/pacing):
  - loop: Blocking limiter; one Sleep per cycle blocks until the next tick
  - coop: Cooperative limiter; yields in short cancellable slices, then
    busy-waits through the final block duration for precise release

Scheduling (pkg/scheduling):
  - runner: Drives a callback at a fixed frequency on its own goroutine

Both limiters rebase the next tick from the completion of each pacing call,
so an overloaded loop settles at whatever rate it can sustain instead of
accumulating backlog. Cycles that run late by more than a tenth of the
period are logged.

Example usage:

	import (
		"context"

		"github.com/vnykmshr/looppace/pkg/pacing/loop"
	)

	limiter, _ := loop.New(400) // 400 Hz
	for {
		step()
		limiter.Sleep()
	}

For loops sharing a scheduler, the cooperative variant yields instead of
blocking:

	limiter, _ := coop.New(ctx, 400)
	for {
		step()
		if err := limiter.Sleep(ctx); err != nil {
			return err // canceled
		}
	}
*/
package looppace
