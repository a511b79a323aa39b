/*
Package loop provides a blocking loop-frequency regulator for synchronous loops.

A limiter paces repeated work (control loops, polling loops, simulation steps)
at a target frequency: one Sleep call per cycle blocks for whatever time
remains until the next tick.

Basic usage:

	limiter, err := loop.New(100) // 100 Hz, 10ms period
	if err != nil {
		log.Fatal(err)
	}

	for {
		step()          // do one cycle of work
		limiter.Sleep() // block until the next 10ms tick
	}

Deadline handling:

The limiter assumes the monotonic clock never jumps. Each completed pacing
call sets the next deadline to the completion time plus the period, so an
overrun never accumulates backlog: a loop that falls behind silently runs
below the target rate instead of racing to catch up. When a cycle misses its
deadline by more than a tenth of the period, the limiter logs a single
warning line such as:

	rate limiter is late by 3.2 [ms]

Warnings go to the configured slog.Logger and can be disabled with
Config.Quiet or SetWarn(false).

Context support:

Wait is Sleep with cancellation. A canceled Wait returns ctx.Err() and leaves
the limiter exactly as it was before the call:

	if err := limiter.Wait(ctx); err != nil {
		return err // loop shutting down
	}

State inspection:

	limiter.Remaining() // time until the next tick, side-effect free
	limiter.Slack()     // slack at the start of the last pacing call
	limiter.Period()    // desired period between ticks
	limiter.NextTick()  // absolute time of the next tick

Ownership:

A limiter instance paces exactly one loop. It keeps no lock; calling its
methods from multiple goroutines concurrently is a caller error.

For cooperative callers that must not block between yields, see the coop
package.
*/
package loop
