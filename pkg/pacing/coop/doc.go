/*
Package coop provides a cooperative loop-frequency regulator.

It paces a task that shares its scheduler with other work and therefore must
not block for a whole period at once. A pacing call waits in short
cancellable slices, re-checking the deadline after each one, and only
busy-waits inside the final block duration (500µs by default) to trim the
wake-up granularity of timers. The two-phase strategy keeps the measured
period within about 2% of the desired one; a single coarse wait typically
shows 8-12% error.

There is a difference between a rate limiter and a synchronous clock, which
lies in the behavior when skipping cycles. A rate limiter does nothing if
there is no time left, as the caller's rate does not need to be limited. A
synchronous clock would wait for the next tick, which is by definition in the
future, so it would always wait for a non-zero duration. This package (like
the loop package) implements the former: after an overrun the next deadline
is rebased from the completion time.

Construction requires the owning task to be alive, represented by its
context:

	limiter, err := coop.New(ctx, 400) // 400 Hz
	if err != nil {
		return err // e.g. errors.ErrNoActiveTask
	}

	for {
		step()
		if err := limiter.Sleep(ctx); err != nil {
			return err // task canceled while suspended
		}
	}

Cancellation while suspended is a no-op from the limiter's perspective: the
call returns ctx.Err() and the deadline, slack and measured period keep their
pre-call values.

Beyond the blocking limiter's state, a cooperative limiter tracks
MeasuredPeriod, the wall-clock duration between the ends of consecutive
pacing calls, which is the quantity the block duration exists to keep close
to Period.

A limiter instance paces exactly one task; concurrent pacing calls on a
shared instance are a caller error.
*/
package coop
