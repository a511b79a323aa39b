/*
Package pacing groups the loop-frequency regulators.

Two variants cover the two ways a loop can wait:

  - loop: blocking limiter for synchronous loops; one Sleep call per cycle
    blocks the goroutine until the next tick.
  - coop: cooperative limiter for tasks sharing a scheduler; pacing calls
    yield in short cancellable slices and busy-wait only in the final block
    duration before the tick.

Both variants keep the same deadline discipline: the next tick is always one
period after the last completed pacing call, never derived from a stale
deadline, so an overloaded loop degrades to a lower rate instead of
accumulating backlog.
*/
package pacing
