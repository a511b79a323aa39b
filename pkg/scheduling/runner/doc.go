/*
Package runner drives a callback at a fixed frequency.

A Runner owns a blocking loop.Limiter and runs one goroutine that alternates
between the callback and a pacing call until stopped:

	r, err := runner.New(func(ctx context.Context) error {
		return pollSensors(ctx)
	}, runner.Config{Frequency: 100, Name: "sensor poller"})
	if err != nil {
		log.Fatal(err)
	}

	if err := r.Start(); err != nil {
		log.Fatal(err)
	}
	defer func() { <-r.Stop() }()

Callback errors never stop the loop: they are counted, kept in LastError and
logged through a golang.org/x/time/rate throttle (one line per second by
default) so a failing callback at loop frequency does not flood the log.

The limiter's lateness warnings apply as usual: a callback that regularly
overruns the period produces "late by" warnings, and the loop settles at
whatever rate the callback allows instead of accumulating backlog.

Unlike the limiters, a Runner is safe to control from multiple goroutines:
Start, Stop and the accessors are synchronized. The callback itself runs on
the single loop goroutine.
*/
package runner
