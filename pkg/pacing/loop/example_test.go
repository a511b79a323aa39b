package loop_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vnykmshr/looppace/pkg/pacing/loop"
)

// Example demonstrates basic pacing of a synchronous loop
func Example() {
	// Regulate a polling loop at 100 Hz
	limiter, err := loop.New(100)
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		// ... one cycle of work ...
		limiter.Sleep() // block until the next 10ms tick
	}

	fmt.Printf("period: %v\n", limiter.Period())

	// Output: period: 10ms
}

// Example_every demonstrates constructing a limiter from a period
func Example_every() {
	// 25ms between ticks is a 40 Hz loop
	limiter, err := loop.New(loop.Every(25 * time.Millisecond))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("frequency: %.0f Hz\n", float64(limiter.Frequency()))
	fmt.Printf("period: %v\n", limiter.Period())

	// Output:
	// frequency: 40 Hz
	// period: 25ms
}

// Example_configuration demonstrates advanced configuration
func Example_configuration() {
	limiter, err := loop.NewWithConfig(loop.Config{
		Frequency: 500,
		Name:      "sensor poller",
		Quiet:     true, // no lateness warnings
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("name: %s\n", limiter.Name())
	fmt.Printf("warnings: %v\n", limiter.Warn())
	fmt.Printf("period: %v\n", limiter.Period())

	// Output:
	// name: sensor poller
	// warnings: false
	// period: 2ms
}

// Example_wait demonstrates cancellable pacing
func Example_wait() {
	limiter, err := loop.New(200)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // shut the loop down immediately

	if err := limiter.Wait(ctx); err != nil {
		fmt.Printf("pacing interrupted: %v\n", err)
	}

	// Output: pacing interrupted: context canceled
}

// Example_inspection demonstrates read-only state accessors
func Example_inspection() {
	limiter, err := loop.New(50)
	if err != nil {
		log.Fatal(err)
	}

	limiter.Sleep()

	// Slack was positive: the whole period remained when Sleep started.
	fmt.Printf("slack positive: %v\n", limiter.Slack() > 0)
	fmt.Printf("remaining at most a period: %v\n", limiter.Remaining() <= limiter.Period())

	// Output:
	// slack positive: true
	// remaining at most a period: true
}

// Example_invalidFrequency demonstrates construction validation
func Example_invalidFrequency() {
	_, err := loop.New(0)
	fmt.Println(err)

	// Output: loop: invalid frequency=0 (must be positive) - value must be greater than 0
}
