package coop_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vnykmshr/looppace/pkg/pacing/coop"
	"github.com/vnykmshr/looppace/pkg/pacing/loop"
)

// Example demonstrates pacing a cooperative task
func Example() {
	ctx := context.Background()

	// Regulate a simulation step at 400 Hz
	limiter, err := coop.New(ctx, 400)
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		// ... one simulation step ...
		if err := limiter.Sleep(ctx); err != nil {
			log.Fatal(err) // task canceled
		}
	}

	fmt.Printf("period: %v\n", limiter.Period())

	// Output: period: 2.5ms
}

// Example_noActiveTask demonstrates the construction precondition
func Example_noActiveTask() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // the owning task is already gone

	_, err := coop.New(ctx, 100)
	fmt.Println(err)

	// Output: no active task context: context canceled
}

// Example_configuration demonstrates tuning the block duration
func Example_configuration() {
	ctx := context.Background()

	limiter, err := coop.NewWithConfig(ctx, coop.Config{
		Frequency:     loop.Every(5 * time.Millisecond), // 200 Hz
		Name:          "physics step",
		BlockDuration: time.Millisecond, // spin for the final 1ms
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("name: %s\n", limiter.Name())
	fmt.Printf("period: %v\n", limiter.Period())

	// Output:
	// name: physics step
	// period: 5ms
}

// Example_measuredPeriod demonstrates period tracking
func Example_measuredPeriod() {
	ctx := context.Background()

	limiter, err := coop.New(ctx, 100)
	if err != nil {
		log.Fatal(err)
	}

	_ = limiter.Sleep(ctx)
	_ = limiter.Sleep(ctx)

	// With no work between calls the measured period tracks the desired
	// 10ms closely thanks to the near-deadline busy-wait.
	measured := limiter.MeasuredPeriod()
	fmt.Printf("within 2ms of target: %v\n", measured > 8*time.Millisecond && measured < 12*time.Millisecond)

	// Output: within 2ms of target: true
}
