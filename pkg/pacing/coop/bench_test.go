package coop

import (
	"context"
	"testing"
	"time"

	"github.com/vnykmshr/looppace/internal/testutil"
)

// BenchmarkRemaining measures the cost of the pure state read
func BenchmarkRemaining(b *testing.B) {
	limiter, err := New(context.Background(), 1000)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		limiter.Remaining()
	}
}

// BenchmarkSleepOverrun measures a pacing call with no time left to wait
func BenchmarkSleepOverrun(b *testing.B) {
	ctx := context.Background()
	clock := testutil.NewMockClock(time.Now())
	limiter, err := NewWithConfig(ctx, Config{
		Frequency: 1000,
		Quiet:     true,
		Clock:     clock,
	})
	if err != nil {
		b.Fatal(err)
	}

	period := limiter.Period()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		clock.Advance(2 * period)
		if err := limiter.Sleep(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSleepPaced measures real paced cycles at a high frequency
func BenchmarkSleepPaced(b *testing.B) {
	ctx := context.Background()
	limiter, err := NewWithConfig(ctx, Config{Frequency: 100000, Quiet: true})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := limiter.Sleep(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
