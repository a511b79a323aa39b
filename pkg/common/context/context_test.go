package context

import (
	"context"
	"errors"
	"testing"
	"time"

	lperrors "github.com/vnykmshr/looppace/pkg/common/errors"
)

func TestActive(t *testing.T) {
	if err := Active(context.Background()); err != nil {
		t.Errorf("background context should be active, got %v", err)
	}

	if err := Active(nil); !errors.Is(err, lperrors.ErrNoActiveTask) { //nolint:staticcheck
		t.Errorf("nil context should yield ErrNoActiveTask, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Active(ctx)
	if !errors.Is(err, lperrors.ErrNoActiveTask) {
		t.Errorf("canceled context should yield ErrNoActiveTask, got %v", err)
	}
	if err.Error() != "no active task context: context canceled" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestIsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	if IsCanceled(ctx) {
		t.Error("fresh context should not be canceled")
	}
	cancel()
	if !IsCanceled(ctx) {
		t.Error("canceled context should report canceled")
	}
}

func TestIsTimedOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	if !IsTimedOut(ctx) {
		t.Error("expired context should report timed out")
	}

	canceled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	if IsTimedOut(canceled) {
		t.Error("plain cancellation is not a timeout")
	}
}
