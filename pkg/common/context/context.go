// Package context provides task-context helpers shared by the pacing
// packages.
package context

import (
	"context"
	"fmt"

	lperrors "github.com/vnykmshr/looppace/pkg/common/errors"
)

// Active reports whether ctx represents a live task. A nil context or one
// that is already done yields ErrNoActiveTask; the cooperative limiter uses
// this as its construction precondition.
func Active(ctx context.Context) error {
	if ctx == nil {
		return lperrors.ErrNoActiveTask
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", lperrors.ErrNoActiveTask, err)
	}
	return nil
}

// IsCanceled returns true if the context has been canceled or timed out.
func IsCanceled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// IsTimedOut returns true if the context was canceled due to a deadline.
func IsTimedOut(ctx context.Context) bool {
	return ctx.Err() == context.DeadlineExceeded
}
