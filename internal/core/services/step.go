package services

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrStepTimeout marks a step that did not finish within its timeout.
var ErrStepTimeout = errors.New("step timed out")

// runStep executes fn under a per-step timeout. A step that overruns its
// deadline fails with ErrStepTimeout even if fn reported nothing.
func runStep[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return fn(ctx)
	}
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := fn(stepCtx)
	if err != nil && errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
		var zero T
		return zero, fmt.Errorf("%w after %s: %w", ErrStepTimeout, timeout, err)
	}
	return res, err
}
