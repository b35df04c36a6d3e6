package crawl

import (
	"context"
	"time"
)

// SearchFunc is the signature for a single search attempt.
type SearchFunc[T any] func(ctx context.Context) (T, error)

// RetryFunc is called before each retry with the attempt number about to
// run and the error of the previous attempt.
type RetryFunc func(attempt int, err error)

// DefaultRetryDelays returns the backoff delays for search retries: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// WithRetry calls fn until it succeeds, retrying once per delay with the
// given backoff. The onRetry function, if provided, is called for each
// retry attempt.
func WithRetry[T any](ctx context.Context, fn SearchFunc[T], onRetry RetryFunc, delays []time.Duration) (T, error) {
	var zero T
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return zero, lastErr
}
