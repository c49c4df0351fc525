// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Retry runs fn up to attempts times with exponential backoff
// (baseDelay, 2*baseDelay, 4*baseDelay, ... capped at maxDelay). The
// last error is returned once attempts are exhausted; a cancelled
// context aborts the wait.
func Retry(ctx context.Context, attempts int, baseDelay, maxDelay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt == attempts-1 {
			break
		}

		delay := baseDelay << uint(attempt)
		if delay > maxDelay {
			delay = maxDelay
		}
		slog.Warn("retryable operation failed",
			"attempt", attempt+1,
			"max_attempts", attempts,
			"retry_in", delay,
			"error", lastErr,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
