// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	t.Run("immediate success", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), 3, time.Millisecond, time.Millisecond, func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("Retry() error = %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), 3, time.Millisecond, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Retry() error = %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := Retry(context.Background(), 3, time.Millisecond, time.Millisecond, func() error {
			calls++
			return boom
		})
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
		if !errors.Is(err, boom) {
			t.Errorf("Expected wrapped original error, got %v", err)
		}
		if !strings.Contains(err.Error(), "failed after 3 attempts") {
			t.Errorf("Error text = %q", err.Error())
		}
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()
		err := Retry(ctx, 5, time.Hour, time.Hour, func() error {
			calls++
			return errors.New("always fails")
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1 (no retry after cancel)", calls)
		}
	})
}
