// ABOUTME: Tests for retry backoff calculation and the Do helper
// ABOUTME: Verifies exponential growth, caps, and context cancellation

package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff_ZeroAttempt(t *testing.T) {
	if got := CalculateBackoff(time.Second, 0); got != 0 {
		t.Errorf("CalculateBackoff(1s, 0) = %v, want 0", got)
	}
}

func TestCalculateBackoff_Grows(t *testing.T) {
	base := 100 * time.Millisecond

	// With ±25% jitter, attempt 1 is in [150ms, 250ms] and attempt 3 in [600ms, 1000ms]
	b1 := CalculateBackoff(base, 1)
	if b1 < 150*time.Millisecond || b1 > 250*time.Millisecond {
		t.Errorf("attempt 1 backoff = %v, want within [150ms, 250ms]", b1)
	}
	b3 := CalculateBackoff(base, 3)
	if b3 < 600*time.Millisecond || b3 > time.Second {
		t.Errorf("attempt 3 backoff = %v, want within [600ms, 1s]", b3)
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	got := CalculateBackoff(2*time.Second, 30)
	// Cap is 30s before jitter, so the result stays under 37.5s
	if got > 38*time.Second {
		t.Errorf("backoff = %v, expected capped value", got)
	}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 3, time.Millisecond, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_ReturnsLastError(t *testing.T) {
	lastErr := errors.New("still failing")
	err := Do(context.Background(), 2, time.Millisecond, func(ctx context.Context) error {
		return lastErr
	})
	if !errors.Is(err, lastErr) {
		t.Errorf("Do() error = %v, want %v", err, lastErr)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, 5, 10*time.Second, func(ctx context.Context) error {
		return errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
}
