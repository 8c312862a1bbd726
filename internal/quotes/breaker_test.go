package quotes

import (
	"errors"
	"testing"
	"time"
)

func TestBreakerStateTransitions(t *testing.T) {
	threshold := 2
	resetTimeout := 50 * time.Millisecond
	b := NewBreaker(threshold, resetTimeout)

	failAction := func() error { return errors.New("service error") }
	successAction := func() error { return nil }

	if b.state != breakerClosed {
		t.Fatalf("initial state should be closed, got %v", b.state)
	}

	// Fail up to the threshold.
	for i := 0; i < threshold; i++ {
		if err := b.Execute(failAction); err == nil {
			t.Error("expected error from failing action")
		}
	}

	// The breaker opens on the failure that reaches the threshold, so the
	// next call is rejected without running the action.
	if err := b.Execute(successAction); !errors.Is(err, ErrBreakerOpen) {
		t.Errorf("expected ErrBreakerOpen, got %v", err)
	}
	if b.state != breakerOpen {
		t.Errorf("state should be open, got %v", b.state)
	}

	// After the reset window, one probe call goes through.
	time.Sleep(resetTimeout * 2)
	if err := b.Execute(successAction); err != nil {
		t.Errorf("expected half-open probe to succeed, got %v", err)
	}
	if b.state != breakerClosed {
		t.Errorf("state should be closed after successful probe, got %v", b.state)
	}

	// Counters reset after closing; a single failure must not reopen.
	b.Execute(failAction)
	if b.state == breakerOpen {
		t.Error("a single failure after reset should not reopen the circuit")
	}
}
