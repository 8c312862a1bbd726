package quotes

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrBreakerOpen is returned while the provider is being backed off.
var ErrBreakerOpen = errors.New("quotes: provider circuit open")

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

// Breaker backs off the upstream provider after consecutive failures. While
// open, calls fail immediately with ErrBreakerOpen; after the reset window a
// single probe call is let through.
type Breaker struct {
	mu           sync.Mutex
	state        breakerState
	failureCount int
	threshold    int
	resetTimeout time.Duration
	lastFailure  time.Time
}

// NewBreaker creates a breaker that opens after threshold consecutive
// failures and probes again after timeout.
func NewBreaker(threshold int, timeout time.Duration) *Breaker {
	return &Breaker{
		threshold:    threshold,
		resetTimeout: timeout,
		state:        breakerClosed,
	}
}

// Execute runs action under the breaker.
func (b *Breaker) Execute(action func() error) error {
	b.mu.Lock()
	if b.state == breakerOpen {
		if time.Since(b.lastFailure) > b.resetTimeout {
			slog.Debug("Provider circuit transitioning to half-open")
			b.state = breakerHalfOpen
		} else {
			b.mu.Unlock()
			return ErrBreakerOpen
		}
	}
	b.mu.Unlock()

	err := action()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failureCount++
		b.lastFailure = time.Now()
		if b.failureCount >= b.threshold && b.state != breakerOpen {
			slog.Warn("Provider failure threshold reached, circuit open",
				"failures", b.failureCount)
			b.state = breakerOpen
		}
		return err
	}

	if b.state == breakerHalfOpen {
		slog.Info("Provider probe succeeded, circuit closed")
	}
	b.state = breakerClosed
	b.failureCount = 0
	return nil
}
