package sync

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

const (
	breakerClosed = iota
	breakerOpen
)

// CircuitBreaker guards the remote commerce API. It is shared by every
// caller in the process: consecutive failures anywhere open it for
// everyone. Rate-limit responses trip it on a lower threshold and hold
// it open longer than generic failures.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold   int
	rateLimitThreshold int
	failureCooldown    time.Duration
	rateLimitCooldown  time.Duration

	state          int
	failureCount   int
	rateLimitCount int
	openedAt       time.Time
	cooldown       time.Duration

	onTrip func(reason string)
}

func NewCircuitBreaker(failureThreshold, rateLimitThreshold int, failureCooldown, rateLimitCooldown time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold:   failureThreshold,
		rateLimitThreshold: rateLimitThreshold,
		failureCooldown:    failureCooldown,
		rateLimitCooldown:  rateLimitCooldown,
	}
}

// OnTrip registers a callback invoked each time the breaker opens.
func (b *CircuitBreaker) OnTrip(fn func(reason string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onTrip = fn
}

// Allow reports whether a remote call may proceed. While open it
// returns ErrCircuitOpen annotated with the remaining cooldown; once
// the cooldown elapses the breaker closes and calls flow again.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != breakerOpen {
		return nil
	}

	remaining := b.cooldown - time.Since(b.openedAt)
	if remaining > 0 {
		return fmt.Errorf("%w, retry in %s", domain.ErrCircuitOpen, remaining.Round(time.Second))
	}

	b.state = breakerClosed
	b.failureCount = 0
	b.rateLimitCount = 0
	return nil
}

// RecordSuccess resets both failure counters immediately.
func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failureCount = 0
	b.rateLimitCount = 0
}

// RecordFailure counts the failure against the matching threshold and
// opens the breaker when one is crossed. Fatal errors do not count:
// retrying a bad token would never succeed, but it also says nothing
// about upstream health.
func (b *CircuitBreaker) RecordFailure(err error) {
	var rateLimited *domain.RateLimitedError
	var fatal *domain.FatalError

	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case errors.As(err, &fatal):
		return
	case errors.As(err, &rateLimited):
		b.rateLimitCount++
		if b.rateLimitCount >= b.rateLimitThreshold {
			b.trip("rate_limit", b.rateLimitCooldown)
		}
	default:
		b.failureCount++
		if b.failureCount >= b.failureThreshold {
			b.trip("failure", b.failureCooldown)
		}
	}
}

func (b *CircuitBreaker) trip(reason string, cooldown time.Duration) {
	b.state = breakerOpen
	b.openedAt = time.Now()
	b.cooldown = cooldown
	b.failureCount = 0
	b.rateLimitCount = 0
	if b.onTrip != nil {
		b.onTrip(reason)
	}
}

// Open reports the current state without side effects.
func (b *CircuitBreaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == breakerOpen && time.Since(b.openedAt) < b.cooldown
}
