package sync

import (
	"errors"
	"testing"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_OpensOnGenericThreshold(t *testing.T) {
	breaker := NewCircuitBreaker(5, 3, time.Minute, time.Minute)

	for i := 0; i < 4; i++ {
		breaker.RecordFailure(errors.New("boom"))
		require.NoError(t, breaker.Allow())
	}

	breaker.RecordFailure(errors.New("boom"))
	err := breaker.Allow()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCircuitOpen))
}

func TestCircuitBreaker_OpensFasterOnRateLimits(t *testing.T) {
	breaker := NewCircuitBreaker(5, 3, time.Minute, time.Minute)

	breaker.RecordFailure(&domain.RateLimitedError{})
	breaker.RecordFailure(&domain.RateLimitedError{})
	require.NoError(t, breaker.Allow())

	breaker.RecordFailure(&domain.RateLimitedError{})
	assert.ErrorIs(t, breaker.Allow(), domain.ErrCircuitOpen)
}

func TestCircuitBreaker_SuccessResetsCounters(t *testing.T) {
	breaker := NewCircuitBreaker(3, 3, time.Minute, time.Minute)

	breaker.RecordFailure(errors.New("boom"))
	breaker.RecordFailure(errors.New("boom"))
	breaker.RecordSuccess()
	breaker.RecordFailure(errors.New("boom"))
	breaker.RecordFailure(errors.New("boom"))

	assert.NoError(t, breaker.Allow())
}

func TestCircuitBreaker_FatalDoesNotCount(t *testing.T) {
	breaker := NewCircuitBreaker(2, 2, time.Minute, time.Minute)

	breaker.RecordFailure(&domain.FatalError{Reason: "bad token"})
	breaker.RecordFailure(&domain.FatalError{Reason: "bad token"})
	breaker.RecordFailure(&domain.FatalError{Reason: "bad token"})

	assert.NoError(t, breaker.Allow())
}

func TestCircuitBreaker_ClosesAfterCooldown(t *testing.T) {
	breaker := NewCircuitBreaker(1, 1, 30*time.Millisecond, time.Minute)

	breaker.RecordFailure(errors.New("boom"))
	require.ErrorIs(t, breaker.Allow(), domain.ErrCircuitOpen)

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, breaker.Allow())
}

func TestCircuitBreaker_RateLimitCooldownIsLonger(t *testing.T) {
	breaker := NewCircuitBreaker(5, 1, 10*time.Millisecond, time.Hour)

	breaker.RecordFailure(&domain.RateLimitedError{RetryAfter: 2 * time.Second})
	time.Sleep(30 * time.Millisecond)

	// The rate-limit cooldown applies, not the generic one.
	assert.ErrorIs(t, breaker.Allow(), domain.ErrCircuitOpen)
}

func TestCircuitBreaker_OnTripReportsReason(t *testing.T) {
	breaker := NewCircuitBreaker(5, 1, time.Minute, time.Minute)

	var reason string
	breaker.OnTrip(func(r string) { reason = r })

	breaker.RecordFailure(&domain.RateLimitedError{})
	assert.Equal(t, "rate_limit", reason)
}
