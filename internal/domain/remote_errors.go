package domain

import (
	"fmt"
	"time"
)

// RateLimitedError signals upstream throttling. It trips the circuit
// breaker faster than generic failures.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited by remote api, retry after %s", e.RetryAfter)
	}
	return "rate limited by remote api"
}

// TransientError covers network failures and upstream 5xx responses;
// the next scheduled run retries.
type TransientError struct {
	Reason string
	Err    error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient remote failure: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("transient remote failure: %s", e.Reason)
}

func (e *TransientError) Unwrap() error { return e.Err }

// FatalError covers auth/config failures that are surfaced
// immediately and never retried automatically.
type FatalError struct {
	Reason string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal remote failure: %s", e.Reason)
}
