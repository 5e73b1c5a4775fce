package domain

import "errors"

var (
	ErrSyncInProgress     = errors.New("sync already in progress")
	ErrCircuitOpen        = errors.New("circuit breaker open")
	ErrOrderNotFound      = errors.New("order not found")
	ErrFeeConfigNotFound  = errors.New("fee configuration not found")
	ErrShippingSourceDown = errors.New("shipping cost source unavailable")
)
