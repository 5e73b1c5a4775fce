package sync

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// CallGate bounds concurrent remote calls and spaces them out. Every
// call first takes a worker slot (FIFO on the buffered channel), then
// waits on the shared rate limiter, then consults the shared breaker.
// When one caller trips the breaker, the siblings' next calls are
// rejected before they hit the wire.
type CallGate struct {
	breaker *CircuitBreaker
	limiter *rate.Limiter
	slots   chan struct{}
	onCall  func(operation, outcome string, durationSeconds float64)
}

func NewCallGate(workers int, interCallDelay time.Duration, breaker *CircuitBreaker) *CallGate {
	if workers <= 0 {
		workers = 1
	}
	limit := rate.Inf
	if interCallDelay > 0 {
		limit = rate.Every(interCallDelay)
	}
	return &CallGate{
		breaker: breaker,
		limiter: rate.NewLimiter(limit, 1),
		slots:   make(chan struct{}, workers),
	}
}

// OnCall registers an observer invoked after every call that reached
// the wire.
func (g *CallGate) OnCall(fn func(operation, outcome string, durationSeconds float64)) {
	g.onCall = fn
}

// Do runs one remote call through the gate. The breaker sees every
// outcome; typed errors from the call propagate unchanged.
func (g *CallGate) Do(ctx context.Context, operation string, call func(ctx context.Context) error) error {
	select {
	case g.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-g.slots }()

	if err := g.breaker.Allow(); err != nil {
		return err
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	started := time.Now()
	err := call(ctx)
	g.observe(operation, err, time.Since(started))
	if err != nil {
		g.breaker.RecordFailure(err)
		return err
	}
	g.breaker.RecordSuccess()
	return nil
}

// observe reports only calls that reached the wire; gate rejections
// are not remote calls.
func (g *CallGate) observe(operation string, err error, elapsed time.Duration) {
	if g.onCall == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = errorType(err)
	}
	g.onCall(operation, outcome, elapsed.Seconds())
}
