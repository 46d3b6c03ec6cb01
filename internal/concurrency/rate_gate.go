package concurrency

import (
	"context"
	"sync"
	"time"
)

// RateGate enforces a minimum interval between events across all callers.
// Every navigation against the source site passes through one shared gate so
// concurrent operations cannot multiply the request rate.
type RateGate struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewRateGate creates a gate with the given minimum interval between passes
func NewRateGate(interval time.Duration) *RateGate {
	return &RateGate{
		interval: interval,
		sleep:    sleepCtx,
	}
}

// Wait blocks until the gate opens or the context is cancelled
func (g *RateGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	now := time.Now()
	wait := g.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	g.next = now.Add(wait + g.interval)
	g.mu.Unlock()

	if wait == 0 {
		return ctx.Err()
	}
	return g.sleep(ctx, wait)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
