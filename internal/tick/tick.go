// Package tick provides the monotonic millisecond counter used for
// countdown timing and sensor pacing.
package tick

import (
	"context"
	"sync/atomic"
	"time"
)

// Period is the interval between two timer events.
const Period = time.Millisecond

// Counter is a millisecond count read from any goroutine. Run increments it
// once per timer event; RunSince tracks elapsed time.
type Counter struct {
	ms atomic.Uint32
}

// Ticks returns the number of timer events seen so far.
func (c *Counter) Ticks() uint32 {
	return c.ms.Load()
}

// Advance adds n ticks. Used by Run and by tests driving time by hand.
func (c *Counter) Advance(n uint32) {
	c.ms.Add(n)
}

// Run increments the counter once per value received on events until ctx
// is done or events is closed.
func (c *Counter) Run(ctx context.Context, events <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			c.Advance(1)
		}
	}
}

// RunSince moves the counter to the milliseconds elapsed between start and
// each event's timestamp. Events the receiver was too late for are folded
// into the next one, so the count keeps pace with the clock. The counter
// never moves backwards.
func (c *Counter) RunSince(ctx context.Context, start time.Time, events <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-events:
			if !ok {
				return
			}
			c.advanceTo(uint32(t.Sub(start) / Period))
		}
	}
}

func (c *Counter) advanceTo(ms uint32) {
	for {
		cur := c.ms.Load()
		if int32(ms-cur) <= 0 || c.ms.CompareAndSwap(cur, ms) {
			return
		}
	}
}

// Start drives the counter from a 1ms ticker in its own goroutine.
func (c *Counter) Start(ctx context.Context) {
	start := time.Now()
	ticker := time.NewTicker(Period)
	go func() {
		defer ticker.Stop()
		c.RunSince(ctx, start, ticker.C)
	}()
}
