package logic

// Countdown tracks the StandBy countdown against a millisecond tick source.
// It is local to one StandBy session and never persisted.
type Countdown struct {
	remaining int
	last      uint32
}

// NewCountdown starts a countdown at CountdownStart, timed from now.
func NewCountdown(now uint32) *Countdown {
	return &Countdown{
		remaining: CountdownStart,
		last:      now,
	}
}

// Tick decrements the countdown if at least CountdownPeriodMs has elapsed
// since the last decrement (or the start). At most one decrement happens per
// call and the value never goes below zero. Returns true when the value changed.
//
// Tick arithmetic is unsigned so a wrapping counter still measures correctly.
func (c *Countdown) Tick(now uint32) bool {
	if c.remaining <= 0 {
		return false
	}
	if now-c.last < CountdownPeriodMs {
		return false
	}
	c.remaining--
	c.last = now
	return true
}

// Remaining returns the current countdown value.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Expired reports whether the countdown has reached zero.
func (c *Countdown) Expired() bool {
	return c.remaining == 0
}

// Glyph returns the indicator character for the current value.
func (c *Countdown) Glyph() byte {
	return DigitGlyph(c.remaining)
}

// DigitGlyph converts a single decimal digit to its ASCII character.
func DigitGlyph(n int) byte {
	return byte('0' + n)
}
