// Package gpio provides the interrupt lines and the 7-segment indicator.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import (
	"sync/atomic"

	"github.com/sweeney/risk-monitor/internal/hw"
)

// Default line offsets on gpiochip0 (BCM numbering).
const (
	DefaultChip         = "gpiochip0"
	DefaultPinReset     = 17
	DefaultPinCalibrate = 27
	DefaultPinLightIRQ  = 22
)

// DefaultSegmentPins drives segments a, b, c, d, e, f, g and the decimal point.
var DefaultSegmentPins = [8]int{5, 6, 13, 19, 26, 16, 20, 21}

// Latch is the pending register for the interrupt lines. The edge watcher
// sets a source's flag; the dispatcher tests and clears it.
type Latch struct {
	bits atomic.Uint32
}

// Set marks s as pending.
func (l *Latch) Set(s hw.Source) {
	mask := uint32(1) << s
	for {
		old := l.bits.Load()
		if l.bits.CompareAndSwap(old, old|mask) {
			return
		}
	}
}

// Pending reports whether s has an unacknowledged edge.
func (l *Latch) Pending(s hw.Source) bool {
	return l.bits.Load()&(uint32(1)<<s) != 0
}

// Clear acknowledges s.
func (l *Latch) Clear(s hw.Source) {
	mask := uint32(1) << s
	for {
		old := l.bits.Load()
		if l.bits.CompareAndSwap(old, old&^mask) {
			return
		}
	}
}

// Lines maps line offsets to interrupt sources.
type Lines struct {
	Reset     int
	Calibrate int
	LightIRQ  int
}

// Offsets returns the line offsets in hw.Sources order.
func (l Lines) Offsets() []int {
	return []int{l.Reset, l.Calibrate, l.LightIRQ}
}

// Source returns the interrupt source wired to offset.
func (l Lines) Source(offset int) (hw.Source, bool) {
	switch offset {
	case l.Reset:
		return hw.SourceReset, true
	case l.Calibrate:
		return hw.SourceCalibrate, true
	case l.LightIRQ:
		return hw.SourceLight, true
	}
	return 0, false
}

// Raise latches the source wired to offset and runs handler, mirroring a
// hardware interrupt. Edges on unknown offsets are ignored.
func Raise(lines Lines, latch *Latch, offset int, handler func()) bool {
	src, ok := lines.Source(offset)
	if !ok {
		return false
	}
	latch.Set(src)
	handler()
	return true
}
