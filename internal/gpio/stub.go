//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// EdgeWatcher is not available on non-Linux platforms.
type EdgeWatcher struct{}

// NewEdgeWatcher returns an error on non-Linux platforms.
func NewEdgeWatcher(chip string, lines Lines, latch *Latch, handler func()) (*EdgeWatcher, error) {
	return nil, errUnsupported
}

// Close is a no-op on non-Linux platforms.
func (w *EdgeWatcher) Close() error {
	return nil
}

// RealSegment is not available on non-Linux platforms.
type RealSegment struct{}

// NewRealSegment returns an error on non-Linux platforms.
func NewRealSegment(chip string, pins [8]int, activeLow bool) (*RealSegment, error) {
	return nil, errUnsupported
}

// SetChar is not implemented on non-Linux platforms.
func (s *RealSegment) SetChar(glyph byte, dot bool) error {
	return errUnsupported
}

// Close is a no-op on non-Linux platforms.
func (s *RealSegment) Close() error {
	return nil
}
