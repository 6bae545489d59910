//go:build linux

package gpio

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

const consumer = "risk-monitor"

// EdgeWatcher turns falling edges on the button and light-sensor lines into
// latched interrupts using the Linux GPIO character device.
type EdgeWatcher struct {
	lines   Lines
	latch   *Latch
	handler func()
	req     *gpiocdev.Lines
}

// NewEdgeWatcher requests the interrupt lines on chip. Every falling edge
// latches its source and calls handler from the event goroutine.
// Edges are not debounced in software.
func NewEdgeWatcher(chip string, lines Lines, latch *Latch, handler func()) (*EdgeWatcher, error) {
	w := &EdgeWatcher{
		lines:   lines,
		latch:   latch,
		handler: handler,
	}

	// Buttons and the sensor's open-drain IRQ pull the line low when active.
	req, err := gpiocdev.RequestLines(chip, lines.Offsets(),
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithConsumer(consumer),
		gpiocdev.WithEventHandler(w.handle),
	)
	if err != nil {
		return nil, fmt.Errorf("request interrupt lines %v on %s: %w", lines.Offsets(), chip, err)
	}
	w.req = req
	return w, nil
}

func (w *EdgeWatcher) handle(evt gpiocdev.LineEvent) {
	if evt.Type != gpiocdev.LineEventFallingEdge {
		return
	}
	Raise(w.lines, w.latch, evt.Offset, w.handler)
}

// Close releases the interrupt lines.
// Lines are reconfigured to plain inputs before closing so no edge
// detection is left armed.
func (w *EdgeWatcher) Close() error {
	if w.req == nil {
		return nil
	}
	var errs []error
	if err := w.req.Reconfigure(gpiocdev.WithoutEdges); err != nil {
		errs = append(errs, fmt.Errorf("disable edges: %w", err))
	}
	if err := w.req.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close interrupt lines: %w", err))
	}
	return errors.Join(errs...)
}

// RealSegment drives a 7-segment indicator wired directly to eight GPIO lines.
type RealSegment struct {
	req       *gpiocdev.Lines
	activeLow bool
}

// NewRealSegment requests the segment lines (a..g, dp) as outputs, blank.
func NewRealSegment(chip string, pins [8]int, activeLow bool) (*RealSegment, error) {
	blank := lineValues(0, activeLow)
	req, err := gpiocdev.RequestLines(chip, pins[:],
		gpiocdev.AsOutput(blank...),
		gpiocdev.WithConsumer(consumer),
	)
	if err != nil {
		return nil, fmt.Errorf("request segment lines %v on %s: %w", pins, chip, err)
	}
	return &RealSegment{req: req, activeLow: activeLow}, nil
}

// SetChar shows glyph, with the decimal point lit when dot is set.
func (s *RealSegment) SetChar(glyph byte, dot bool) error {
	mask, ok := Encode(glyph, dot)
	if err := s.req.SetValues(lineValues(mask, s.activeLow)); err != nil {
		return fmt.Errorf("set segments: %w", err)
	}
	if !ok {
		return fmt.Errorf("no segment pattern for %q", glyph)
	}
	return nil
}

// Close blanks the indicator, then returns the lines to inputs with
// pull-down and releases them.
func (s *RealSegment) Close() error {
	var errs []error
	if err := s.req.SetValues(lineValues(0, s.activeLow)); err != nil {
		errs = append(errs, fmt.Errorf("blank segments: %w", err))
	}
	if err := s.req.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure segments: %w", err))
	}
	if err := s.req.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close segments: %w", err))
	}
	return errors.Join(errs...)
}
