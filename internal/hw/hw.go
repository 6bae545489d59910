// Package hw defines the peripheral facade driven by the monitor core.
// Real implementations live in the gpio, sensor and display packages;
// each of those also provides fakes for testing without hardware.
package hw

import "github.com/sweeney/risk-monitor/internal/logic"

// Color is a display colour. The OLED is monochrome.
type Color uint8

const (
	Black Color = iota
	White
)

// Display is a small text-capable screen.
type Display interface {
	// ClearScreen fills the whole screen with c.
	ClearScreen(c Color) error
	// PutString renders text with its top-left corner at pixel (x, y).
	PutString(x, y int, text string, fg, bg Color) error
}

// Segment is a single-digit 7-segment indicator.
type Segment interface {
	SetChar(glyph byte, dot bool) error
}

// Accelerometer reads a raw (x, y, z) sample in signed 8-bit counts.
type Accelerometer interface {
	Read() (logic.Vector, error)
}

// LightSensor is an ambient light sensor with a threshold interrupt.
type LightSensor interface {
	Read() (uint32, error)
	SetHighThreshold(lux uint32) error
	SetLowThreshold(lux uint32) error
	SetRange(lux uint32) error
	SetIRQCycles(cycles int) error
	ClearInterrupt() error
	Enable() error
}

// Thermometer reads the temperature scaled ×10 (°C).
type Thermometer interface {
	Read() (int32, error)
}

// TickSource is a monotonic millisecond counter.
type TickSource interface {
	Ticks() uint32
}

// Source identifies one of the interrupt lines.
type Source uint8

const (
	SourceReset Source = iota
	SourceCalibrate
	SourceLight
	numSources
)

// Sources lists every interrupt source in dispatcher evaluation order.
var Sources = [numSources]Source{SourceReset, SourceCalibrate, SourceLight}

func (s Source) String() string {
	switch s {
	case SourceReset:
		return "reset"
	case SourceCalibrate:
		return "calibrate"
	case SourceLight:
		return "light"
	}
	return "unknown"
}

// IRQStatus is the pin-level pending/clear register for the interrupt lines.
type IRQStatus interface {
	Pending(s Source) bool
	Clear(s Source)
}
