// Package device implements the monitor's mode state machine: the shared
// state, the interrupt dispatcher and the three cooperative mode routines.
package device

import (
	"sync"
	"sync/atomic"

	"github.com/sweeney/risk-monitor/internal/logic"
)

// State is shared between the dispatch loop and the interrupt context.
// Mode and Luminance are single-word atomics written only by the
// Dispatcher. The calibration offset is written once, at boot, before
// interrupts are enabled.
type State struct {
	mode      atomic.Int32
	luminance atomic.Uint32

	calibrate sync.Once
	offset    logic.Vector
}

// NewState returns a State in Calibration mode.
func NewState() *State {
	s := &State{}
	s.mode.Store(int32(logic.ModeCalibration))
	return s
}

// Mode returns the current mode.
func (s *State) Mode() logic.Mode {
	return logic.Mode(s.mode.Load())
}

// SetMode stores m. Values outside the enumeration are ignored so an
// undefined mode is never observable.
func (s *State) SetMode(m logic.Mode) bool {
	if !m.Valid() {
		return false
	}
	s.mode.Store(int32(m))
	return true
}

// Luminance returns the last light-sensor sample.
func (s *State) Luminance() uint32 {
	return s.luminance.Load()
}

// SetLuminance stores the latest light-sensor sample.
func (s *State) SetLuminance(lux uint32) {
	s.luminance.Store(lux)
}

// Calibrate computes the offset from the first accelerometer sample.
// Only the first call has any effect; it returns false for every later call.
func (s *State) Calibrate(first logic.Vector) bool {
	applied := false
	s.calibrate.Do(func() {
		s.offset = logic.CalibrationOffset(first)
		applied = true
	})
	return applied
}

// Offset returns the calibration offset (zero before Calibrate).
func (s *State) Offset() logic.Vector {
	return s.offset
}
