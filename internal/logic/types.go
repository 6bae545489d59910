// Package logic contains the pure decision logic of the monitor: modes,
// calibration offsets, the StandBy countdown and the risk/heat assessment.
// This package has NO external dependencies (no GPIO, I2C, OS, or time.Sleep).
// Time is always injected as millisecond tick values.
package logic

import "fmt"

// Mode is the device's current operating phase.
type Mode int32

const (
	ModeCalibration Mode = iota
	ModeStandBy
	ModeActive
)

// Valid reports whether m is one of the three operating modes.
func (m Mode) Valid() bool {
	return m >= ModeCalibration && m <= ModeActive
}

func (m Mode) String() string {
	switch m {
	case ModeCalibration:
		return "CALIBRATION"
	case ModeStandBy:
		return "STANDBY"
	case ModeActive:
		return "ACTIVE"
	}
	return fmt.Sprintf("Mode(%d)", int32(m))
}

// Fixed thresholds.
const (
	// CountdownStart is the StandBy countdown's initial value.
	CountdownStart = 5
	// CountdownPeriodMs is the tick time between two countdown decrements.
	CountdownPeriodMs = 1000

	// RiskyLuminance is the inclusive luminance bound for RISKY.
	RiskyLuminance = 800
	// HotCelsius is the inclusive temperature bound for HOT.
	HotCelsius = 26.0
	// TemperatureScale converts raw thermometer values to °C.
	TemperatureScale = 10.0

	// Light sensor interrupt window and sampling set at boot.
	LightThresholdHigh = 150
	LightThresholdLow  = 50
	LightRangeLux      = 4000
	LightIRQCycles     = 8
)

// Vector is an accelerometer triple in raw sensor counts.
type Vector struct {
	X, Y, Z int
}

// Add returns the component-wise sum of v and o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Neg returns -v.
func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// CalibrationOffset returns the offset that re-centres readings around zero
// given the first sample taken at boot.
func CalibrationOffset(first Vector) Vector {
	return first.Neg()
}
