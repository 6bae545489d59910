package logic

import "fmt"

// Risk labels, padded to the same width so a shorter label overwrites a
// longer one on screen.
const (
	LabelRisky  = "RISKY"
	LabelSafe   = "SAFE "
	LabelHot    = "HOT   "
	LabelNormal = "NORMAL"
)

// Assessment is the StandBy classification of the surroundings.
type Assessment struct {
	Luminance   uint32
	Temperature float64 // °C
	Risky       bool
	Hot         bool
}

// Celsius converts a raw thermometer reading (scaled ×10) to °C.
func Celsius(raw int32) float64 {
	return float64(raw) / TemperatureScale
}

// Assess classifies a luminance sample and a raw temperature reading.
// Both bounds are inclusive.
func Assess(luminance uint32, rawTemp int32) Assessment {
	t := Celsius(rawTemp)
	return Assessment{
		Luminance:   luminance,
		Temperature: t,
		Risky:       luminance >= RiskyLuminance,
		Hot:         t >= HotCelsius,
	}
}

// RiskLabel returns the on-screen risk label.
func (a Assessment) RiskLabel() string {
	if a.Risky {
		return LabelRisky
	}
	return LabelSafe
}

// HeatLabel returns the on-screen temperature label.
func (a Assessment) HeatLabel() string {
	if a.Hot {
		return LabelHot
	}
	return LabelNormal
}

// AxisLines formats a calibrated reading as the three fixed-width display lines.
func AxisLines(v Vector) [3]string {
	return [3]string{
		fmt.Sprintf("Acc: %-5d", v.X),
		fmt.Sprintf("     %-5d", v.Y),
		fmt.Sprintf("     %-5d", v.Z),
	}
}
