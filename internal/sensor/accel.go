// Package sensor provides the accelerometer, light sensor and thermometer.
// Drivers talk to any bus with an I2C Tx method, which both periph's
// i2c.Bus and tinygo's drivers.I2C describe.
package sensor

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/mma8653"

	"github.com/sweeney/risk-monitor/internal/logic"
)

// microGPerCount converts µg to signed 8-bit counts at ±2g (64 counts/g).
const microGPerCount = 15625

// Accelerometer reads an MMA8653 as small signed counts.
type Accelerometer struct {
	dev mma8653.Device
}

// NewAccelerometer configures the MMA8653 at its default address on bus.
func NewAccelerometer(bus drivers.I2C, addr uint16) (*Accelerometer, error) {
	dev := mma8653.New(bus)
	if addr != 0 {
		dev.Address = addr
	}
	if !dev.Connected() {
		return nil, errors.New("mma8653 not found")
	}
	if err := dev.Configure(mma8653.DataRate100Hz, mma8653.Sensitivity2G); err != nil {
		return nil, fmt.Errorf("configure mma8653: %w", err)
	}
	return &Accelerometer{dev: dev}, nil
}

// Read returns the current acceleration in counts (64 per g).
func (a *Accelerometer) Read() (logic.Vector, error) {
	x, y, z, err := a.dev.ReadAcceleration()
	if err != nil {
		return logic.Vector{}, fmt.Errorf("read acceleration: %w", err)
	}
	return logic.Vector{X: toCounts(x), Y: toCounts(y), Z: toCounts(z)}, nil
}

// toCounts scales µg to counts, clamped to the int8 range.
func toCounts(ug int32) int {
	c := int(ug / microGPerCount)
	switch {
	case c > 127:
		return 127
	case c < -128:
		return -128
	}
	return c
}
