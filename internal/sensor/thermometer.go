package sensor

import (
	"fmt"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/tmp102"

	"github.com/sweeney/risk-monitor/internal/hw"
)

// ConversionMs is the TMP102's default conversion period (4 Hz).
const ConversionMs = 250

// Thermometer reads a TMP102 scaled ×10 °C. Conversions are paced against
// the tick source: within one conversion period the last value is returned
// without touching the bus.
type Thermometer struct {
	dev   tmp102.Device
	ticks hw.TickSource

	have   bool
	last   int32
	readAt uint32
}

// NewThermometer configures the TMP102 at addr (0 selects the default).
func NewThermometer(bus drivers.I2C, addr uint8, ticks hw.TickSource) (*Thermometer, error) {
	if addr == 0 {
		addr = tmp102.Address
	}
	dev := tmp102.New(bus)
	dev.Configure(tmp102.Config{Address: addr})
	if !dev.Connected() {
		return nil, fmt.Errorf("tmp102 not found at %#x", addr)
	}
	return &Thermometer{dev: dev, ticks: ticks}, nil
}

// Read returns the temperature in tenths of a degree Celsius.
func (t *Thermometer) Read() (int32, error) {
	now := t.ticks.Ticks()
	if t.have && now-t.readAt < ConversionMs {
		return t.last, nil
	}

	milli, err := t.dev.ReadTemperature()
	if err != nil {
		return 0, fmt.Errorf("read temperature: %w", err)
	}
	t.last = milli / 100
	t.readAt = now
	t.have = true
	return t.last, nil
}
