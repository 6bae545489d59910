package device

import (
	"sync"
	"sync/atomic"

	"github.com/sweeney/risk-monitor/internal/hw"
	"github.com/sweeney/risk-monitor/internal/logic"
)

// IRQCounts tracks how many times each interrupt source was serviced.
type IRQCounts struct {
	Reset       uint32
	Calibrate   uint32
	Light       uint32
	LightErrors uint32
}

// Dispatcher is the single interrupt handler multiplexing the reset
// button, the calibration button and the light-threshold line.
//
// Service runs in the interrupt context. It must not block: no polling
// loops and no display writes. Invocations are serialized so two never
// interleave.
type Dispatcher struct {
	mu    sync.Mutex
	irq   hw.IRQStatus
	light hw.LightSensor
	state *State

	resets      atomic.Uint32
	calibrates  atomic.Uint32
	lights      atomic.Uint32
	lightErrors atomic.Uint32
}

// NewDispatcher creates a dispatcher acknowledging flags on irq and writing into state.
func NewDispatcher(irq hw.IRQStatus, light hw.LightSensor, state *State) *Dispatcher {
	return &Dispatcher{
		irq:   irq,
		light: light,
		state: state,
	}
}

// Service checks every source once, in order reset, calibrate, light.
// Each pending flag is cleared before its effect runs. When both buttons are
// pending in the same invocation the calibration button wins, being
// evaluated last.
func (d *Dispatcher) Service() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.irq.Pending(hw.SourceReset) {
		d.irq.Clear(hw.SourceReset)
		d.state.SetMode(logic.ModeStandBy)
		d.resets.Add(1)
	}

	if d.irq.Pending(hw.SourceCalibrate) {
		d.irq.Clear(hw.SourceCalibrate)
		d.state.SetMode(logic.ModeCalibration)
		d.calibrates.Add(1)
	}

	if d.irq.Pending(hw.SourceLight) {
		d.irq.Clear(hw.SourceLight)
		d.lights.Add(1)
		// Luminance keeps its previous value if the sensor cannot be read.
		if err := d.light.ClearInterrupt(); err != nil {
			d.lightErrors.Add(1)
		}
		lux, err := d.light.Read()
		if err != nil {
			d.lightErrors.Add(1)
			return
		}
		d.state.SetLuminance(lux)
	}
}

// Counts returns a snapshot of the serviced-interrupt counters.
func (d *Dispatcher) Counts() IRQCounts {
	return IRQCounts{
		Reset:       d.resets.Load(),
		Calibrate:   d.calibrates.Load(),
		Light:       d.lights.Load(),
		LightErrors: d.lightErrors.Load(),
	}
}
