package sensor

import (
	"errors"
	"sync"

	"github.com/sweeney/risk-monitor/internal/logic"
)

// FakeAccelerometer is a test double that returns scripted samples.
type FakeAccelerometer struct {
	mu sync.Mutex

	// Samples contains scripted readings. Each call to Read consumes the
	// next sample; once exhausted the last one repeats.
	Samples []logic.Vector

	index int

	// Reads counts calls to Read.
	Reads int

	// ReadError, if set, will be returned by Read().
	ReadError error
}

// NewFakeAccelerometer creates a FakeAccelerometer with the given samples.
func NewFakeAccelerometer(samples ...logic.Vector) *FakeAccelerometer {
	return &FakeAccelerometer{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeAccelerometer) Read() (logic.Vector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Reads++
	if f.ReadError != nil {
		return logic.Vector{}, f.ReadError
	}
	if len(f.Samples) == 0 {
		return logic.Vector{}, errors.New("no samples configured")
	}

	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s, nil
}

// ReadCount returns the number of Read calls so far.
func (f *FakeAccelerometer) ReadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Reads
}

// FakeLight is a test double for the light sensor.
type FakeLight struct {
	mu sync.Mutex

	lux uint32

	// Configuration recorded from the setters.
	Enabled    bool
	High, Low  uint32
	RangeLux   uint32
	Cycles     int
	IRQPending bool
	IRQClears  int
	ReadError  error
	ClearError error
}

// NewFakeLight creates a FakeLight reporting lux.
func NewFakeLight(lux uint32) *FakeLight {
	return &FakeLight{lux: lux}
}

// SetLux changes the value returned by Read and raises the sensor's interrupt flag.
func (f *FakeLight) SetLux(lux uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lux = lux
	f.IRQPending = true
}

// Read returns the current lux value.
func (f *FakeLight) Read() (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	return f.lux, nil
}

// SetHighThreshold records lux.
func (f *FakeLight) SetHighThreshold(lux uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.High = lux
	return nil
}

// SetLowThreshold records lux.
func (f *FakeLight) SetLowThreshold(lux uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Low = lux
	return nil
}

// SetRange records lux.
func (f *FakeLight) SetRange(lux uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RangeLux = lux
	return nil
}

// SetIRQCycles records cycles.
func (f *FakeLight) SetIRQCycles(cycles int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Cycles = cycles
	return nil
}

// ClearInterrupt clears the interrupt flag.
func (f *FakeLight) ClearInterrupt() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ClearError != nil {
		return f.ClearError
	}
	f.IRQPending = false
	f.IRQClears++
	return nil
}

// Enable marks the sensor enabled.
func (f *FakeLight) Enable() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Enabled = true
	return nil
}

// Pending reports whether the interrupt flag is raised.
func (f *FakeLight) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.IRQPending
}

// FakeThermometer is a test double returning a settable raw temperature.
type FakeThermometer struct {
	mu sync.Mutex

	raw int32

	// ReadError, if set, will be returned by Read().
	ReadError error
}

// NewFakeThermometer creates a FakeThermometer reporting raw (°C ×10).
func NewFakeThermometer(raw int32) *FakeThermometer {
	return &FakeThermometer{raw: raw}
}

// Set changes the value returned by Read.
func (f *FakeThermometer) Set(raw int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raw = raw
}

// Read returns the current raw temperature.
func (f *FakeThermometer) Read() (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	return f.raw, nil
}
