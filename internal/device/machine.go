package device

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sweeney/risk-monitor/internal/hw"
	"github.com/sweeney/risk-monitor/internal/logic"
)

// lineHeight is the pixel pitch between two text rows on the display.
const lineHeight = 14

// Peripherals groups the hardware the mode routines drive.
type Peripherals struct {
	Display hw.Display
	Segment hw.Segment
	Accel   hw.Accelerometer
	Light   hw.LightSensor
	Thermo  hw.Thermometer
	Ticks   hw.TickSource
}

// Observer receives what the routines compute, for status reporting.
// Implementations must be safe to call from the dispatch loop goroutine.
type Observer interface {
	SetMode(m logic.Mode)
	SetOffset(v logic.Vector)
	SetReading(v logic.Vector)
	SetCountdown(remaining int)
	SetAssessment(a logic.Assessment)
}

type nopObserver struct{}

func (nopObserver) SetMode(logic.Mode)             {}
func (nopObserver) SetOffset(logic.Vector)         {}
func (nopObserver) SetReading(logic.Vector)        {}
func (nopObserver) SetCountdown(int)               {}
func (nopObserver) SetAssessment(logic.Assessment) {}

// Options configures a Machine. The zero value is usable.
type Options struct {
	Logger   *slog.Logger
	Observer Observer
	// Poll is an optional pause between two routine iterations.
	// Zero keeps the routines as tight polls.
	Poll time.Duration
}

// Machine runs the top-level dispatch loop over the current mode.
type Machine struct {
	state *State
	p     Peripherals
	log   *slog.Logger
	obs   Observer
	poll  time.Duration
}

// NewMachine creates a Machine reading and rendering through p.
func NewMachine(state *State, p Peripherals, opts Options) *Machine {
	m := &Machine{
		state: state,
		p:     p,
		log:   opts.Logger,
		obs:   opts.Observer,
		poll:  opts.Poll,
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if m.obs == nil {
		m.obs = nopObserver{}
	}
	return m
}

// Boot initialises the light sensor, takes the first luminance sample and
// computes the calibration offset from the first accelerometer sample.
// It must run before the interrupt lines are enabled.
func (m *Machine) Boot() error {
	if err := m.p.Display.ClearScreen(hw.Black); err != nil {
		return fmt.Errorf("clear display: %w", err)
	}

	light := m.p.Light
	if err := light.Enable(); err != nil {
		return fmt.Errorf("enable light sensor: %w", err)
	}
	// Thresholds are scaled to the range, so the range goes first.
	if err := light.SetRange(logic.LightRangeLux); err != nil {
		return fmt.Errorf("light range: %w", err)
	}
	if err := light.SetIRQCycles(logic.LightIRQCycles); err != nil {
		return fmt.Errorf("light irq cycles: %w", err)
	}
	if err := light.SetHighThreshold(logic.LightThresholdHigh); err != nil {
		return fmt.Errorf("light high threshold: %w", err)
	}
	if err := light.SetLowThreshold(logic.LightThresholdLow); err != nil {
		return fmt.Errorf("light low threshold: %w", err)
	}

	lux, err := light.Read()
	if err != nil {
		return fmt.Errorf("read luminance: %w", err)
	}
	m.state.SetLuminance(lux)
	if err := light.ClearInterrupt(); err != nil {
		return fmt.Errorf("clear light interrupt: %w", err)
	}

	first, err := m.p.Accel.Read()
	if err != nil {
		return fmt.Errorf("read accelerometer: %w", err)
	}
	m.state.Calibrate(first)
	m.obs.SetOffset(m.state.Offset())

	m.log.Info("booted", "luminance", lux, "first_sample", first, "offset", m.state.Offset())
	return nil
}

// Run dispatches to the routine matching the current mode until ctx is done.
func (m *Machine) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		mode := m.state.Mode()
		m.log.Info("mode", "mode", mode)
		m.obs.SetMode(mode)

		switch mode {
		case logic.ModeCalibration:
			m.runCalibration(ctx)
		case logic.ModeStandBy:
			m.runStandBy(ctx)
		case logic.ModeActive:
			m.runActive(ctx)
		}
	}
	return nil
}

// in reports whether the routine for mode should keep looping.
func (m *Machine) in(ctx context.Context, mode logic.Mode) bool {
	return ctx.Err() == nil && m.state.Mode() == mode
}

func (m *Machine) pause() {
	if m.poll > 0 {
		time.Sleep(m.poll)
	}
}

func (m *Machine) clear() {
	if err := m.p.Display.ClearScreen(hw.Black); err != nil {
		m.log.Debug("display clear failed", "err", err)
	}
}

func (m *Machine) put(row int, text string) {
	if err := m.p.Display.PutString(0, row*lineHeight, text, hw.White, hw.Black); err != nil {
		m.log.Debug("display write failed", "row", row, "err", err)
	}
}

func (m *Machine) glyph(g byte) {
	if err := m.p.Segment.SetChar(g, false); err != nil {
		m.log.Debug("segment write failed", "glyph", string(g), "err", err)
	}
}
