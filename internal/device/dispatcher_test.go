package device

import (
	"errors"
	"testing"

	"github.com/sweeney/risk-monitor/internal/gpio"
	"github.com/sweeney/risk-monitor/internal/hw"
	"github.com/sweeney/risk-monitor/internal/logic"
	"github.com/sweeney/risk-monitor/internal/sensor"
)

func newDispatcher(lux uint32) (*Dispatcher, *gpio.Latch, *sensor.FakeLight, *State) {
	latch := &gpio.Latch{}
	light := sensor.NewFakeLight(lux)
	state := NewState()
	return NewDispatcher(latch, light, state), latch, light, state
}

func TestServiceReset(t *testing.T) {
	d, latch, _, state := newDispatcher(0)

	latch.Set(hw.SourceReset)
	d.Service()

	if state.Mode() != logic.ModeStandBy {
		t.Errorf("Mode: got %v, want STANDBY", state.Mode())
	}
	if latch.Pending(hw.SourceReset) {
		t.Error("reset flag should be cleared")
	}
	if d.Counts().Reset != 1 {
		t.Errorf("Counts.Reset: got %d, want 1", d.Counts().Reset)
	}
}

func TestServiceCalibrate(t *testing.T) {
	d, latch, _, state := newDispatcher(0)
	state.SetMode(logic.ModeStandBy)

	latch.Set(hw.SourceCalibrate)
	d.Service()

	if state.Mode() != logic.ModeCalibration {
		t.Errorf("Mode: got %v, want CALIBRATION", state.Mode())
	}
	if latch.Pending(hw.SourceCalibrate) {
		t.Error("calibrate flag should be cleared")
	}
}

func TestServiceBothButtonsCalibrationWins(t *testing.T) {
	d, latch, _, state := newDispatcher(0)
	state.SetMode(logic.ModeStandBy)

	latch.Set(hw.SourceReset)
	latch.Set(hw.SourceCalibrate)
	d.Service()

	if state.Mode() != logic.ModeCalibration {
		t.Errorf("Mode: got %v, want CALIBRATION", state.Mode())
	}
	c := d.Counts()
	if c.Reset != 1 || c.Calibrate != 1 {
		t.Errorf("Counts: got %+v, want one reset and one calibrate", c)
	}
	for _, s := range hw.Sources {
		if latch.Pending(s) {
			t.Errorf("%v flag still pending", s)
		}
	}
}

func TestServiceRepeatedPresses(t *testing.T) {
	tests := []struct {
		src  hw.Source
		want logic.Mode
	}{
		{hw.SourceReset, logic.ModeStandBy},
		{hw.SourceCalibrate, logic.ModeCalibration},
	}

	for _, tt := range tests {
		d, latch, _, state := newDispatcher(0)
		for i := 0; i < 2; i++ {
			latch.Set(tt.src)
			d.Service()
			if state.Mode() != tt.want {
				t.Errorf("%v press %d: got %v, want %v", tt.src, i+1, state.Mode(), tt.want)
			}
		}
		c := d.Counts()
		if c.Reset+c.Calibrate != 2 {
			t.Errorf("%v: got counts %+v, want two presses", tt.src, c)
		}
	}
}

func TestServiceLight(t *testing.T) {
	d, latch, light, state := newDispatcher(300)
	light.IRQPending = true

	latch.Set(hw.SourceLight)
	d.Service()

	if state.Luminance() != 300 {
		t.Errorf("Luminance: got %d, want 300", state.Luminance())
	}
	if light.Pending() {
		t.Error("sensor interrupt flag should be cleared")
	}
	if light.IRQClears != 1 {
		t.Errorf("IRQClears: got %d, want 1", light.IRQClears)
	}
	if state.Mode() != logic.ModeCalibration {
		t.Errorf("light interrupt changed the mode to %v", state.Mode())
	}
}

func TestServiceLightReadErrorKeepsLuminance(t *testing.T) {
	d, latch, light, state := newDispatcher(300)
	state.SetLuminance(120)
	light.ReadError = errors.New("bus nack")

	latch.Set(hw.SourceLight)
	d.Service()

	if state.Luminance() != 120 {
		t.Errorf("Luminance: got %d, want 120 (unchanged)", state.Luminance())
	}
	if d.Counts().LightErrors != 1 {
		t.Errorf("LightErrors: got %d, want 1", d.Counts().LightErrors)
	}
	if latch.Pending(hw.SourceLight) {
		t.Error("light flag should be cleared even when the read fails")
	}
}

func TestServiceLightClearErrorStillReads(t *testing.T) {
	d, latch, light, state := newDispatcher(640)
	light.ClearError = errors.New("bus nack")

	latch.Set(hw.SourceLight)
	d.Service()

	if state.Luminance() != 640 {
		t.Errorf("Luminance: got %d, want 640", state.Luminance())
	}
	if d.Counts().LightErrors != 1 {
		t.Errorf("LightErrors: got %d, want 1", d.Counts().LightErrors)
	}
}

func TestServiceNothingPending(t *testing.T) {
	d, _, light, state := newDispatcher(500)
	state.SetMode(logic.ModeStandBy)

	d.Service()

	if state.Mode() != logic.ModeStandBy {
		t.Errorf("Mode: got %v, want STANDBY", state.Mode())
	}
	if state.Luminance() != 0 {
		t.Errorf("Luminance: got %d, want 0", state.Luminance())
	}
	if light.IRQClears != 0 {
		t.Errorf("IRQClears: got %d, want 0", light.IRQClears)
	}
	if d.Counts() != (IRQCounts{}) {
		t.Errorf("Counts: got %+v, want zero", d.Counts())
	}
}

func TestServiceViaEdge(t *testing.T) {
	d, latch, _, state := newDispatcher(0)
	lines := gpio.Lines{Reset: 17, Calibrate: 27, LightIRQ: 22}

	if !gpio.Raise(lines, latch, 17, d.Service) {
		t.Fatal("Raise should accept the reset line")
	}
	if state.Mode() != logic.ModeStandBy {
		t.Errorf("Mode: got %v, want STANDBY", state.Mode())
	}

	if gpio.Raise(lines, latch, 5, d.Service) {
		t.Error("Raise should ignore an unknown line")
	}
}
