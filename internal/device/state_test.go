package device

import (
	"sync"
	"testing"

	"github.com/sweeney/risk-monitor/internal/logic"
)

func TestNewStateStartsInCalibration(t *testing.T) {
	s := NewState()
	if s.Mode() != logic.ModeCalibration {
		t.Errorf("Mode: got %v, want CALIBRATION", s.Mode())
	}
	if s.Luminance() != 0 {
		t.Errorf("Luminance: got %d, want 0", s.Luminance())
	}
	if s.Offset() != (logic.Vector{}) {
		t.Errorf("Offset: got %+v, want zero", s.Offset())
	}
}

func TestSetModeRejectsUndefined(t *testing.T) {
	s := NewState()
	s.SetMode(logic.ModeStandBy)

	for _, m := range []logic.Mode{-1, 3, 42} {
		if s.SetMode(m) {
			t.Errorf("SetMode(%d) accepted", m)
		}
		if s.Mode() != logic.ModeStandBy {
			t.Errorf("after SetMode(%d): got %v, want STANDBY", m, s.Mode())
		}
	}
}

func TestCalibrateOnlyOnce(t *testing.T) {
	s := NewState()

	if !s.Calibrate(logic.Vector{X: 5, Y: -3, Z: 100}) {
		t.Fatal("first Calibrate should apply")
	}
	if s.Calibrate(logic.Vector{X: 1, Y: 1, Z: 1}) {
		t.Error("second Calibrate should be ignored")
	}

	want := logic.Vector{X: -5, Y: 3, Z: -100}
	if s.Offset() != want {
		t.Errorf("Offset: got %+v, want %+v", s.Offset(), want)
	}
}

func TestStateConcurrentAccess(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup

	// Writer
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.SetMode(logic.Mode(i % 3))
			s.SetLuminance(uint32(i))
		}
	}()

	// Reader
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if !s.Mode().Valid() {
				t.Error("observed undefined mode")
				return
			}
			_ = s.Luminance()
		}
	}()

	wg.Wait()
}
