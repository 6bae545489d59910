package logic

import (
	"strings"
	"testing"
)

func TestModeValid(t *testing.T) {
	for _, m := range []Mode{ModeCalibration, ModeStandBy, ModeActive} {
		if !m.Valid() {
			t.Errorf("%s: expected valid", m)
		}
	}
	for _, m := range []Mode{-1, 3, 42} {
		if m.Valid() {
			t.Errorf("%s: expected invalid", m)
		}
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeCalibration, "CALIBRATION"},
		{ModeStandBy, "STANDBY"},
		{ModeActive, "ACTIVE"},
		{Mode(7), "Mode(7)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String(%d): got %q, want %q", int32(tt.mode), got, tt.want)
		}
	}
}

func TestCalibrationOffsetZeroesFirstSample(t *testing.T) {
	first := Vector{X: 5, Y: -3, Z: 100}
	off := CalibrationOffset(first)

	want := Vector{X: -5, Y: 3, Z: -100}
	if off != want {
		t.Fatalf("offset: got %+v, want %+v", off, want)
	}
	if got := first.Add(off); got != (Vector{}) {
		t.Errorf("first sample calibrated: got %+v, want zero", got)
	}
}

func TestVectorAdd(t *testing.T) {
	got := Vector{X: 1, Y: 2, Z: 3}.Add(Vector{X: -4, Y: 0, Z: 10})
	want := Vector{X: -3, Y: 2, Z: 13}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCountdownStartsAtFive(t *testing.T) {
	c := NewCountdown(1234)
	if c.Remaining() != 5 {
		t.Errorf("remaining: got %d, want 5", c.Remaining())
	}
	if c.Glyph() != '5' {
		t.Errorf("glyph: got %q, want '5'", c.Glyph())
	}
	if c.Expired() {
		t.Error("new countdown should not be expired")
	}
}

func TestCountdownDecrementsOncePerSecond(t *testing.T) {
	c := NewCountdown(0)

	if c.Tick(999) {
		t.Error("should not decrement before 1000ms")
	}
	if !c.Tick(1000) {
		t.Fatal("should decrement at exactly 1000ms")
	}
	if c.Remaining() != 4 {
		t.Errorf("remaining: got %d, want 4", c.Remaining())
	}

	// Timestamp resets on decrement
	if c.Tick(1999) {
		t.Error("should not decrement 999ms after previous decrement")
	}
	if !c.Tick(2000) {
		t.Error("should decrement 1000ms after previous decrement")
	}
}

func TestCountdownOneDecrementPerCall(t *testing.T) {
	c := NewCountdown(0)

	// A long stall still only yields one decrement
	if !c.Tick(10_000) {
		t.Fatal("expected decrement")
	}
	if c.Remaining() != 4 {
		t.Errorf("remaining: got %d, want 4", c.Remaining())
	}
}

func TestCountdownReachesZeroAfterFiveSeconds(t *testing.T) {
	c := NewCountdown(100)
	var glyphs []byte
	for now := uint32(100); now <= 5100; now += 10 {
		if c.Tick(now) {
			glyphs = append(glyphs, c.Glyph())
		}
	}
	if !c.Expired() {
		t.Fatalf("expected expired, remaining %d", c.Remaining())
	}
	if string(glyphs) != "43210" {
		t.Errorf("glyph sequence: got %q, want %q", glyphs, "43210")
	}

	// Never below zero
	if c.Tick(100_000) {
		t.Error("expired countdown should not change")
	}
	if c.Remaining() != 0 {
		t.Errorf("remaining: got %d, want 0", c.Remaining())
	}
}

func TestCountdownTickWraparound(t *testing.T) {
	c := NewCountdown(^uint32(0) - 499)
	if !c.Tick(500) {
		t.Error("expected decrement across counter wrap")
	}
}

func TestAssessRiskBoundary(t *testing.T) {
	tests := []struct {
		lux  uint32
		want string
	}{
		{0, LabelSafe},
		{799, LabelSafe},
		{800, LabelRisky},
		{4000, LabelRisky},
	}
	for _, tt := range tests {
		a := Assess(tt.lux, 200)
		if got := a.RiskLabel(); got != tt.want {
			t.Errorf("lux=%d: got %q, want %q", tt.lux, got, tt.want)
		}
	}
}

func TestAssessHeatBoundary(t *testing.T) {
	tests := []struct {
		raw  int32
		want string
	}{
		{-50, LabelNormal},
		{259, LabelNormal},
		{260, LabelHot},
		{400, LabelHot},
	}
	for _, tt := range tests {
		a := Assess(0, tt.raw)
		if got := a.HeatLabel(); got != tt.want {
			t.Errorf("raw=%d: got %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCelsius(t *testing.T) {
	if got := Celsius(259); got != 25.9 {
		t.Errorf("got %v, want 25.9", got)
	}
}

func TestLabelsSameWidth(t *testing.T) {
	if len(LabelRisky) != len(LabelSafe) {
		t.Errorf("risk labels differ in width: %q %q", LabelRisky, LabelSafe)
	}
	if len(LabelHot) != len(LabelNormal) {
		t.Errorf("heat labels differ in width: %q %q", LabelHot, LabelNormal)
	}
}

func TestAxisLines(t *testing.T) {
	lines := AxisLines(Vector{X: 0, Y: -128, Z: 64})

	if !strings.HasPrefix(lines[0], "Acc: 0") {
		t.Errorf("line 0: got %q", lines[0])
	}
	if strings.TrimSpace(lines[1]) != "-128" {
		t.Errorf("line 1: got %q", lines[1])
	}
	if strings.TrimSpace(lines[2]) != "64" {
		t.Errorf("line 2: got %q", lines[2])
	}
	for i, l := range lines {
		if len(l) != len(lines[0]) {
			t.Errorf("line %d: width %d, want %d", i, len(l), len(lines[0]))
		}
	}
}
