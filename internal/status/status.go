// Package status provides a thread-safe status tracker for the risk-monitor daemon.
// It is written by the dispatch loop and read by the heartbeat and --print-state.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/risk-monitor/internal/logic"
)

// IRQCounts is a local copy of the dispatcher counters, to avoid
// importing internal/device from status.
type IRQCounts struct {
	Reset       uint32
	Calibrate   uint32
	Light       uint32
	LightErrors uint32
}

// Config contains daemon configuration for display.
type Config struct {
	ConfigPath  string
	PollMs      int64
	HeartbeatMs int64
	I2CBus      string
	GPIOChip    string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Mode       logic.Mode
	Luminance  uint32
	Offset     logic.Vector
	Reading    logic.Vector
	Countdown  int
	Assessed   bool
	Assessment logic.Assessment
	IRQ        IRQCounts
	StartTime  time.Time
	Now        time.Time
	Config     Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
// It satisfies device.Observer.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Mode:      logic.ModeCalibration,
			Countdown: logic.CountdownStart,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetMode records the mode the dispatch loop entered. Entering StandBy
// restarts the countdown and forgets the previous assessment.
func (t *Tracker) SetMode(m logic.Mode) {
	t.mu.Lock()
	t.snap.Mode = m
	if m == logic.ModeStandBy {
		t.snap.Countdown = logic.CountdownStart
		t.snap.Assessed = false
		t.snap.Assessment = logic.Assessment{}
	}
	t.mu.Unlock()
}

// SetOffset records the calibration offset.
func (t *Tracker) SetOffset(v logic.Vector) {
	t.mu.Lock()
	t.snap.Offset = v
	t.mu.Unlock()
}

// SetReading records the last corrected accelerometer reading.
func (t *Tracker) SetReading(v logic.Vector) {
	t.mu.Lock()
	t.snap.Reading = v
	t.mu.Unlock()
}

// SetCountdown records the countdown value.
func (t *Tracker) SetCountdown(remaining int) {
	t.mu.Lock()
	t.snap.Countdown = remaining
	t.mu.Unlock()
}

// SetAssessment records the last risk assessment.
func (t *Tracker) SetAssessment(a logic.Assessment) {
	t.mu.Lock()
	t.snap.Assessed = true
	t.snap.Assessment = a
	t.mu.Unlock()
}

// SetLuminance records the shared luminance value.
func (t *Tracker) SetLuminance(lux uint32) {
	t.mu.Lock()
	t.snap.Luminance = lux
	t.mu.Unlock()
}

// SetIRQCounts records the dispatcher counters.
func (t *Tracker) SetIRQCounts(c IRQCounts) {
	t.mu.Lock()
	t.snap.IRQ = c
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
