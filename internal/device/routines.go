package device

import (
	"context"

	"github.com/sweeney/risk-monitor/internal/logic"
)

// runCalibration shows offset-corrected accelerometer readings until the
// mode changes. The mode is checked before every sensor read.
func (m *Machine) runCalibration(ctx context.Context) {
	m.glyph('0')
	m.clear()
	m.put(0, "CALIBRATION")

	for m.in(ctx, logic.ModeCalibration) {
		raw, err := m.p.Accel.Read()
		if err != nil {
			m.log.Debug("accelerometer read failed", "err", err)
			m.pause()
			continue
		}
		v := raw.Add(m.state.Offset())
		m.obs.SetReading(v)
		for i, line := range logic.AxisLines(v) {
			m.put(i+1, line)
		}
		m.pause()
	}
}

// runStandBy counts down from five, one step per second of tick time, then
// classifies luminance and temperature on every iteration. The
// classification only drives the display; it never changes the mode.
func (m *Machine) runStandBy(ctx context.Context) {
	m.clear()
	m.put(0, "STANDBY")

	cd := logic.NewCountdown(m.p.Ticks.Ticks())
	m.glyph(cd.Glyph())
	m.obs.SetCountdown(cd.Remaining())

	for m.in(ctx, logic.ModeStandBy) {
		if cd.Tick(m.p.Ticks.Ticks()) {
			m.glyph(cd.Glyph())
			m.obs.SetCountdown(cd.Remaining())
			m.log.Debug("standby countdown", "remaining", cd.Remaining())
		}

		if cd.Expired() {
			raw, err := m.p.Thermo.Read()
			if err != nil {
				m.log.Debug("temperature read failed", "err", err)
			} else {
				a := logic.Assess(m.state.Luminance(), raw)
				m.obs.SetAssessment(a)
				m.put(1, a.RiskLabel())
				m.put(2, a.HeatLabel())
			}
		}
		m.pause()
	}
}

// runActive is unimplemented: no transition targets Active yet. It clears
// the screen and idles until the mode changes.
func (m *Machine) runActive(ctx context.Context) {
	m.clear()

	for m.in(ctx, logic.ModeActive) {
		m.pause()
	}
}
