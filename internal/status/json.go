package status

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sweeney/risk-monitor/internal/logic"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string          `json:"event,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Mode          string          `json:"mode"`
	Luminance     uint32          `json:"luminance"`
	Offset        VectorJSON      `json:"offset"`
	Reading       VectorJSON      `json:"reading"`
	Countdown     int             `json:"countdown"`
	Assessment    *AssessmentJSON `json:"assessment,omitempty"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	StartTime     string          `json:"start_time"`
	Timestamp     string          `json:"timestamp"`
	IRQ           IRQJSON         `json:"irq_counts"`
	Config        ConfigJSON      `json:"config"`
}

// VectorJSON is the JSON representation of an accelerometer vector.
type VectorJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// AssessmentJSON is the JSON representation of the StandBy classification.
type AssessmentJSON struct {
	Risk         string  `json:"risk"`
	Heat         string  `json:"heat"`
	Luminance    uint32  `json:"luminance"`
	TemperatureC float64 `json:"temperature_c"`
}

// IRQJSON is the JSON representation of interrupt counts.
type IRQJSON struct {
	Reset       uint32 `json:"reset"`
	Calibrate   uint32 `json:"calibrate"`
	Light       uint32 `json:"light"`
	LightErrors uint32 `json:"light_errors"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	ConfigPath  string `json:"config_path,omitempty"`
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	I2CBus      string `json:"i2c_bus"`
	GPIOChip    string `json:"gpio_chip"`
}

func vectorJSON(v logic.Vector) VectorJSON {
	return VectorJSON{X: v.X, Y: v.Y, Z: v.Z}
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Mode:          snap.Mode.String(),
		Luminance:     snap.Luminance,
		Offset:        vectorJSON(snap.Offset),
		Reading:       vectorJSON(snap.Reading),
		Countdown:     snap.Countdown,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		IRQ: IRQJSON{
			Reset:       snap.IRQ.Reset,
			Calibrate:   snap.IRQ.Calibrate,
			Light:       snap.IRQ.Light,
			LightErrors: snap.IRQ.LightErrors,
		},
		Config: ConfigJSON{
			ConfigPath:  snap.Config.ConfigPath,
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			I2CBus:      snap.Config.I2CBus,
			GPIOChip:    snap.Config.GPIOChip,
		},
	}

	if snap.Assessed {
		a := snap.Assessment
		inner.Assessment = &AssessmentJSON{
			Risk:         strings.TrimSpace(a.RiskLabel()),
			Heat:         strings.TrimSpace(a.HeatLabel()),
			Luminance:    a.Luminance,
			TemperatureC: a.Temperature,
		}
	}
	return inner
}

// FormatJSON returns the JSON status for --print-state (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the single-line JSON status logged for a
// lifecycle event such as STARTUP, HEARTBEAT or SHUTDOWN.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
