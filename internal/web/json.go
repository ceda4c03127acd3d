package web

import (
	"encoding/json"
	"time"

	"github.com/sweeney/terrarium-controller/internal/status"
)

// StatusJSON is the JSON representation of the controller status.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Reading       *ReadingJSON  `json:"reading,omitempty"`
	Actuators     ActuatorsJSON `json:"actuators"`
	Settings      SettingsJSON  `json:"settings"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	StartTime     string        `json:"start_time"`
	Timestamp     string        `json:"timestamp"`
	Counters      CountersJSON  `json:"counters"`
	Config        ConfigJSON    `json:"config"`
}

// ReadingJSON is the JSON representation of the last valid sensor sample.
// Omitted entirely until the first valid read.
type ReadingJSON struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Light       float64 `json:"light"`
}

// ActuatorsJSON is the JSON representation of the actuator flags.
type ActuatorsJSON struct {
	Heating  bool `json:"heating"`
	Cooling  bool `json:"cooling"`
	Misting  bool `json:"misting"`
	Drying   bool `json:"drying"`
	Lighting bool `json:"lighting"`
}

// SettingsJSON is the JSON representation of the threshold values.
type SettingsJSON struct {
	TempLow     int    `json:"temp_low"`
	TempHigh    int    `json:"temp_high"`
	HumLow      int    `json:"hum_low"`
	HumHigh     int    `json:"hum_high"`
	LightTarget int    `json:"light_target"`
	Unit        string `json:"unit"`
}

// CountersJSON is the JSON representation of lifetime counters.
type CountersJSON struct {
	Evaluations  int `json:"evaluations"`
	SensorFaults int `json:"sensor_faults"`
	MenuSessions int `json:"menu_sessions"`
	Commits      int `json:"commits"`
	UnitToggles  int `json:"unit_toggles"`
}

// ConfigJSON is the JSON representation of controller config.
type ConfigJSON struct {
	PollMs        int64   `json:"poll_ms"`
	ActionDelayMs int64   `json:"action_delay_ms"`
	MenuTimeoutMs int64   `json:"menu_timeout_ms"`
	SettleMs      int64   `json:"settle_ms"`
	Hysteresis    float64 `json:"hysteresis"`
	HTTPAddr      string  `json:"http_addr"`
}

func formatJSON(snap status.Snapshot) []byte {
	sj := StatusJSON{
		Status: StatusInner{
			Actuators: ActuatorsJSON{
				Heating:  snap.Actuators.Heating,
				Cooling:  snap.Actuators.Cooling,
				Misting:  snap.Actuators.Misting,
				Drying:   snap.Actuators.Drying,
				Lighting: snap.Actuators.Lighting,
			},
			Settings: SettingsJSON{
				TempLow:     snap.Settings[0],
				TempHigh:    snap.Settings[1],
				HumLow:      snap.Settings[2],
				HumHigh:     snap.Settings[3],
				LightTarget: snap.Settings[4],
				Unit:        snap.Unit.String(),
			},
			UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
			StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
			Timestamp:     snap.Now.UTC().Format(time.RFC3339),
			Counters: CountersJSON{
				Evaluations:  snap.Counters.Evaluations,
				SensorFaults: snap.Counters.SensorFaults,
				MenuSessions: snap.Counters.MenuSessions,
				Commits:      snap.Counters.Commits,
				UnitToggles:  snap.Counters.UnitToggles,
			},
			Config: ConfigJSON{
				PollMs:        snap.Config.PollMs,
				ActionDelayMs: snap.Config.ActionDelayMs,
				MenuTimeoutMs: snap.Config.MenuTimeoutMs,
				SettleMs:      snap.Config.SettleMs,
				Hysteresis:    snap.Config.Hysteresis,
				HTTPAddr:      snap.Config.HTTPAddr,
			},
		},
	}

	if snap.HaveReading {
		sj.Status.Reading = &ReadingJSON{
			Temperature: snap.Reading.Temperature,
			Humidity:    snap.Reading.Humidity,
			Light:       snap.Reading.Light,
		}
	}

	data, _ := json.MarshalIndent(sj, "", "  ")
	return data
}
