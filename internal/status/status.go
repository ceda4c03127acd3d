// Package status provides a thread-safe status tracker for the controller.
// It is read by the HTTP handlers while the single control loop writes.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/terrarium-controller/internal/control"
	"github.com/sweeney/terrarium-controller/internal/settings"
)

// Config contains controller configuration for display.
type Config struct {
	PollMs        int64
	ActionDelayMs int64
	MenuTimeoutMs int64
	SettleMs      int64
	Hysteresis    float64
	HTTPAddr      string
}

// Counters accumulate over the process lifetime.
type Counters struct {
	Evaluations  int // eligible control ticks
	SensorFaults int // invalid probe reads
	MenuSessions int // menu activations
	Commits      int // settings edits confirmed
	UnitToggles  int // Celsius<->Fahrenheit flips
}

// Snapshot is a point-in-time view of controller state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Reading     control.Reading
	HaveReading bool
	Actuators   control.Actuators
	Settings    [settings.NumSlots]int
	Unit        settings.Unit
	Counters    Counters
	StartTime   time.Time
	Now         time.Time
	Config      Config
}

// Uptime returns the duration since the controller started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable controller state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the latest reading, actuator flags, and settings values.
// Called from the control loop on every cycle.
func (t *Tracker) Update(reading control.Reading, have bool, act control.Actuators, values [settings.NumSlots]int, unit settings.Unit) {
	t.mu.Lock()
	t.snap.Reading = reading
	t.snap.HaveReading = have
	t.snap.Actuators = act
	t.snap.Settings = values
	t.snap.Unit = unit
	t.mu.Unlock()
}

// AddEvaluation counts one eligible control tick.
func (t *Tracker) AddEvaluation() {
	t.mu.Lock()
	t.snap.Counters.Evaluations++
	t.mu.Unlock()
}

// AddSensorFault counts one skipped cycle due to an invalid probe read.
func (t *Tracker) AddSensorFault() {
	t.mu.Lock()
	t.snap.Counters.SensorFaults++
	t.mu.Unlock()
}

// AddMenuSession records a finished menu session.
func (t *Tracker) AddMenuSession(commits, unitToggles int) {
	t.mu.Lock()
	t.snap.Counters.MenuSessions++
	t.snap.Counters.Commits += commits
	t.snap.Counters.UnitToggles += unitToggles
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the controller state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
