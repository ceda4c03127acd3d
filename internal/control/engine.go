package control

import "time"

// DefaultHysteresis is the fractional dead band applied around every
// setpoint to prevent output chatter from sensor noise.
const DefaultHysteresis = 0.05

// DefaultActionDelay is the minimum interval between actuator evaluations.
const DefaultActionDelay = 3 * time.Second

// trendEpsilon is the minimum change considered a real move rather than
// probe noise when computing trends.
const trendEpsilon = 0.05

// Engine owns the current Reading and the actuator flags, and converts one
// into the other on each eligible tick.
type Engine struct {
	actionDelay time.Duration
	hyst        float64

	reading    Reading
	haveRead   bool
	act        Actuators
	lastAction time.Time

	prevEval  Reading
	tempTrend Trend
	humTrend  Trend
}

// NewEngine creates an Engine. The first Tick with a valid reading always
// evaluates; actionDelay gates subsequent evaluations.
func NewEngine(actionDelay time.Duration, hyst float64) *Engine {
	return &Engine{
		actionDelay: actionDelay,
		hyst:        hyst,
	}
}

// SetReading installs a valid sensor sample. It must not be called for a
// failed probe read: skipping the call is what keeps the previous Reading
// in force across sensor faults.
func (e *Engine) SetReading(r Reading) {
	e.reading = r
	e.haveRead = true
}

// Reading returns the most recent valid sample.
func (e *Engine) Reading() Reading {
	return e.reading
}

// HasReading reports whether any valid sample has been seen yet.
func (e *Engine) HasReading() bool {
	return e.haveRead
}

// Actuators returns the current actuator flags without evaluating.
func (e *Engine) Actuators() Actuators {
	return e.act
}

// Trends returns the temperature and humidity movement observed between the
// last two evaluations.
func (e *Engine) Trends() (temp, hum Trend) {
	return e.tempTrend, e.humTrend
}

// Tick evaluates the hysteresis rules against the current Reading. Calls
// before actionDelay has elapsed since the previous evaluation, or before
// any valid Reading exists, are no-ops that leave the actuator flags
// unchanged. The bool reports whether an evaluation ran.
func (e *Engine) Tick(th Thresholds, now time.Time) (Actuators, bool) {
	if !e.haveRead {
		return e.act, false
	}
	if !e.lastAction.IsZero() && now.Sub(e.lastAction) < e.actionDelay {
		return e.act, false
	}

	r := e.reading

	e.act.Heating = bandLow(e.act.Heating, r.Temperature, th.TempLow, e.hyst)
	e.act.Cooling = bandHigh(e.act.Cooling, r.Temperature, th.TempHigh, e.hyst)
	e.act.Misting = bandLow(e.act.Misting, r.Humidity, th.HumLow, e.hyst)
	e.act.Drying = bandHigh(e.act.Drying, r.Humidity, th.HumHigh, e.hyst)

	// Light has no latch semantics of its own; inside the dead band the
	// previous state simply holds. Kept as-is, see design notes.
	e.act.Lighting = bandHigh(e.act.Lighting, r.Light, th.LightTarget, e.hyst)

	e.tempTrend = trendOf(r.Temperature, e.prevEval.Temperature)
	e.humTrend = trendOf(r.Humidity, e.prevEval.Humidity)
	e.prevEval = r

	e.lastAction = now
	return e.act, true
}

// ForceEligible rewinds the evaluation gate so the next Tick runs
// immediately. Called after the settings menu exits so threshold changes
// take effect without waiting out a stale interval.
func (e *Engine) ForceEligible(now time.Time) {
	e.lastAction = now.Add(-e.actionDelay)
}

// bandLow drives an actuator that compensates for a LOW value: on below
// setpoint*(1-hyst), off above setpoint*(1+hyst), held in between.
func bandLow(prev bool, v, setpoint, hyst float64) bool {
	switch {
	case v < setpoint*(1-hyst):
		return true
	case v > setpoint*(1+hyst):
		return false
	default:
		return prev
	}
}

// bandHigh drives an actuator that compensates for a HIGH value: on above
// setpoint*(1+hyst), off below setpoint*(1-hyst), held in between.
func bandHigh(prev bool, v, setpoint, hyst float64) bool {
	switch {
	case v > setpoint*(1+hyst):
		return true
	case v < setpoint*(1-hyst):
		return false
	default:
		return prev
	}
}

func trendOf(cur, prev float64) Trend {
	switch {
	case cur > prev+trendEpsilon:
		return TrendRising
	case cur < prev-trendEpsilon:
		return TrendFalling
	default:
		return TrendSteady
	}
}

// ScaleLight maps a raw ADC value from the calibrated [min, max] range to a
// 0-100 percentage, clamped at both ends.
func ScaleLight(raw, min, max int) float64 {
	if max <= min {
		return 0
	}
	pct := float64(raw-min) * 100 / float64(max-min)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
