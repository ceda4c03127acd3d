package control

import (
	"testing"
	"time"
)

var testThresholds = Thresholds{
	TempLow:     22,
	TempHigh:    28,
	HumLow:      40,
	HumHigh:     70,
	LightTarget: 50,
}

func comfortable() Reading {
	return Reading{Temperature: 25, Humidity: 55, Light: 50}
}

func TestNewEngine(t *testing.T) {
	e := NewEngine(3*time.Second, 0.05)
	if e == nil {
		t.Fatal("NewEngine returned nil")
	}
	if e.HasReading() {
		t.Error("new engine should not have a reading")
	}
	if e.Actuators() != (Actuators{}) {
		t.Errorf("new engine should have all actuators off, got %+v", e.Actuators())
	}
}

func TestTickWithoutReadingIsNoop(t *testing.T) {
	e := NewEngine(3*time.Second, 0.05)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	act, ran := e.Tick(testThresholds, now)
	if ran {
		t.Error("tick should not evaluate before any valid reading")
	}
	if act != (Actuators{}) {
		t.Errorf("expected all actuators off, got %+v", act)
	}
}

func TestFirstTickEvaluatesImmediately(t *testing.T) {
	e := NewEngine(3*time.Second, 0.05)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	e.SetReading(comfortable())
	if _, ran := e.Tick(testThresholds, now); !ran {
		t.Error("first tick with a valid reading should evaluate")
	}
}

func TestActionDelayGatesEvaluation(t *testing.T) {
	e := NewEngine(3*time.Second, 0.05)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	e.SetReading(comfortable())
	e.Tick(testThresholds, now)

	// Cold reading arrives, but the interval has not elapsed.
	e.SetReading(Reading{Temperature: 10, Humidity: 55, Light: 50})
	act, ran := e.Tick(testThresholds, now.Add(2*time.Second))
	if ran {
		t.Error("tick before actionDelay should be a no-op")
	}
	if act.Heating {
		t.Error("actuators must not change on a gated tick")
	}

	// Interval elapsed: the cold reading takes effect.
	act, ran = e.Tick(testThresholds, now.Add(3*time.Second))
	if !ran {
		t.Error("tick at actionDelay should evaluate")
	}
	if !act.Heating {
		t.Error("expected heating after eligible tick with cold reading")
	}
}

func TestHeatingHysteresisLatch(t *testing.T) {
	// tempLow=22, hyst=0.05: band is (20.9, 23.1). Once heating latches on
	// it must stay on anywhere inside the band and clear only above it.
	e := NewEngine(0, 0.05)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	steps := []struct {
		temp    float64
		heating bool
	}{
		{24, false}, // above band, off
		{21, false}, // inside band, holds off
		{20, true},  // below 20.9, latches on
		{21, true},  // inside band, holds on
		{23, true},  // still inside band (below 23.1), holds on
		{24, false}, // above 23.1, clears
		{23, false}, // back inside band, holds off
	}

	for i, step := range steps {
		e.SetReading(Reading{Temperature: step.temp, Humidity: 55, Light: 50})
		act, ran := e.Tick(testThresholds, now.Add(time.Duration(i)*time.Minute))
		if !ran {
			t.Fatalf("step %d: tick did not evaluate", i)
		}
		if act.Heating != step.heating {
			t.Errorf("step %d (temp=%.0f): heating=%v, want %v", i, step.temp, act.Heating, step.heating)
		}
	}
}

func TestCoolingHysteresisLatch(t *testing.T) {
	// tempHigh=28, hyst=0.05: band is (26.6, 29.4).
	e := NewEngine(0, 0.05)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	steps := []struct {
		temp    float64
		cooling bool
	}{
		{25, false},
		{30, true},  // above 29.4, latches on
		{28, true},  // inside band, holds on
		{27, true},  // still inside band, holds on
		{26, false}, // below 26.6, clears
	}

	for i, step := range steps {
		e.SetReading(Reading{Temperature: step.temp, Humidity: 55, Light: 50})
		act, _ := e.Tick(testThresholds, now.Add(time.Duration(i)*time.Minute))
		if act.Cooling != step.cooling {
			t.Errorf("step %d (temp=%.0f): cooling=%v, want %v", i, step.temp, act.Cooling, step.cooling)
		}
	}
}

func TestHumidityHysteresisLatches(t *testing.T) {
	// humLow=40 band (38, 42); humHigh=70 band (66.5, 73.5).
	e := NewEngine(0, 0.05)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	steps := []struct {
		hum     float64
		misting bool
		drying  bool
	}{
		{55, false, false},
		{37, true, false}, // too dry, mister on
		{41, true, false}, // inside low band, holds
		{43, false, false},
		{75, false, true}, // too humid, fan on
		{70, false, true}, // inside high band, holds
		{66, false, false},
	}

	for i, step := range steps {
		e.SetReading(Reading{Temperature: 25, Humidity: step.hum, Light: 50})
		act, _ := e.Tick(testThresholds, now.Add(time.Duration(i)*time.Minute))
		if act.Misting != step.misting {
			t.Errorf("step %d (hum=%.0f): misting=%v, want %v", i, step.hum, act.Misting, step.misting)
		}
		if act.Drying != step.drying {
			t.Errorf("step %d (hum=%.0f): drying=%v, want %v", i, step.hum, act.Drying, step.drying)
		}
	}
}

func TestLightDeadBandHold(t *testing.T) {
	// lightTarget=50, hyst=0.05: on above 52.5, off below 47.5, and the
	// previous state simply holds anywhere in between.
	e := NewEngine(0, 0.05)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	steps := []struct {
		light    float64
		lighting bool
	}{
		{50, false}, // inside dead band from the start, stays off
		{60, true},  // above band
		{50, true},  // dead band holds on
		{48, true},  // still inside
		{47, false}, // below band
		{50, false}, // dead band holds off
	}

	for i, step := range steps {
		e.SetReading(Reading{Temperature: 25, Humidity: 55, Light: step.light})
		act, _ := e.Tick(testThresholds, now.Add(time.Duration(i)*time.Minute))
		if act.Lighting != step.lighting {
			t.Errorf("step %d (light=%.0f): lighting=%v, want %v", i, step.light, act.Lighting, step.lighting)
		}
	}
}

func TestInvalidReadingHoldsActuators(t *testing.T) {
	e := NewEngine(0, 0.05)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	e.SetReading(Reading{Temperature: 19, Humidity: 36, Light: 60})
	before, _ := e.Tick(testThresholds, now)
	if !before.Heating || !before.Misting || !before.Lighting {
		t.Fatalf("setup: expected heating+misting+lighting, got %+v", before)
	}

	// A sensor fault means SetReading is never called; ticks keep
	// re-evaluating the same held reading with the same result.
	for i := 1; i <= 5; i++ {
		after, _ := e.Tick(testThresholds, now.Add(time.Duration(i)*time.Minute))
		if after != before {
			t.Errorf("tick %d during fault: actuators changed: %+v -> %+v", i, before, after)
		}
	}
}

func TestForceEligible(t *testing.T) {
	e := NewEngine(3*time.Second, 0.05)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	e.SetReading(comfortable())
	e.Tick(testThresholds, now)

	if _, ran := e.Tick(testThresholds, now.Add(time.Second)); ran {
		t.Fatal("tick should be gated one second after an evaluation")
	}

	e.ForceEligible(now.Add(time.Second))
	if _, ran := e.Tick(testThresholds, now.Add(time.Second)); !ran {
		t.Error("tick should evaluate immediately after ForceEligible")
	}
}

func TestTrends(t *testing.T) {
	e := NewEngine(0, 0.05)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	e.SetReading(Reading{Temperature: 25, Humidity: 55, Light: 50})
	e.Tick(testThresholds, now)

	e.SetReading(Reading{Temperature: 26, Humidity: 54, Light: 50})
	e.Tick(testThresholds, now.Add(time.Minute))

	temp, hum := e.Trends()
	if temp != TrendRising {
		t.Errorf("expected temperature rising, got %s", temp)
	}
	if hum != TrendFalling {
		t.Errorf("expected humidity falling, got %s", hum)
	}

	e.SetReading(Reading{Temperature: 26, Humidity: 54, Light: 50})
	e.Tick(testThresholds, now.Add(2*time.Minute))
	temp, hum = e.Trends()
	if temp != TrendSteady || hum != TrendSteady {
		t.Errorf("expected steady/steady, got %s/%s", temp, hum)
	}
}

func TestOutputsDerivation(t *testing.T) {
	cases := []struct {
		name string
		act  Actuators
		want Outputs
	}{
		{"all off", Actuators{}, Outputs{}},
		{"heating", Actuators{Heating: true}, Outputs{Heater: true}},
		{"cooling drives fan", Actuators{Cooling: true}, Outputs{Fan: true}},
		{"drying drives fan", Actuators{Drying: true}, Outputs{Fan: true}},
		{"cooling and drying share fan", Actuators{Cooling: true, Drying: true}, Outputs{Fan: true}},
		{"misting", Actuators{Misting: true}, Outputs{Mister: true}},
		{"lighting", Actuators{Lighting: true}, Outputs{Lamp: true}},
	}

	for _, c := range cases {
		if got := c.act.Outputs(); got != c.want {
			t.Errorf("%s: got %+v, want %+v", c.name, got, c.want)
		}
	}
}

func TestScaleLight(t *testing.T) {
	cases := []struct {
		raw, min, max int
		want          float64
	}{
		{0, 0, 1000, 0},
		{500, 0, 1000, 50},
		{1000, 0, 1000, 100},
		{-50, 0, 1000, 0},    // clamps low
		{1200, 0, 1000, 100}, // clamps high
		{300, 200, 400, 50},
		{7, 10, 10, 0}, // degenerate range
	}

	for _, c := range cases {
		if got := ScaleLight(c.raw, c.min, c.max); got != c.want {
			t.Errorf("ScaleLight(%d, %d, %d) = %v, want %v", c.raw, c.min, c.max, got, c.want)
		}
	}
}
