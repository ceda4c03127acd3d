// Package control contains pure business logic for the enclosure climate
// controller. This package has NO external dependencies (no GPIO, I2C, OS,
// or time.Sleep). Time is always injectable via time.Time parameters.
package control

// Reading is one valid sensor sample. Temperature and humidity are in probe
// units (degrees in the active unit, percent RH); Light is the LDR level
// already scaled to a 0-100 percentage.
type Reading struct {
	Temperature float64
	Humidity    float64
	Light       float64
}

// Thresholds are the setpoints consulted on each evaluation. Values are in
// the same units as the Reading they are compared against.
type Thresholds struct {
	TempLow     float64
	TempHigh    float64
	HumLow      float64
	HumHigh     float64
	LightTarget float64
}

// Actuators holds the five logical actuator flags. Cooling and Drying may
// both assert the same physical fan output.
type Actuators struct {
	Heating  bool
	Cooling  bool
	Misting  bool
	Drying   bool
	Lighting bool
}

// Outputs are the physical output levels derived from Actuators.
type Outputs struct {
	Heater bool
	Fan    bool
	Mister bool
	Lamp   bool
}

// Outputs derives physical output levels: the fan serves both cooling and
// venting excess humidity.
func (a Actuators) Outputs() Outputs {
	return Outputs{
		Heater: a.Heating,
		Fan:    a.Cooling || a.Drying,
		Mister: a.Misting,
		Lamp:   a.Lighting,
	}
}

// Trend describes how a value moved between the last two evaluations.
type Trend int

const (
	TrendSteady Trend = iota
	TrendRising
	TrendFalling
)

func (t Trend) String() string {
	switch t {
	case TrendRising:
		return "rising"
	case TrendFalling:
		return "falling"
	default:
		return "steady"
	}
}
