// Package settings holds the mutable threshold values shared between the
// control engine (read-only) and the menu editor (exclusive writer while
// active). Every mutation is clamped immediately so the low<=high invariants
// hold at each intermediate step, never just on commit.
package settings

import (
	"math"

	"github.com/sweeney/terrarium-controller/internal/control"
)

// Slot identifies one of the five ordered setting values.
type Slot int

const (
	TempLow Slot = iota
	TempHigh
	HumLow
	HumHigh
	LightTarget

	// NumSlots is the number of editable settings.
	NumSlots = 5
)

// Label returns the short name shown on the 20x2 display.
func (s Slot) Label() string {
	switch s {
	case TempLow:
		return "Temp low"
	case TempHigh:
		return "Temp high"
	case HumLow:
		return "Hum low"
	case HumHigh:
		return "Hum high"
	case LightTarget:
		return "Light"
	default:
		return "?"
	}
}

// Unit selects how temperatures are interpreted and displayed.
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

// Symbol returns the display character for the unit.
func (u Unit) Symbol() byte {
	if u == Fahrenheit {
		return 'F'
	}
	return 'C'
}

func (u Unit) String() string {
	if u == Fahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}

// FromCelsius converts a probe temperature (always sensed in Celsius) into
// the active unit for comparison and display.
func (u Unit) FromCelsius(c float64) float64 {
	if u == Fahrenheit {
		return c*9/5 + 32
	}
	return c
}

// Temperature sanity ranges per unit. 0-50C maps exactly to 32-122F, so a
// unit toggle never pushes a bound out of range.
const (
	sanityMinC = 0
	sanityMaxC = 50
	sanityMinF = 32
	sanityMaxF = 122
)

// Humidity and light are displayed in two columns, so both clamp to [0,99].
const (
	percentMin = 0
	percentMax = 99
)

// Store is the settings array plus the active unit. Not safe for concurrent
// use; the process is single-threaded by design and only the menu editor
// writes.
type Store struct {
	values [NumSlots]int
	unit   Unit
}

// NewStore creates a Store with the given initial values, clamped and
// ordered so the invariants hold from the start.
func NewStore(unit Unit, values [NumSlots]int) *Store {
	s := &Store{unit: unit}
	for slot := Slot(0); slot < NumSlots; slot++ {
		s.values[slot] = s.clamp(slot, values[slot])
	}
	if s.values[TempLow] > s.values[TempHigh] {
		s.values[TempHigh] = s.values[TempLow]
	}
	if s.values[HumLow] > s.values[HumHigh] {
		s.values[HumHigh] = s.values[HumLow]
	}
	return s
}

// Get returns the current value of a slot.
func (s *Store) Get(slot Slot) int {
	return s.values[slot]
}

// Values returns a copy of all five values in slot order.
func (s *Store) Values() [NumSlots]int {
	return s.values
}

// Unit returns the active temperature unit.
func (s *Store) Unit() Unit {
	return s.unit
}

// SanityRange returns the temperature bounds for the active unit.
func (s *Store) SanityRange() (min, max int) {
	if s.unit == Fahrenheit {
		return sanityMinF, sanityMaxF
	}
	return sanityMinC, sanityMaxC
}

// Adjust moves a slot by delta, clamps it, and drags the paired bound along
// if the edit would break low<=high. Returns the slot's new value.
func (s *Store) Adjust(slot Slot, delta int) int {
	return s.Set(slot, s.values[slot]+delta)
}

// Set writes a slot to an absolute value with the same clamping and
// cross-constraint rules as Adjust. Used by the menu editor to restore a
// pre-edit value on timeout.
func (s *Store) Set(slot Slot, value int) int {
	v := s.clamp(slot, value)
	s.values[slot] = v

	// Editing one bound past its partner pulls the partner with it.
	switch slot {
	case TempLow:
		if v > s.values[TempHigh] {
			s.values[TempHigh] = v
		}
	case TempHigh:
		if v < s.values[TempLow] {
			s.values[TempLow] = v
		}
	case HumLow:
		if v > s.values[HumHigh] {
			s.values[HumHigh] = v
		}
	case HumHigh:
		if v < s.values[HumLow] {
			s.values[HumLow] = v
		}
	}
	return v
}

// ToggleUnit flips Celsius<->Fahrenheit, converting both temperature bounds
// with round-to-nearest. Toggling twice returns the original integers: the
// back-conversion error is under half a degree, so rounding recovers them.
func (s *Store) ToggleUnit() Unit {
	if s.unit == Celsius {
		s.values[TempLow] = cToF(s.values[TempLow])
		s.values[TempHigh] = cToF(s.values[TempHigh])
		s.unit = Fahrenheit
	} else {
		s.values[TempLow] = fToC(s.values[TempLow])
		s.values[TempHigh] = fToC(s.values[TempHigh])
		s.unit = Celsius
	}
	s.values[TempLow] = s.clamp(TempLow, s.values[TempLow])
	s.values[TempHigh] = s.clamp(TempHigh, s.values[TempHigh])
	return s.unit
}

// Thresholds returns the values as the float setpoints the control engine
// compares readings against.
func (s *Store) Thresholds() control.Thresholds {
	return control.Thresholds{
		TempLow:     float64(s.values[TempLow]),
		TempHigh:    float64(s.values[TempHigh]),
		HumLow:      float64(s.values[HumLow]),
		HumHigh:     float64(s.values[HumHigh]),
		LightTarget: float64(s.values[LightTarget]),
	}
}

func (s *Store) clamp(slot Slot, v int) int {
	var min, max int
	switch slot {
	case TempLow, TempHigh:
		min, max = s.SanityRange()
	default:
		min, max = percentMin, percentMax
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func cToF(c int) int {
	return int(math.Round(float64(c)*9/5 + 32))
}

func fToC(f int) int {
	return int(math.Round((float64(f) - 32) * 5 / 9))
}
