// Package gpio provides button input and actuator output with hardware
// abstraction. The real implementation uses the Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

import "github.com/sweeney/terrarium-controller/internal/control"

// Button identifies one of the three front-panel buttons.
type Button int

const (
	Up Button = iota
	Down
	Enter

	// NumButtons is the number of front-panel buttons.
	NumButtons = 3
)

func (b Button) String() string {
	switch b {
	case Up:
		return "up"
	case Down:
		return "down"
	case Enter:
		return "enter"
	default:
		return "?"
	}
}

// ButtonReader reads the instantaneous, pre-debounce level of a button.
type ButtonReader interface {
	// Level returns true while the button is held.
	Level(b Button) (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// OutputWriter drives the four physical outputs.
type OutputWriter interface {
	// Apply asserts or clears all outputs in one call.
	Apply(o control.Outputs) error

	// Close turns everything off and releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering).
const (
	DefaultPinUp    = 5
	DefaultPinDown  = 6
	DefaultPinEnter = 13

	DefaultPinHeater = 17
	DefaultPinFan    = 27
	DefaultPinMister = 22
	DefaultPinLamp   = 23
)

// Pins bundles the full pin assignment so it can come from configuration.
type Pins struct {
	Up    int
	Down  int
	Enter int

	Heater int
	Fan    int
	Mister int
	Lamp   int
}

// DefaultPins returns the wiring used by the reference build.
func DefaultPins() Pins {
	return Pins{
		Up:     DefaultPinUp,
		Down:   DefaultPinDown,
		Enter:  DefaultPinEnter,
		Heater: DefaultPinHeater,
		Fan:    DefaultPinFan,
		Mister: DefaultPinMister,
		Lamp:   DefaultPinLamp,
	}
}
