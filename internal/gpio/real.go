//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/terrarium-controller/internal/control"
)

// RealButtons reads the front-panel buttons from actual hardware using the
// Linux GPIO character device.
type RealButtons struct {
	chip  *gpiocdev.Chip
	lines [NumButtons]*gpiocdev.Line
}

// NewRealButtons requests the three button pins as inputs.
// Buttons are wired to 3V3, so the lines use pull-down: raw high = pressed.
func NewRealButtons(pins Pins) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealButtons{chip: chip}
	for b, pin := range [NumButtons]int{pins.Up, pins.Down, pins.Enter} {
		line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", Button(b), pin, err)
		}
		r.lines[b] = line
	}
	return r, nil
}

// Level returns true while the button is held.
func (r *RealButtons) Level(b Button) (bool, error) {
	line := r.lines[b]
	if line == nil {
		return false, fmt.Errorf("button %s not requested", b)
	}
	v, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("read %s pin: %w", b, err)
	}
	return v != 0, nil
}

// Close releases the button lines and the chip.
func (r *RealButtons) Close() error {
	var errs []error
	for b, line := range r.lines {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", Button(b), err))
		}
		r.lines[b] = nil
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		r.chip = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealOutputs drives the relay board through GPIO output lines.
type RealOutputs struct {
	chip   *gpiocdev.Chip
	heater *gpiocdev.Line
	fan    *gpiocdev.Line
	mister *gpiocdev.Line
	lamp   *gpiocdev.Line
}

// NewRealOutputs requests the four actuator pins as outputs, all deasserted.
func NewRealOutputs(pins Pins) (*RealOutputs, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealOutputs{chip: chip}
	request := func(name string, pin int) (*gpiocdev.Line, error) {
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			return nil, fmt.Errorf("request %s pin %d: %w", name, pin, err)
		}
		return line, nil
	}

	if r.heater, err = request("heater", pins.Heater); err != nil {
		r.Close()
		return nil, err
	}
	if r.fan, err = request("fan", pins.Fan); err != nil {
		r.Close()
		return nil, err
	}
	if r.mister, err = request("mister", pins.Mister); err != nil {
		r.Close()
		return nil, err
	}
	if r.lamp, err = request("lamp", pins.Lamp); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Apply drives all four outputs to the requested levels.
func (r *RealOutputs) Apply(o control.Outputs) error {
	set := func(name string, line *gpiocdev.Line, on bool) error {
		if line == nil {
			return nil
		}
		v := 0
		if on {
			v = 1
		}
		if err := line.SetValue(v); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
		return nil
	}
	if err := set("heater", r.heater, o.Heater); err != nil {
		return err
	}
	if err := set("fan", r.fan, o.Fan); err != nil {
		return err
	}
	if err := set("mister", r.mister, o.Mister); err != nil {
		return err
	}
	return set("lamp", r.lamp, o.Lamp)
}

// Close deasserts every output and reconfigures the lines to input with
// pull-down (matching Pi boot defaults) before closing, so a restart never
// finds a relay stuck on.
func (r *RealOutputs) Close() error {
	var errs []error
	closeLine := func(name string, line *gpiocdev.Line) {
		if line == nil {
			return
		}
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear %s: %w", name, err))
		}
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s: %w", name, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	closeLine("heater", r.heater)
	closeLine("fan", r.fan)
	closeLine("mister", r.mister)
	closeLine("lamp", r.lamp)
	r.heater, r.fan, r.mister, r.lamp = nil, nil, nil, nil

	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		r.chip = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
