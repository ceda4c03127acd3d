// Package config loads the wiring-level configuration: pin assignment, I2C
// addresses, LDR calibration, and initial threshold values. Runtime knobs
// (poll interval, timeouts, hysteresis) stay on command-line flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/sweeney/terrarium-controller/internal/display"
	"github.com/sweeney/terrarium-controller/internal/gpio"
	"github.com/sweeney/terrarium-controller/internal/sensor"
	"github.com/sweeney/terrarium-controller/internal/settings"
)

// Config is the on-disk configuration. Every field has a working default
// for the reference build, so an absent file is not an error.
type Config struct {
	Pins     Pins     `yaml:"pins"`
	Bus      Bus      `yaml:"bus"`
	Light    Light    `yaml:"light"`
	Defaults Defaults `yaml:"defaults"`
}

// Pins is the BCM pin assignment.
type Pins struct {
	Up    int `yaml:"up"`
	Down  int `yaml:"down"`
	Enter int `yaml:"enter"`

	Heater int `yaml:"heater"`
	Fan    int `yaml:"fan"`
	Mister int `yaml:"mister"`
	Lamp   int `yaml:"lamp"`
}

// Bus names the I2C bus and device addresses.
type Bus struct {
	Name        string `yaml:"name"` // empty selects the first available bus
	ProbeAddr   uint16 `yaml:"probe_addr"`
	ADCAddr     uint16 `yaml:"adc_addr"`
	DisplayAddr uint16 `yaml:"display_addr"`
}

// Light is the LDR calibration: the raw ADC range mapped linearly onto
// 0-100 percent.
type Light struct {
	RawMin int `yaml:"raw_min"`
	RawMax int `yaml:"raw_max"`
}

// Defaults are the threshold values loaded at startup. They live only in
// memory afterwards; edits do not persist across restarts.
type Defaults struct {
	TempLow     int    `yaml:"temp_low"`
	TempHigh    int    `yaml:"temp_high"`
	HumLow      int    `yaml:"hum_low"`
	HumHigh     int    `yaml:"hum_high"`
	LightTarget int    `yaml:"light_target"`
	Unit        string `yaml:"unit"` // "C" or "F"
}

// Default returns the reference-build configuration.
func Default() Config {
	return Config{
		Pins: Pins{
			Up:     gpio.DefaultPinUp,
			Down:   gpio.DefaultPinDown,
			Enter:  gpio.DefaultPinEnter,
			Heater: gpio.DefaultPinHeater,
			Fan:    gpio.DefaultPinFan,
			Mister: gpio.DefaultPinMister,
			Lamp:   gpio.DefaultPinLamp,
		},
		Bus: Bus{
			ProbeAddr:   sensor.DefaultBME280Addr,
			ADCAddr:     sensor.DefaultADS1115Addr,
			DisplayAddr: display.DefaultPCF8574Addr,
		},
		Light: Light{
			RawMin: 0,
			RawMax: 26400,
		},
		Defaults: Defaults{
			TempLow:     22,
			TempHigh:    28,
			HumLow:      40,
			HumHigh:     70,
			LightTarget: 50,
			Unit:        "C",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Light.RawMax <= c.Light.RawMin {
		return fmt.Errorf("light raw range empty: [%d, %d]", c.Light.RawMin, c.Light.RawMax)
	}
	switch c.Defaults.Unit {
	case "C", "F":
	default:
		return fmt.Errorf("unknown unit %q (want C or F)", c.Defaults.Unit)
	}
	return nil
}

// GPIOPins converts to the gpio package's pin bundle.
func (c Config) GPIOPins() gpio.Pins {
	return gpio.Pins{
		Up:     c.Pins.Up,
		Down:   c.Pins.Down,
		Enter:  c.Pins.Enter,
		Heater: c.Pins.Heater,
		Fan:    c.Pins.Fan,
		Mister: c.Pins.Mister,
		Lamp:   c.Pins.Lamp,
	}
}

// SettingsUnit returns the configured startup unit.
func (d Defaults) SettingsUnit() settings.Unit {
	if d.Unit == "F" {
		return settings.Fahrenheit
	}
	return settings.Celsius
}

// Values returns the startup thresholds in slot order.
func (d Defaults) Values() [settings.NumSlots]int {
	return [settings.NumSlots]int{d.TempLow, d.TempHigh, d.HumLow, d.HumHigh, d.LightTarget}
}
