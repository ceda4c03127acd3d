package sensor

import (
	"fmt"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// Default I2C addresses for the reference build.
const (
	DefaultBME280Addr  = 0x76
	DefaultADS1115Addr = 0x48
)

// Plausibility window for the BME280. Readings outside it are treated the
// same as a failed bus transaction.
const (
	minPlausibleTemp = -20.0
	maxPlausibleTemp = 80.0
)

// Real reads a BME280 climate probe and an LDR divider behind an ADS1115,
// both on the same I2C bus.
type Real struct {
	bus   i2c.BusCloser
	probe *bmxx80.Dev
	light analog.PinADC
}

// NewReal opens the I2C bus (empty name selects the first available) and
// initializes both devices.
func NewReal(busName string, probeAddr, adcAddr uint16) (*Real, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}

	probe, err := bmxx80.NewI2C(bus, probeAddr, &bmxx80.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init bme280 at %#x: %w", probeAddr, err)
	}

	opts := ads1x15.DefaultOpts
	opts.I2cAddress = adcAddr
	adc, err := ads1x15.NewADS1115(bus, &opts)
	if err != nil {
		probe.Halt()
		bus.Close()
		return nil, fmt.Errorf("init ads1115 at %#x: %w", adcAddr, err)
	}

	light, err := adc.PinForChannel(ads1x15.Channel0, 3300*physic.MilliVolt, 1*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		probe.Halt()
		bus.Close()
		return nil, fmt.Errorf("request adc channel: %w", err)
	}

	return &Real{bus: bus, probe: probe, light: light}, nil
}

// ReadClimate senses the BME280. Bus errors and implausible values both
// come back wrapping ErrInvalidReading so the caller holds the previous
// sample either way.
func (r *Real) ReadClimate() (float64, float64, error) {
	var env physic.Env
	if err := r.probe.Sense(&env); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidReading, err)
	}

	temp := env.Temperature.Celsius()
	hum := float64(env.Humidity) / float64(physic.PercentRH)

	if temp < minPlausibleTemp || temp > maxPlausibleTemp || hum < 0 || hum > 100 {
		return 0, 0, fmt.Errorf("%w: implausible sample temp=%.1f hum=%.1f", ErrInvalidReading, temp, hum)
	}
	return temp, hum, nil
}

// ReadLight returns the raw ADS1115 conversion for the LDR channel.
func (r *Real) ReadLight() (int, error) {
	sample, err := r.light.Read()
	if err != nil {
		return 0, fmt.Errorf("read light channel: %w", err)
	}
	return int(sample.Raw), nil
}

// Close halts both devices and releases the bus.
func (r *Real) Close() error {
	var errs []error
	if r.light != nil {
		if err := r.light.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt adc: %w", err))
		}
	}
	if r.probe != nil {
		if err := r.probe.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt probe: %w", err))
		}
	}
	if r.bus != nil {
		if err := r.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close bus: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
