// Package sensor reads the climate probe and the light sensor with hardware
// abstraction. The real implementation talks to a BME280 and an ADS1115 on
// the I2C bus; the fake implementation allows testing without hardware.
package sensor

import "errors"

// ErrInvalidReading signals a failed probe read. The control loop treats it
// as "hold the previous reading", never as a fatal condition.
var ErrInvalidReading = errors.New("sensor: invalid reading")

// Reader reads the enclosure sensors.
type Reader interface {
	// ReadClimate returns temperature (degrees Celsius) and relative
	// humidity (percent). A failed or implausible probe read returns an
	// error wrapping ErrInvalidReading.
	ReadClimate() (temperature, humidity float64, err error)

	// ReadLight returns the raw ADC value from the LDR divider.
	ReadLight() (int, error)

	// Close releases sensor resources.
	Close() error
}
