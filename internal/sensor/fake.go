package sensor

import "errors"

// Sample is one scripted sensor cycle.
type Sample struct {
	Temperature float64
	Humidity    float64
	Light       int

	// Invalid makes ReadClimate fail with ErrInvalidReading for this cycle.
	Invalid bool
}

// Fake is a test double that returns scripted sensor samples. Each
// ReadClimate call consumes the next sample; when samples are exhausted the
// last one repeats. ReadLight returns the light value of the sample most
// recently consumed, so a ReadClimate/ReadLight pair sees one coherent
// cycle.
type Fake struct {
	// Samples contains the scripted cycles.
	Samples []Sample

	// index tracks the next sample to consume
	index int

	// current is the sample most recently consumed by ReadClimate
	current Sample

	// Closed tracks if Close was called
	Closed bool

	// LightError, if set, will be returned by ReadLight()
	LightError error
}

// NewFake creates a Fake with the given samples.
func NewFake(samples []Sample) *Fake {
	f := &Fake{Samples: samples}
	if len(samples) > 0 {
		f.current = samples[0]
	}
	return f
}

// ReadClimate consumes the next sample. Invalid samples are consumed too, so
// a scripted fault does not stall the script.
func (f *Fake) ReadClimate() (float64, float64, error) {
	if len(f.Samples) == 0 {
		return 0, 0, errors.New("no samples configured")
	}

	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	f.current = s

	if s.Invalid {
		return 0, 0, ErrInvalidReading
	}
	return s.Temperature, s.Humidity, nil
}

// ReadLight returns the light value from the current sample.
func (f *Fake) ReadLight() (int, error) {
	if f.LightError != nil {
		return 0, f.LightError
	}
	return f.current.Light, nil
}

// Close marks the reader as closed.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script to the first sample.
func (f *Fake) Reset() {
	f.index = 0
	if len(f.Samples) > 0 {
		f.current = f.Samples[0]
	}
	f.Closed = false
}
