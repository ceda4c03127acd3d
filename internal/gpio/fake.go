package gpio

import (
	"errors"

	"github.com/sweeney/terrarium-controller/internal/control"
)

// Frame is one instantaneous snapshot of all three button levels.
type Frame [NumButtons]bool

// FakeButtons is a test double that returns scripted button levels. The
// script advances only when Advance is called, so a test controls exactly
// which levels each sample within a polling iteration sees.
type FakeButtons struct {
	// Frames contains the scripted levels. Level reads the current frame;
	// when frames are exhausted the last one repeats.
	Frames []Frame

	// index tracks the current frame
	index int

	// Closed tracks if Close was called
	Closed bool

	// LevelError, if set, will be returned by Level()
	LevelError error
}

// NewFakeButtons creates a FakeButtons with the given frames.
func NewFakeButtons(frames []Frame) *FakeButtons {
	return &FakeButtons{Frames: frames}
}

// Level returns the scripted level for the button in the current frame.
func (f *FakeButtons) Level(b Button) (bool, error) {
	if f.LevelError != nil {
		return false, f.LevelError
	}
	if len(f.Frames) == 0 {
		return false, errors.New("no frames configured")
	}
	return f.Frames[f.index][b], nil
}

// Advance moves to the next frame. Past the end, the last frame repeats.
func (f *FakeButtons) Advance() {
	if f.index < len(f.Frames)-1 {
		f.index++
	}
}

// Close marks the reader as closed.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script to the first frame.
func (f *FakeButtons) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeOutputs records every Apply call for test assertions.
type FakeOutputs struct {
	// Applied contains each Outputs value passed to Apply, in order.
	Applied []control.Outputs

	// ApplyError, if set, will be returned by Apply()
	ApplyError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeOutputs creates an empty FakeOutputs.
func NewFakeOutputs() *FakeOutputs {
	return &FakeOutputs{}
}

// Apply records the requested output levels.
func (f *FakeOutputs) Apply(o control.Outputs) error {
	if f.ApplyError != nil {
		return f.ApplyError
	}
	f.Applied = append(f.Applied, o)
	return nil
}

// Last returns the most recently applied outputs, or the zero value if
// Apply was never called.
func (f *FakeOutputs) Last() control.Outputs {
	if len(f.Applied) == 0 {
		return control.Outputs{}
	}
	return f.Applied[len(f.Applied)-1]
}

// Close marks the writer as closed.
func (f *FakeOutputs) Close() error {
	f.Closed = true
	return nil
}
