package gpio

import (
	"errors"
	"testing"

	"github.com/sweeney/terrarium-controller/internal/control"
)

func TestFakeButtonsReturnsCurrentFrame(t *testing.T) {
	f := NewFakeButtons([]Frame{
		{true, false, false},
		{false, true, false},
	})

	for b, want := range map[Button]bool{Up: true, Down: false, Enter: false} {
		got, err := f.Level(b)
		if err != nil {
			t.Fatalf("Level(%s): %v", b, err)
		}
		if got != want {
			t.Errorf("Level(%s) = %v, want %v", b, got, want)
		}
	}

	f.Advance()
	got, err := f.Level(Down)
	if err != nil {
		t.Fatalf("Level(down): %v", err)
	}
	if !got {
		t.Error("expected down pressed in second frame")
	}
}

func TestFakeButtonsRepeatsLastFrame(t *testing.T) {
	f := NewFakeButtons([]Frame{{false, false, true}})

	for i := 0; i < 3; i++ {
		f.Advance()
		got, err := f.Level(Enter)
		if err != nil {
			t.Fatalf("Level: %v", err)
		}
		if !got {
			t.Errorf("advance %d: expected last frame to repeat", i)
		}
	}
}

func TestFakeButtonsNoFrames(t *testing.T) {
	f := NewFakeButtons(nil)
	if _, err := f.Level(Up); err == nil {
		t.Error("expected error with no frames configured")
	}
}

func TestFakeButtonsLevelError(t *testing.T) {
	f := NewFakeButtons([]Frame{{true, true, true}})
	f.LevelError = errors.New("nope")
	if _, err := f.Level(Up); err == nil {
		t.Error("expected injected error")
	}
}

func TestFakeButtonsReset(t *testing.T) {
	f := NewFakeButtons([]Frame{
		{true, false, false},
		{false, false, false},
	})
	f.Advance()
	f.Reset()

	got, err := f.Level(Up)
	if err != nil {
		t.Fatalf("Level: %v", err)
	}
	if !got {
		t.Error("expected first frame after reset")
	}
}

func TestFakeOutputsRecordsApplies(t *testing.T) {
	f := NewFakeOutputs()

	if f.Last() != (control.Outputs{}) {
		t.Errorf("expected zero outputs before any apply, got %+v", f.Last())
	}

	first := control.Outputs{Heater: true}
	second := control.Outputs{Fan: true, Lamp: true}
	if err := f.Apply(first); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := f.Apply(second); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(f.Applied) != 2 {
		t.Fatalf("applied count: got %d, want 2", len(f.Applied))
	}
	if f.Applied[0] != first {
		t.Errorf("first apply: got %+v", f.Applied[0])
	}
	if f.Last() != second {
		t.Errorf("last apply: got %+v", f.Last())
	}
}

func TestFakeOutputsApplyError(t *testing.T) {
	f := NewFakeOutputs()
	f.ApplyError = errors.New("relay stuck")
	if err := f.Apply(control.Outputs{}); err == nil {
		t.Error("expected injected error")
	}
	if len(f.Applied) != 0 {
		t.Error("failed apply must not be recorded")
	}
}

func TestButtonString(t *testing.T) {
	names := map[Button]string{Up: "up", Down: "down", Enter: "enter"}
	for b, want := range names {
		if b.String() != want {
			t.Errorf("Button(%d).String() = %q, want %q", b, b.String(), want)
		}
	}
}
