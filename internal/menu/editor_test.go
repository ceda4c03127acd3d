package menu

import (
	"testing"
	"time"

	"github.com/sweeney/terrarium-controller/internal/display"
	"github.com/sweeney/terrarium-controller/internal/gpio"
	"github.com/sweeney/terrarium-controller/internal/input"
	"github.com/sweeney/terrarium-controller/internal/settings"
)

// harness drives a session deterministically: sleeping advances a fake
// clock and steps the scripted button frames, so every debounce re-sample
// and every polling iteration sees exactly the scripted levels.
type harness struct {
	buttons *gpio.FakeButtons
	screen  *display.Fake
	store   *settings.Store
	clock   time.Time
}

func newHarness(frames []gpio.Frame) *harness {
	return &harness{
		buttons: gpio.NewFakeButtons(frames),
		screen:  display.NewFake(),
		store:   settings.NewStore(settings.Celsius, [settings.NumSlots]int{22, 28, 40, 70, 50}),
		clock:   time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (h *harness) now() time.Time {
	return h.clock
}

func (h *harness) sleep(d time.Duration) {
	h.clock = h.clock.Add(d)
	h.buttons.Advance()
}

func (h *harness) run(t *testing.T) Outcome {
	t.Helper()
	deb := input.NewDebouncer(h.buttons, 100*time.Millisecond, h.sleep)
	render := display.NewRenderer(h.screen)
	session := NewSession(deb, render, h.store, DefaultTimeout, DefaultPoll, h.now, h.sleep)
	return session.Run()
}

// press scripts one confirmed press: the level holds through the debounce
// re-sample.
func press(b gpio.Button) []gpio.Frame {
	var f gpio.Frame
	f[b] = true
	return []gpio.Frame{f, f}
}

// chord scripts Up and Down held together long enough for both debounced
// samples within one polling iteration.
func chord() []gpio.Frame {
	f := gpio.Frame{true, true, false}
	return []gpio.Frame{f, f, f}
}

// idle is one polling iteration with nothing pressed.
func idle() []gpio.Frame {
	return []gpio.Frame{{}}
}

func script(parts ...[]gpio.Frame) []gpio.Frame {
	var frames []gpio.Frame
	for _, p := range parts {
		frames = append(frames, p...)
	}
	// Trailing idle frame repeats until the timeout fires.
	return append(frames, gpio.Frame{})
}

func TestTimeoutExitsWithoutChanges(t *testing.T) {
	h := newHarness(script())
	before := h.store.Values()

	out := h.run(t)

	if out.Commits != 0 || out.UnitToggles != 0 || out.Reverted {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if h.store.Values() != before {
		t.Errorf("settings changed by an idle session: %v -> %v", before, h.store.Values())
	}
	if h.clock.Sub(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)) < DefaultTimeout {
		t.Error("session exited before the inactivity timeout")
	}
	if h.screen.Cleared == 0 {
		t.Error("display not cleared on exit")
	}
}

func TestEditCommit(t *testing.T) {
	// Enter (edit slot 0), Up twice, Enter (commit), then timeout.
	h := newHarness(script(
		press(gpio.Enter),
		press(gpio.Up),
		press(gpio.Up),
		press(gpio.Enter),
	))

	out := h.run(t)

	if got := h.store.Get(settings.TempLow); got != 24 {
		t.Errorf("TempLow: got %d, want 24", got)
	}
	if out.Commits != 1 {
		t.Errorf("commits: got %d, want 1", out.Commits)
	}
	if out.Reverted {
		t.Error("committed edit must not be reported as reverted")
	}
}

func TestNavigationDownSelectsSlot(t *testing.T) {
	// Down twice navigates to HumLow, then edit it down by one.
	h := newHarness(script(
		press(gpio.Down),
		press(gpio.Down),
		press(gpio.Enter),
		press(gpio.Down),
		press(gpio.Enter),
	))

	h.run(t)

	if got := h.store.Get(settings.HumLow); got != 39 {
		t.Errorf("HumLow: got %d, want 39", got)
	}
}

func TestNavigationUpWrapsToLight(t *testing.T) {
	// Up from slot 0 wraps to slot 4 (light target).
	h := newHarness(script(
		press(gpio.Up),
		press(gpio.Enter),
		press(gpio.Up),
		press(gpio.Enter),
	))

	h.run(t)

	if got := h.store.Get(settings.LightTarget); got != 51 {
		t.Errorf("LightTarget: got %d, want 51", got)
	}
}

func TestTimeoutRevertsOpenEdit(t *testing.T) {
	// Enter (edit TempLow), Up three times, then walk away.
	h := newHarness(script(
		press(gpio.Enter),
		press(gpio.Up),
		press(gpio.Up),
		press(gpio.Up),
	))

	out := h.run(t)

	if got := h.store.Get(settings.TempLow); got != 22 {
		t.Errorf("TempLow after timeout: got %d, want 22 (reverted)", got)
	}
	if !out.Reverted {
		t.Error("expected Reverted outcome")
	}
	if out.Commits != 0 {
		t.Errorf("commits: got %d, want 0", out.Commits)
	}
}

func TestChordTogglesUnit(t *testing.T) {
	h := newHarness(script(chord()))

	out := h.run(t)

	if h.store.Unit() != settings.Fahrenheit {
		t.Errorf("unit: got %s, want fahrenheit", h.store.Unit())
	}
	if got := h.store.Get(settings.TempLow); got != 72 {
		t.Errorf("TempLow after toggle: got %d, want 72", got)
	}
	if out.UnitToggles != 1 {
		t.Errorf("unit toggles: got %d, want 1", out.UnitToggles)
	}
	if out.Commits != 0 {
		t.Error("chord must not count as a commit")
	}
}

func TestChordIgnoredWhileEditing(t *testing.T) {
	h := newHarness(script(
		press(gpio.Enter),
		chord(),
	))

	h.run(t)

	if h.store.Unit() != settings.Celsius {
		t.Errorf("unit: got %s, want celsius (chord ignored while editing)", h.store.Unit())
	}
	if got := h.store.Get(settings.TempLow); got != 22 {
		t.Errorf("TempLow: got %d, want 22", got)
	}
}

func TestEditClampsAtBound(t *testing.T) {
	// Navigate to light (Up wraps), edit, and push far past the cap.
	parts := [][]gpio.Frame{
		press(gpio.Up),
		press(gpio.Enter),
	}
	for i := 0; i < 10; i++ {
		parts = append(parts, press(gpio.Up))
	}
	parts = append(parts, press(gpio.Enter))

	h := newHarness(script(parts...))
	h.store.Set(settings.LightTarget, 95)

	h.run(t)

	if got := h.store.Get(settings.LightTarget); got != 99 {
		t.Errorf("LightTarget: got %d, want 99 (clamped)", got)
	}
}
