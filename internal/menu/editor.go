// Package menu implements the interactive settings editor. While a session
// runs it owns the control loop's iterations, the display, and the settings
// store; the control engine is paused until it returns.
package menu

import (
	"log"
	"time"

	"github.com/sweeney/terrarium-controller/internal/display"
	"github.com/sweeney/terrarium-controller/internal/gpio"
	"github.com/sweeney/terrarium-controller/internal/input"
	"github.com/sweeney/terrarium-controller/internal/settings"
)

// DefaultTimeout is how long a session survives without input before it
// force-exits. An abandoned edit reverts.
const DefaultTimeout = 15 * time.Second

// DefaultPoll is the idle wait between button polling iterations.
const DefaultPoll = 50 * time.Millisecond

type state int

const (
	navigating state = iota
	editing
)

// Outcome summarizes a finished session for logging and status counters.
type Outcome struct {
	// Commits is the number of edits confirmed with Enter.
	Commits int

	// UnitToggles is the number of Up+Down chord unit flips.
	UnitToggles int

	// Reverted reports that an in-progress edit was discarded on timeout.
	Reverted bool
}

// Session is one menu activation. Create with NewSession, run once with Run.
type Session struct {
	deb     *input.Debouncer
	render  *display.Renderer
	store   *settings.Store
	timeout time.Duration
	poll    time.Duration
	now     func() time.Time
	sleep   func(time.Duration)
}

// NewSession creates a Session. now and sleep may be nil for the real clock;
// tests inject both to drive the state machine deterministically.
func NewSession(deb *input.Debouncer, render *display.Renderer, store *settings.Store, timeout, poll time.Duration, now func() time.Time, sleep func(time.Duration)) *Session {
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Session{
		deb:     deb,
		render:  render,
		store:   store,
		timeout: timeout,
		poll:    poll,
		now:     now,
		sleep:   sleep,
	}
}

// Run blocks until the session ends. The only exit is the inactivity
// timeout: committed edits are already applied, and an edit still open when
// the deadline passes is restored to its pre-edit value. The caller must
// re-arm the control engine afterwards so changed thresholds take effect
// immediately.
func (s *Session) Run() Outcome {
	var out Outcome

	st := navigating
	sel := settings.Slot(0)
	origValue := 0
	lastInteraction := s.now()

	s.draw(sel, st)

	for {
		// One debounced sample per button per iteration.
		up := s.deb.Pressed(gpio.Up)
		down := s.deb.Pressed(gpio.Down)
		enter := s.deb.Pressed(gpio.Enter)

		interacted := up || down || enter

		switch {
		case up && down:
			// Chord: unit toggle, navigation only. While editing the two
			// presses cancel out.
			if st == navigating {
				unit := s.store.ToggleUnit()
				out.UnitToggles++
				log.Printf("menu: unit toggled to %s", unit)
			}

		case enter:
			if st == navigating {
				st = editing
				origValue = s.store.Get(sel)
			} else {
				st = navigating
				out.Commits++
				log.Printf("menu: %s committed at %d", sel.Label(), s.store.Get(sel))
			}

		case up:
			if st == navigating {
				sel = (sel + settings.NumSlots - 1) % settings.NumSlots
			} else {
				s.store.Adjust(sel, +1)
			}

		case down:
			if st == navigating {
				sel = (sel + 1) % settings.NumSlots
			} else {
				s.store.Adjust(sel, -1)
			}
		}

		if interacted {
			lastInteraction = s.now()
		} else if s.now().Sub(lastInteraction) >= s.timeout {
			if st == editing {
				s.store.Set(sel, origValue)
				out.Reverted = true
				log.Printf("menu: timeout, %s reverted to %d", sel.Label(), origValue)
			}
			break
		}

		s.draw(sel, st)
		s.sleep(s.poll)
	}

	if err := s.render.Clear(); err != nil {
		log.Printf("display clear error: %v", err)
	}
	return out
}

func (s *Session) draw(sel settings.Slot, st state) {
	err := s.render.Menu(sel.Label(), s.store.Get(sel), s.store.Unit().Symbol(), st == editing)
	if err != nil {
		log.Printf("display render error: %v", err)
	}
}
