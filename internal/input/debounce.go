// Package input turns raw button levels into clean press observations.
package input

import (
	"log"
	"time"

	"github.com/sweeney/terrarium-controller/internal/gpio"
)

// DefaultSettle is how long a button must stay asserted before a press is
// believed. Contact bounce settles well inside this window.
const DefaultSettle = 100 * time.Millisecond

// Debouncer confirms button presses by sampling twice across a settle wait.
// It keeps no state between calls; each Pressed call stands alone and is
// made at most once per button per polling iteration. The settle wait is
// the only deliberate blocking delay in the input path.
type Debouncer struct {
	reader gpio.ButtonReader
	settle time.Duration
	sleep  func(time.Duration)
}

// NewDebouncer creates a Debouncer over the given reader. sleep may be nil,
// in which case time.Sleep is used; tests inject their own to keep runs
// instant and to advance fake clocks.
func NewDebouncer(reader gpio.ButtonReader, settle time.Duration, sleep func(time.Duration)) *Debouncer {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Debouncer{reader: reader, settle: settle, sleep: sleep}
}

// Pressed samples the button, and if asserted waits the settle interval and
// samples again. True only if the level held through the wait. Read errors
// are logged and count as not pressed.
func (d *Debouncer) Pressed(b gpio.Button) bool {
	level, err := d.reader.Level(b)
	if err != nil {
		log.Printf("button %s read error: %v", b, err)
		return false
	}
	if !level {
		return false
	}

	d.sleep(d.settle)

	level, err = d.reader.Level(b)
	if err != nil {
		log.Printf("button %s read error: %v", b, err)
		return false
	}
	return level
}
