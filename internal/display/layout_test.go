package display

import (
	"testing"

	"github.com/sweeney/terrarium-controller/internal/control"
)

func testValues() [5]int {
	return [5]int{22, 28, 40, 70, 50}
}

func TestStatusLayout(t *testing.T) {
	f := NewFake()
	r := NewRenderer(f)

	reading := control.Reading{Temperature: 23.5, Humidity: 56.2, Light: 50}
	if err := r.Status(reading, testValues(), 'C'); err != nil {
		t.Fatalf("Status: %v", err)
	}

	if got := f.Row(0); got != "C23.5   22-28       " {
		t.Errorf("row 0: %q", got)
	}
	if got := f.Row(1); got != "H56.2   40-70 L50   " {
		t.Errorf("row 1: %q", got)
	}
}

func TestStatusFahrenheitTag(t *testing.T) {
	f := NewFake()
	r := NewRenderer(f)

	reading := control.Reading{Temperature: 74.3, Humidity: 56.2, Light: 50}
	if err := r.Status(reading, [5]int{72, 82, 40, 70, 50}, 'F'); err != nil {
		t.Fatalf("Status: %v", err)
	}
	if got := f.CharAt(DefaultLayout.TagCol, DefaultLayout.TempRow); got != 'F' {
		t.Errorf("temperature tag: %q", got)
	}
}

func TestTrendsGlyphColumn(t *testing.T) {
	f := NewFake()
	r := NewRenderer(f)

	if err := r.Trends(control.TrendRising, control.TrendFalling); err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if got := f.CharAt(DefaultLayout.TrendCol, DefaultLayout.TempRow); got != '^' {
		t.Errorf("temperature trend glyph: %q", got)
	}
	if got := f.CharAt(DefaultLayout.TrendCol, DefaultLayout.HumRow); got != 'v' {
		t.Errorf("humidity trend glyph: %q", got)
	}

	if err := r.Trends(control.TrendSteady, control.TrendSteady); err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if got := f.CharAt(DefaultLayout.TrendCol, DefaultLayout.TempRow); got != '-' {
		t.Errorf("steady trend glyph: %q", got)
	}
}

func TestLampCorner(t *testing.T) {
	f := NewFake()
	r := NewRenderer(f)

	if err := r.Lamp(true); err != nil {
		t.Fatalf("Lamp: %v", err)
	}
	if got := f.CharAt(DefaultLayout.LampGlyphCol, DefaultLayout.TempRow); got != '*' {
		t.Errorf("lamp glyph: %q", got)
	}

	if err := r.Lamp(false); err != nil {
		t.Fatalf("Lamp: %v", err)
	}
	if got := f.CharAt(DefaultLayout.LampGlyphCol, DefaultLayout.TempRow); got != ' ' {
		t.Errorf("lamp cleared: %q", got)
	}
}

func TestMenuScreen(t *testing.T) {
	f := NewFake()
	r := NewRenderer(f)

	if err := r.Menu("Temp low", 22, 'C', false); err != nil {
		t.Fatalf("Menu: %v", err)
	}
	if got := f.Row(0); got != "  Settings         C" {
		t.Errorf("row 0: %q", got)
	}
	if got := f.Row(1); got != "> Temp low      22  " {
		t.Errorf("row 1: %q", got)
	}

	if err := r.Menu("Light", 99, 'F', true); err != nil {
		t.Fatalf("Menu: %v", err)
	}
	if got := f.CharAt(DefaultLayout.MenuMarkerCol, 1); got != '=' {
		t.Errorf("editing marker: %q", got)
	}
	if got := f.CharAt(DefaultLayout.MenuUnitCol, 0); got != 'F' {
		t.Errorf("unit char: %q", got)
	}
	// Clear between draws: the old label must not linger.
	if got := f.Row(1); got != "= Light         99  " {
		t.Errorf("row 1: %q", got)
	}
}
