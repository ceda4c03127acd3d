package display

import (
	"fmt"

	"github.com/sweeney/terrarium-controller/internal/control"
)

// Layout is the table of fixed screen coordinates. The temperature line and
// humidity line share column positions, so both rows read the same way.
type Layout struct {
	TempRow int // reading rows
	HumRow  int

	TagCol   int // 'T'/'H' tag
	ValueCol int // reading value, %4.1f
	TrendCol int // rise/fall/steady status glyph
	LowCol   int // low threshold, %2d
	HighCol  int // high threshold, %2d

	LightTagCol  int // 'L' tag on the humidity row
	LightCol     int // light target, %2d
	LampGlyphCol int // lamp indicator, top-right corner

	MenuMarkerCol int // selection marker in the menu view
	MenuLabelCol  int // slot label
	MenuValueCol  int // slot value, %2d
	MenuUnitCol   int // active unit character, top-right
}

// DefaultLayout is the screen map for the 20x2 panel.
var DefaultLayout = Layout{
	TempRow: 0,
	HumRow:  1,

	TagCol:   0,
	ValueCol: 1,
	TrendCol: 6,
	LowCol:   8,
	HighCol:  11,

	LightTagCol:  14,
	LightCol:     15,
	LampGlyphCol: 19,

	MenuMarkerCol: 0,
	MenuLabelCol:  2,
	MenuValueCol:  16,
	MenuUnitCol:   19,
}

// Renderer draws the two screens (status and menu) through a Display using
// a Layout. Render errors are returned to the caller, which logs and keeps
// running; a dead display never stops the controller.
type Renderer struct {
	d Display
	l Layout
}

// NewRenderer creates a Renderer with the default layout.
func NewRenderer(d Display) *Renderer {
	return &Renderer{d: d, l: DefaultLayout}
}

// Status draws the full main screen: both readings with their thresholds,
// the light target, and the lamp indicator.
func (r *Renderer) Status(reading control.Reading, values [5]int, unit byte) error {
	row := func(rowIdx int, tag byte, value float64, low, high int) error {
		if err := r.d.SetCursor(r.l.TagCol, rowIdx); err != nil {
			return err
		}
		if err := r.d.Print(string(tag)); err != nil {
			return err
		}
		if err := r.d.SetCursor(r.l.ValueCol, rowIdx); err != nil {
			return err
		}
		if err := r.d.Print(fmt.Sprintf("%4.1f", value)); err != nil {
			return err
		}
		if err := r.d.SetCursor(r.l.LowCol, rowIdx); err != nil {
			return err
		}
		if err := r.d.Print(fmt.Sprintf("%2d-", low)); err != nil {
			return err
		}
		if err := r.d.SetCursor(r.l.HighCol, rowIdx); err != nil {
			return err
		}
		return r.d.Print(fmt.Sprintf("%2d", high))
	}

	if err := row(r.l.TempRow, unit, reading.Temperature, values[0], values[1]); err != nil {
		return err
	}
	if err := row(r.l.HumRow, 'H', reading.Humidity, values[2], values[3]); err != nil {
		return err
	}

	if err := r.d.SetCursor(r.l.LightTagCol, r.l.HumRow); err != nil {
		return err
	}
	return r.d.Print(fmt.Sprintf("L%2d", values[4]))
}

// Trends refreshes the two status glyphs on an eligible control tick.
func (r *Renderer) Trends(temp, hum control.Trend) error {
	if err := r.d.SetCursor(r.l.TrendCol, r.l.TempRow); err != nil {
		return err
	}
	if err := r.d.WriteGlyph(trendGlyph(temp)); err != nil {
		return err
	}
	if err := r.d.SetCursor(r.l.TrendCol, r.l.HumRow); err != nil {
		return err
	}
	return r.d.WriteGlyph(trendGlyph(hum))
}

// Lamp draws or blanks the lamp indicator in the top-right corner.
func (r *Renderer) Lamp(on bool) error {
	if err := r.d.SetCursor(r.l.LampGlyphCol, r.l.TempRow); err != nil {
		return err
	}
	if on {
		return r.d.WriteGlyph(GlyphLamp)
	}
	return r.d.Print(" ")
}

// Menu draws the menu screen: title and unit on the top row, the focused
// slot with its live value on the bottom row. The marker distinguishes
// navigating ('>') from editing ('=').
func (r *Renderer) Menu(label string, value int, unit byte, editing bool) error {
	if err := r.d.Clear(); err != nil {
		return err
	}
	if err := r.d.SetCursor(r.l.MenuLabelCol, 0); err != nil {
		return err
	}
	if err := r.d.Print("Settings"); err != nil {
		return err
	}
	if err := r.d.SetCursor(r.l.MenuUnitCol, 0); err != nil {
		return err
	}
	if err := r.d.Print(string(unit)); err != nil {
		return err
	}

	marker := ">"
	if editing {
		marker = "="
	}
	if err := r.d.SetCursor(r.l.MenuMarkerCol, 1); err != nil {
		return err
	}
	if err := r.d.Print(marker); err != nil {
		return err
	}
	if err := r.d.SetCursor(r.l.MenuLabelCol, 1); err != nil {
		return err
	}
	if err := r.d.Print(label); err != nil {
		return err
	}
	if err := r.d.SetCursor(r.l.MenuValueCol, 1); err != nil {
		return err
	}
	return r.d.Print(fmt.Sprintf("%2d", value))
}

// Clear blanks the whole surface, used when leaving the menu.
func (r *Renderer) Clear() error {
	return r.d.Clear()
}

func trendGlyph(t control.Trend) Glyph {
	switch t {
	case control.TrendRising:
		return GlyphRise
	case control.TrendFalling:
		return GlyphFall
	default:
		return GlyphSteady
	}
}
