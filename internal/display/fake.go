package display

import "strings"

// Fake records writes into an in-memory character grid for test assertions.
// Custom glyphs are stored as distinct runes so tests can tell them apart
// from printable text.
type Fake struct {
	// grid holds the current screen contents
	grid [Rows][Cols]rune

	col, row int

	// Cleared counts Clear calls.
	Cleared int

	// Closed tracks if Close was called
	Closed bool

	// WriteError, if set, will be returned by every write method
	WriteError error
}

// Runes used to represent glyphs in the fake grid.
var glyphRunes = [numGlyphs]rune{'^', 'v', '-', '*'}

// NewFake creates a blank Fake display.
func NewFake() *Fake {
	f := &Fake{}
	f.blank()
	return f
}

func (f *Fake) blank() {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			f.grid[r][c] = ' '
		}
	}
	f.col, f.row = 0, 0
}

// SetCursor moves the write position.
func (f *Fake) SetCursor(col, row int) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.col, f.row = col, row
	return nil
}

// Print writes text at the cursor. Writes past the right edge are dropped,
// matching what the panel does.
func (f *Fake) Print(text string) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	for _, ch := range text {
		f.put(ch)
	}
	return nil
}

// WriteGlyph writes the rune standing in for the glyph.
func (f *Fake) WriteGlyph(g Glyph) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	if int(g) < len(glyphRunes) {
		f.put(glyphRunes[g])
	} else {
		f.put('?')
	}
	return nil
}

// Clear blanks the grid and homes the cursor.
func (f *Fake) Clear() error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.blank()
	f.Cleared++
	return nil
}

// Close marks the display as closed.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

func (f *Fake) put(ch rune) {
	if f.row < 0 || f.row >= Rows || f.col < 0 || f.col >= Cols {
		f.col++
		return
	}
	f.grid[f.row][f.col] = ch
	f.col++
}

// Row returns one row of the grid as a string, for assertions.
func (f *Fake) Row(row int) string {
	if row < 0 || row >= Rows {
		return ""
	}
	return string(f.grid[row][:])
}

// Screen returns both rows joined by a newline.
func (f *Fake) Screen() string {
	rows := make([]string, Rows)
	for r := 0; r < Rows; r++ {
		rows[r] = f.Row(r)
	}
	return strings.Join(rows, "\n")
}

// CharAt returns the rune at (col, row).
func (f *Fake) CharAt(col, row int) rune {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return 0
	}
	return f.grid[row][col]
}
