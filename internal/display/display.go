// Package display drives the 20x2 character display with hardware
// abstraction. The real implementation is an HD44780 behind a PCF8574 I2C
// backpack; the fake implementation records a character grid for tests.
//
// All screen coordinates live in the Layout table so control and menu logic
// never hard-code row/column positions.
package display

// Grid dimensions of the character surface.
const (
	Cols = 20
	Rows = 2
)

// Glyph identifies a custom character loaded into CGRAM at startup.
type Glyph byte

const (
	GlyphRise   Glyph = 0 // value trending up
	GlyphFall   Glyph = 1 // value trending down
	GlyphSteady Glyph = 2 // value holding
	GlyphLamp   Glyph = 3 // lamp output asserted

	numGlyphs = 4
)

// Display positions a cursor and writes characters on the 20x2 surface.
type Display interface {
	// SetCursor moves the write position to (col, row).
	SetCursor(col, row int) error

	// Print writes text at the cursor, advancing it.
	Print(text string) error

	// WriteGlyph writes a custom glyph at the cursor, advancing it.
	WriteGlyph(g Glyph) error

	// Clear blanks the surface and homes the cursor.
	Clear() error

	// Close releases display resources.
	Close() error
}
