package display

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// DefaultPCF8574Addr is the usual backpack address (A0-A2 open).
const DefaultPCF8574Addr = 0x27

// PCF8574 bit assignment on the common HD44780 backpack.
const (
	bitRS        = 0x01
	bitRW        = 0x02
	bitEN        = 0x04
	bitBacklight = 0x08
)

// HD44780 commands.
const (
	cmdClear      = 0x01
	cmdEntryMode  = 0x06 // increment, no shift
	cmdDisplayOn  = 0x0C // display on, cursor off, blink off
	cmdFunction4b = 0x28 // 4-bit, 2 lines, 5x8 font
	cmdSetCGRAM   = 0x40
	cmdSetDDRAM   = 0x80
)

// DDRAM row offsets for a 20x2 panel.
var rowOffsets = [Rows]byte{0x00, 0x40}

// glyphBitmaps are the 5x8 CGRAM patterns, indexed by Glyph.
var glyphBitmaps = [numGlyphs][8]byte{
	GlyphRise:   {0x04, 0x0E, 0x1F, 0x04, 0x04, 0x04, 0x04, 0x00},
	GlyphFall:   {0x04, 0x04, 0x04, 0x04, 0x1F, 0x0E, 0x04, 0x00},
	GlyphSteady: {0x00, 0x00, 0x00, 0x1F, 0x00, 0x00, 0x00, 0x00},
	GlyphLamp:   {0x0E, 0x11, 0x11, 0x11, 0x0E, 0x0E, 0x04, 0x00},
}

// Real drives an HD44780 character panel behind a PCF8574 I2C backpack in
// 4-bit mode.
type Real struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// NewReal opens the I2C bus (empty name selects the first available),
// initializes the panel, and loads the custom glyphs into CGRAM.
func NewReal(busName string, addr uint16) (*Real, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}

	r := &Real{
		bus: bus,
		dev: &i2c.Dev{Addr: addr, Bus: bus},
	}
	if err := r.init(); err != nil {
		bus.Close()
		return nil, fmt.Errorf("init hd44780: %w", err)
	}
	return r, nil
}

// init performs the documented 4-bit reset dance, configures the panel, and
// programs the glyph bitmaps.
func (r *Real) init() error {
	time.Sleep(50 * time.Millisecond)

	// Three 8-bit function-set probes, then switch to 4-bit.
	for _, nib := range []byte{0x03, 0x03, 0x03, 0x02} {
		if err := r.writeNibble(nib, 0); err != nil {
			return err
		}
		time.Sleep(5 * time.Millisecond)
	}

	for _, cmd := range []byte{cmdFunction4b, cmdDisplayOn, cmdEntryMode} {
		if err := r.writeByte(cmd, 0); err != nil {
			return err
		}
	}
	if err := r.Clear(); err != nil {
		return err
	}

	for g, bitmap := range glyphBitmaps {
		if err := r.writeByte(cmdSetCGRAM|byte(g)<<3, 0); err != nil {
			return err
		}
		for _, line := range bitmap {
			if err := r.writeByte(line, bitRS); err != nil {
				return err
			}
		}
	}
	// CGRAM writes leave the address counter there; home it.
	return r.writeByte(cmdSetDDRAM, 0)
}

// SetCursor moves the write position to (col, row).
func (r *Real) SetCursor(col, row int) error {
	if col < 0 || col >= Cols || row < 0 || row >= Rows {
		return fmt.Errorf("cursor out of range: col=%d row=%d", col, row)
	}
	return r.writeByte(cmdSetDDRAM|(rowOffsets[row]+byte(col)), 0)
}

// Print writes text at the cursor. Non-ASCII runes render as '?'.
func (r *Real) Print(text string) error {
	for _, ch := range text {
		b := byte('?')
		if ch < 0x80 {
			b = byte(ch)
		}
		if err := r.writeByte(b, bitRS); err != nil {
			return err
		}
	}
	return nil
}

// WriteGlyph writes a CGRAM glyph at the cursor.
func (r *Real) WriteGlyph(g Glyph) error {
	return r.writeByte(byte(g), bitRS)
}

// Clear blanks the panel. The clear command needs extra settle time.
func (r *Real) Clear() error {
	if err := r.writeByte(cmdClear, 0); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond)
	return nil
}

// Close blanks the panel, drops the backlight, and releases the bus.
func (r *Real) Close() error {
	if err := r.Clear(); err != nil {
		return err
	}
	if err := r.dev.Tx([]byte{0x00}, nil); err != nil {
		return fmt.Errorf("backlight off: %w", err)
	}
	return r.bus.Close()
}

// writeByte sends one command or data byte as two nibbles.
func (r *Real) writeByte(b, mode byte) error {
	if err := r.writeNibble(b>>4, mode); err != nil {
		return err
	}
	return r.writeNibble(b&0x0F, mode)
}

// writeNibble puts the nibble on P4-P7 and strobes EN.
func (r *Real) writeNibble(nib, mode byte) error {
	b := nib<<4 | mode | bitBacklight
	for _, v := range []byte{b | bitEN, b} {
		if err := r.dev.Tx([]byte{v}, nil); err != nil {
			return fmt.Errorf("i2c write: %w", err)
		}
		time.Sleep(50 * time.Microsecond)
	}
	return nil
}
