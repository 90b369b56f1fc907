package buffer

import (
	"math"
	"unicode"
	"unicode/utf8"
)

// So why is the code for moving the cursor in the buffer package, and not in the
// TextEdit component? The cursor needs the line index to know where lines end and
// how it can move. The buffer is the city, and the Cursor is the car.

type position struct {
	line int
	col  int
}

// A Region represents a span of the buffer selected for text editing purposes.
// Start is not after End. The span is half-open: the rune under End is not part
// of it.
type Region struct {
	Start Cursor
	End   Cursor
}

func NewRegion(in Buffer) Region {
	return Region{
		NewCursor(in),
		NewCursor(in),
	}
}

// Offsets returns the byte range covered by the Region.
func (r Region) Offsets() (start, end int) {
	return r.Start.Offset(), r.End.Offset()
}

// A Cursor is a line and rune column in a Buffer. Its functions emulate common
// cursor actions and return the moved Cursor, leaving the original as it was.
type Cursor struct {
	buffer Buffer
	position
}

func NewCursor(in Buffer) Cursor {
	return Cursor{
		buffer: in,
	}
}

// CursorAt returns a Cursor at the given byte offset, clamped to the buffer.
func CursorAt(in Buffer, offset int) Cursor {
	c := NewCursor(in)
	c.line, c.col = in.PosToLineCol(offset)
	return c
}

func (c Cursor) Left() Cursor {
	if c.col == 0 && c.line != 0 { // If we are at the beginning of the current line...
		// Go to the end of the above line
		c.line--
		c.col = c.buffer.RunesInLine(c.line)
	} else {
		c.col = max(c.col-1, 0)
	}
	return c
}

func (c Cursor) Right() Cursor {
	// If we are at the end of the current line,
	// and not at the last line...
	if c.col >= c.buffer.RunesInLine(c.line) && c.line < c.buffer.LineCount()-1 {
		c.line, c.col = c.buffer.ClampLineCol(c.line+1, 0) // Go to beginning of line below
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line, c.col+1)
	}
	return c
}

func (c Cursor) Up() Cursor {
	if c.line == 0 { // If the cursor is at the first line...
		c.line, c.col = 0, 0 // Go to beginning
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line-1, c.col)
	}
	return c
}

func (c Cursor) Down() Cursor {
	if c.line == c.buffer.LineCount()-1 { // If the cursor is at the last line...
		c.line, c.col = c.buffer.ClampLineCol(c.line, math.MaxInt32) // Go to end of current line
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line+1, c.col)
	}
	return c
}

// NextWordBoundaryEnd moves to the position after the last character of the
// next word to the right of the Cursor. A word is a run of characters of the
// same class (letters and digits, or symbols). Whitespace between words is
// skipped.
func (c Cursor) NextWordBoundaryEnd() Cursor {
	pos := c.Offset()
	data := c.buffer.Slice(pos, c.buffer.Len())

	var i int
	for i < len(data) { // Skip whitespace
		r, size := utf8.DecodeRune(data[i:])
		if runeCharclass(r) != charwhitespace {
			break
		}
		i += size
	}
	if i < len(data) {
		r, size := utf8.DecodeRune(data[i:])
		class := runeCharclass(r)
		i += size
		for i < len(data) {
			r, size = utf8.DecodeRune(data[i:])
			if runeCharclass(r) != class {
				break
			}
			i += size
		}
	}

	c.line, c.col = c.buffer.PosToLineCol(pos + i)
	return c
}

// PrevWordBoundaryStart moves to the first character of the word to the left of
// the Cursor, skipping whitespace first.
func (c Cursor) PrevWordBoundaryStart() Cursor {
	pos := c.Offset()
	data := c.buffer.Slice(0, pos)

	i := len(data)
	for i > 0 { // Skip whitespace
		r, size := utf8.DecodeLastRune(data[:i])
		if runeCharclass(r) != charwhitespace {
			break
		}
		i -= size
	}
	if i > 0 {
		r, size := utf8.DecodeLastRune(data[:i])
		class := runeCharclass(r)
		i -= size
		for i > 0 {
			r, size = utf8.DecodeLastRune(data[:i])
			if runeCharclass(r) != class {
				break
			}
			i -= size
		}
	}

	c.line, c.col = c.buffer.PosToLineCol(i)
	return c
}

func (c Cursor) GetLineCol() (line, col int) {
	return c.line, c.col
}

// SetLineCol sets the line and col of the Cursor to those provided. `line` is
// clamped within the range (0, lines in buffer). `col` is then clamped within
// the range (0, line length in runes).
func (c Cursor) SetLineCol(line, col int) Cursor {
	c.line, c.col = c.buffer.ClampLineCol(line, col)
	return c
}

// Offset returns the byte offset of the Cursor in its buffer.
func (c Cursor) Offset() int {
	line, col := c.buffer.ClampLineCol(c.line, c.col)
	return c.buffer.LineColToPos(line, col)
}

func (c Cursor) Eq(other Cursor) bool {
	return c.buffer == other.buffer && c.line == other.line && c.col == other.col
}

type charclass uint8

const (
	charwhitespace charclass = iota
	charword
	charsymbol
)

func runeCharclass(r rune) charclass {
	if unicode.IsSpace(r) {
		return charwhitespace
	} else if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return charword
	} else {
		return charsymbol
	}
}
