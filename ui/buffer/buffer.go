package buffer

import (
	"io"
)

// A Buffer is the read side of a Storage: everything a renderer, cursor, or
// highlighter needs to lay out lines without scanning text itself. Offsets
// are byte offsets into the UTF-8 text. Lines and columns start at zero;
// columns count runes, not bytes.
//
// Line and column arguments out of range are panics, as they come from
// program logic. Offsets that may come from user input are checked and
// reported with a *RangeError. If you are unsure your position is in
// bounds, use ClampLineCol() or compare with LineCount() or RunesInLine().
type Buffer interface {
	// Len returns the number of bytes in the buffer.
	Len() int

	// LineCount returns the number of lines. An empty buffer has one line.
	LineCount() int

	// Lines returns a copy of the offsets where each line begins. The first
	// entry is always zero and the entries are strictly increasing.
	Lines() []int

	// LineIndex returns the zero-based line containing offset, where
	// 0 <= offset <= Len(). An offset equal to a line start belongs to that
	// line, and Len() belongs to the last line.
	LineIndex(offset int) (int, error)

	// LineStart returns the offset of the first byte of line.
	LineStart(line int) int

	// LineEnd returns the offset just past the last byte of line, before its
	// line terminator.
	LineEnd(line int) int

	// Line returns the bytes of line, including the line terminator. The
	// returned slice is a copy.
	Line(line int) []byte

	// Slice returns a copy of the bytes in [start, end).
	Slice(start, end int) []byte

	// Bytes returns all of the bytes in the buffer. This copies the whole
	// buffer. Use sparingly.
	Bytes() []byte

	// RunesInLine returns the number of runes in line, excluding the line
	// terminator.
	RunesInLine(line int) int

	// ClampLineCol clamps line to the lines of the buffer, and then col to
	// the runes of that line. A col equal to RunesInLine(line) points at
	// the line terminator, or the end of the buffer.
	ClampLineCol(line, col int) (int, int)

	// LineColToPos returns the offset of the rune at line, col. A col past
	// the end of the line gives the offset of the line terminator.
	LineColToPos(line, col int) int

	// PosToLineCol converts an offset into a line and column. The offset is
	// clamped to the buffer.
	PosToLineCol(pos int) (int, int)

	// Count returns the number of non-overlapping occurrences of sequence
	// in [start, end).
	Count(start, end int, sequence []byte) int

	// LineEnding returns the line ending used to find and insert line breaks.
	LineEnding() LineEnding

	WriteTo(w io.Writer) (int64, error)
}

var _ Buffer = (*Storage)(nil)
