package buffer

import (
	"bytes"
	"io"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

// Storage is a mutable text buffer that keeps the offset of every line
// start up to date as it is edited. The text lives in a rope; the line
// starts in a sorted slice that each edit patches only around the edited
// span, so a keystroke costs the size of the edit plus the lines after it,
// never a scan of the whole document.
//
// Storage does no locking. Reads may run alongside each other, but not
// alongside an edit.
type Storage struct {
	text       *rope.Node
	lineStarts []int

	lineEnding LineEnding
	indent     string

	observers []observer
	nextID    int
}

type observer struct {
	id int
	o  Observer
}

// Option configures a Storage in New.
type Option func(*Storage)

// WithLineEnding sets the line ending used to scan the initial contents.
func WithLineEnding(le LineEnding) Option {
	return func(s *Storage) {
		s.lineEnding = le
	}
}

// WithDetectedLineEnding uses the most common line ending in contents.
func WithDetectedLineEnding(contents []byte) Option {
	return WithLineEnding(DetectLineEnding(contents))
}

// WithIndentString sets the indent unit.
func WithIndentString(indent string) Option {
	return func(s *Storage) {
		s.indent = indent
	}
}

// New returns a Storage holding a copy of contents. Without options the line
// ending is Unix and the indent unit is TabIndent.
func New(contents []byte, opts ...Option) *Storage {
	s := &Storage{
		lineEnding: Unix,
		indent:     TabIndent,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.text = rope.New(bytes.Clone(contents))
	s.lineStarts = s.scanAll()
	return s
}

// Edit replaces the length bytes at start with text. It requires
// start >= 0, length >= 0, and start+length <= Len(); otherwise it returns a
// *RangeError and leaves the Storage untouched. On success the line index is
// patched around the edit using the current line ending, observers are
// notified, and the same Change is returned.
func (s *Storage) Edit(start, length int, text []byte) (Change, error) {
	oldTotal := s.text.Len()
	if start < 0 || length < 0 || start > oldTotal || length > oldTotal-start {
		return Change{}, &RangeError{Op: "edit", Offset: start, Length: length, Len: oldTotal}
	}

	t := len(s.lineEnding.Terminator())
	lo := max(0, start-(t-1)) // A terminator may straddle the edit start
	oldLineCount := len(s.lineStarts)
	firstLine := s.lineIndex(lo)

	if length > 0 {
		s.text.Remove(start, start+length)
	}
	if len(text) > 0 {
		s.text.Insert(start, bytes.Clone(text))
	}
	hiNew := s.patchLineStarts(start, length, len(text), oldTotal)

	c := Change{
		Start:        start,
		OldLen:       length,
		NewLen:       len(text),
		FirstLine:    firstLine,
		LastLine:     s.lineIndex(hiNew),
		OldLineCount: oldLineCount,
		LineCount:    len(s.lineStarts),
	}
	s.notify(c)
	return c, nil
}

// patchLineStarts updates lineStarts after [start, start+oldLen) was
// replaced by newLen bytes. It drops every start whose terminator could have
// touched the edited span, rescans that window of the new text, and shifts
// the starts after it. It returns the end of the rescanned window.
func (s *Storage) patchLineStarts(start, oldLen, newLen, oldTotal int) int {
	t := len(s.lineEnding.Terminator())
	delta := newLen - oldLen

	lo := max(0, start-(t-1))
	hiOld := min(oldTotal, start+oldLen+t-1)
	hiNew := hiOld + delta

	i := sort.SearchInts(s.lineStarts, lo+1)    // First start > lo
	j := sort.SearchInts(s.lineStarts, hiOld+1) // First start > hiOld
	for k := j; k < len(s.lineStarts); k++ {
		s.lineStarts[k] += delta
	}

	found := s.scan(max(0, lo-(t-1)), hiNew, lo)
	s.lineStarts = slices.Replace(s.lineStarts, i, j, found...)
	return hiNew
}

// scan returns the line starts produced by terminators lying wholly inside
// [from, to), keeping only those greater than after.
func (s *Storage) scan(from, to, after int) []int {
	if to <= from {
		return nil
	}
	term := s.lineEnding.Terminator()
	data := s.text.Slice(from, to)

	var found []int
	for off := 0; off < len(data); {
		k := bytes.Index(data[off:], term)
		if k < 0 {
			break
		}
		off += k + len(term)
		if end := from + off; end > after {
			found = append(found, end)
		}
	}
	return found
}

func (s *Storage) scanAll() []int {
	return append([]int{0}, s.scan(0, s.text.Len(), 0)...)
}

// Reindex rebuilds the whole line index using the current line ending.
// SetLineEnding does not touch existing line starts; call Reindex to apply
// the new mode to text already in the buffer. Observers see a Change
// spanning the entire buffer with no length difference.
func (s *Storage) Reindex() Change {
	oldLineCount := len(s.lineStarts)
	s.lineStarts = s.scanAll()

	n := s.text.Len()
	c := Change{
		Start:        0,
		OldLen:       n,
		NewLen:       n,
		FirstLine:    0,
		LastLine:     len(s.lineStarts) - 1,
		OldLineCount: oldLineCount,
		LineCount:    len(s.lineStarts),
	}
	s.notify(c)
	return c
}

// ConvertLineEndings rewrites every line break of any kind ("\r\n", "\r",
// or "\n") into the terminator of le, makes le the active line ending, and
// rebuilds the index.
func (s *Storage) ConvertLineEndings(le LineEnding) Change {
	old := s.text.Value()
	oldLineCount := len(s.lineStarts)
	term := le.Terminator()

	converted := make([]byte, 0, len(old))
	for i := 0; i < len(old); i++ {
		switch old[i] {
		case '\r':
			if i+1 < len(old) && old[i+1] == '\n' {
				i++
			}
			converted = append(converted, term...)
		case '\n':
			converted = append(converted, term...)
		default:
			converted = append(converted, old[i])
		}
	}

	s.lineEnding = le
	s.text = rope.New(converted)
	s.lineStarts = s.scanAll()

	c := Change{
		Start:        0,
		OldLen:       len(old),
		NewLen:       len(converted),
		FirstLine:    0,
		LastLine:     len(s.lineStarts) - 1,
		OldLineCount: oldLineCount,
		LineCount:    len(s.lineStarts),
	}
	s.notify(c)
	return c
}

// Insert inserts text at offset.
func (s *Storage) Insert(offset int, text []byte) (Change, error) {
	return s.Edit(offset, 0, text)
}

// Delete removes length bytes at start.
func (s *Storage) Delete(start, length int) (Change, error) {
	return s.Edit(start, length, nil)
}

// InsertLineBreak inserts the terminator of the current line ending at
// offset.
func (s *Storage) InsertLineBreak(offset int) (Change, error) {
	return s.Edit(offset, 0, s.lineEnding.Terminator())
}

// InsertIndent inserts an indent of width characters, built from the indent
// unit, at offset.
func (s *Storage) InsertIndent(offset, width int) (Change, error) {
	indent, err := s.IndentStringForWidth(width)
	if err != nil {
		return Change{}, err
	}
	return s.Edit(offset, 0, []byte(indent))
}

// Observe registers o to be told about every change. Calling the returned
// function unregisters it.
func (s *Storage) Observe(o Observer) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id, o})
	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(ob observer) bool {
			return ob.id == id
		})
	}
}

func (s *Storage) notify(c Change) {
	for _, ob := range slices.Clone(s.observers) { // Observers may cancel themselves
		ob.o.TextChanged(c)
	}
}

// SetLineEnding changes which terminator is scanned for by later edits and
// inserted by InsertLineBreak. Existing line starts are left as they are:
// an edit rescans only its own window with the new mode, so starts found
// under the old mode elsewhere remain. Until Reindex (or ConvertLineEndings)
// runs, LineIndex is not the count of the new mode's terminators.
func (s *Storage) SetLineEnding(le LineEnding) {
	s.lineEnding = le
}

func (s *Storage) LineEnding() LineEnding {
	return s.lineEnding
}

// SetIndentString sets the indent unit. Nothing is recomputed.
func (s *Storage) SetIndentString(indent string) {
	s.indent = indent
}

func (s *Storage) IndentString() string {
	return s.indent
}

// IndentStringForWidth builds an indent of exactly n characters from the
// indent unit. See IndentForWidth.
func (s *Storage) IndentStringForWidth(n int) (string, error) {
	return IndentForWidth(s.indent, n)
}

func (s *Storage) Len() int {
	return s.text.Len()
}

func (s *Storage) LineCount() int {
	return len(s.lineStarts)
}

func (s *Storage) Lines() []int {
	return slices.Clone(s.lineStarts)
}

func (s *Storage) LineIndex(offset int) (int, error) {
	if n := s.text.Len(); offset < 0 || offset > n {
		return 0, &RangeError{Op: "lineIndex", Offset: offset, Len: n}
	}
	return s.lineIndex(offset), nil
}

// lineIndex is LineIndex without the bounds check.
func (s *Storage) lineIndex(offset int) int {
	return sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
}

func (s *Storage) LineStart(line int) int {
	return s.lineStarts[line]
}

func (s *Storage) LineEnd(line int) int {
	start := s.lineStarts[line]
	if line == len(s.lineStarts)-1 {
		return s.text.Len()
	}
	next := s.lineStarts[line+1]
	return next - s.terminatorLenBefore(start, next)
}

// terminatorLenBefore returns the length of the line break ending at end.
// The current line ending is tried first, since lines may have been indexed
// under another mode before a SetLineEnding.
func (s *Storage) terminatorLenBefore(start, end int) int {
	tail := s.Slice(max(start, end-2), end)
	if term := s.lineEnding.Terminator(); bytes.HasSuffix(tail, term) {
		return len(term)
	}
	for _, le := range []LineEnding{Windows, Unix, MacClassic} {
		if term := le.Terminator(); bytes.HasSuffix(tail, term) {
			return len(term)
		}
	}
	return 0
}

func (s *Storage) Line(line int) []byte {
	start := s.lineStarts[line]
	end := s.text.Len()
	if line+1 < len(s.lineStarts) {
		end = s.lineStarts[line+1]
	}
	return s.Slice(start, end)
}

func (s *Storage) Slice(start, end int) []byte {
	if end <= start {
		return []byte{}
	}
	return bytes.Clone(s.text.Slice(start, end))
}

func (s *Storage) Bytes() []byte {
	return bytes.Clone(s.text.Value())
}

func (s *Storage) String() string {
	var sb strings.Builder
	sb.Grow(s.text.Len())
	_, _ = s.text.WriteTo(&sb)
	return sb.String()
}

func (s *Storage) RunesInLine(line int) int {
	return utf8.RuneCount(s.Slice(s.LineStart(line), s.LineEnd(line)))
}

func (s *Storage) ClampLineCol(line, col int) (int, int) {
	if line < 0 {
		line = 0
	} else if last := len(s.lineStarts) - 1; line > last {
		line = last
	}

	if col < 0 {
		col = 0
	} else if runes := s.RunesInLine(line); col > runes {
		col = runes
	}

	return line, col
}

func (s *Storage) LineColToPos(line, col int) int {
	pos := s.LineStart(line)
	data := s.Slice(pos, s.LineEnd(line))

	// Respect Utf-8 codepoint boundaries
	for i := 0; i < len(data) && col > 0; col-- {
		_, size := utf8.DecodeRune(data[i:])
		i += size
		pos += size
	}
	return pos
}

func (s *Storage) PosToLineCol(pos int) (int, int) {
	if pos < 0 {
		pos = 0
	} else if n := s.text.Len(); pos > n {
		pos = n
	}
	line := s.lineIndex(pos)
	return line, utf8.RuneCount(s.Slice(s.lineStarts[line], pos))
}

func (s *Storage) Count(start, end int, sequence []byte) int {
	return bytes.Count(s.Slice(start, end), sequence)
}

func (s *Storage) WriteTo(w io.Writer) (int64, error) {
	return s.text.WriteTo(w)
}
