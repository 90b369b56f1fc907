package buffer

// A Change describes one completed edit of a Storage. Offsets are in the
// coordinates of the text after the edit, except OldLen. FirstLine and
// LastLine bound the lines whose content or position may differ from
// before; consumers that cache per-line data should drop that range.
type Change struct {
	Start  int // Byte offset where the edit begins
	OldLen int // Length of the replaced bytes
	NewLen int // Length of the inserted bytes

	FirstLine    int // First affected line, inclusive
	LastLine     int // Last affected line, inclusive, in the new text
	OldLineCount int
	LineCount    int
}

// Delta returns the change in buffer length.
func (c Change) Delta() int {
	return c.NewLen - c.OldLen
}

// LinesDelta returns how many lines were added (positive) or removed
// (negative).
func (c Change) LinesDelta() int {
	return c.LineCount - c.OldLineCount
}

// Range returns the byte range [start, end) holding the inserted text.
func (c Change) Range() (start, end int) {
	return c.Start, c.Start + c.NewLen
}

// An Observer is told about every change to a Storage, after the text and
// line index have been updated. Observers run synchronously on the goroutine
// that made the edit; they must not edit the Storage from TextChanged.
type Observer interface {
	TextChanged(Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Change)

func (f ObserverFunc) TextChanged(c Change) {
	f(c)
}
