package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fivemoreminix/textstore/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TextEdit is a field for line-based editing. It features syntax highlighting
// tools, and contains the various information about content being edited. All
// edits go through the Buffer, and the TextEdit learns what changed from the
// Buffer's change notifications.
type TextEdit struct {
	Buffer      *buffer.Storage
	Highlighter *buffer.Highlighter
	LineNumbers bool   // Whether to render line numbers (and therefore the column)
	Dirty       bool   // Whether the buffer has been edited
	TabSize     int    // How many columns a hard tab occupies on screen
	FilePath    string // Will be empty if the file has not been saved yet

	screen           *tcell.Screen // We keep our own reference to the screen for cursor purposes.
	cursor           buffer.Cursor
	scrollx, scrolly int // X and Y offset of view, known as scroll

	anchor     buffer.Cursor // Where the selection began; the cursor is the other end
	selectMode bool          // Whether the user is actively selecting text

	lastChange buffer.Change
	unobserve  []func()

	baseComponent
}

// NewTextEdit will initialize the buffer using the given 'contents'. If the 'filePath' or 'FilePath' is empty,
// it can be assumed that the TextEdit has no file association, or it is unsaved.
func NewTextEdit(screen *tcell.Screen, filePath string, contents []byte, theme *Theme) *TextEdit {
	te := &TextEdit{
		LineNumbers: true,
		TabSize:     4,
		FilePath:    filePath,

		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
	te.SetContents(contents)
	return te
}

// SetContents replaces the buffer with one holding contents. The line ending
// is detected from the contents, and the language from the file path.
func (t *TextEdit) SetContents(contents []byte) {
	for _, cancel := range t.unobserve {
		cancel()
	}

	t.Buffer = buffer.New(contents, buffer.WithDetectedLineEnding(contents))
	t.cursor = buffer.NewCursor(t.Buffer)
	t.anchor = t.cursor
	t.selectMode = false
	t.scrollx, t.scrolly = 0, 0

	lang := buffer.DetectLanguage(t.FilePath, contents)
	t.Highlighter = buffer.NewHighlighter(t.Buffer, lang, DefaultColorscheme)

	t.unobserve = []func(){
		t.Buffer.Observe(t.Highlighter),
		t.Buffer.Observe(buffer.ObserverFunc(t.textChanged)),
	}
}

func (t *TextEdit) textChanged(c buffer.Change) {
	t.Dirty = true
	t.lastChange = c
}

// LastChange returns the most recent change made to the buffer.
func (t *TextEdit) LastChange() buffer.Change {
	return t.lastChange
}

// GetLineDelimiter returns the line terminator inserted by Enter.
func (t *TextEdit) GetLineDelimiter() string {
	return string(t.Buffer.LineEnding().Terminator())
}

// ChangeLineDelimiters converts every line break in the buffer to le, which
// also becomes the line ending for new line breaks.
func (t *TextEdit) ChangeLineDelimiters(le buffer.LineEnding) {
	line, col := t.cursor.GetLineCol()
	t.selectMode = false
	t.Buffer.ConvertLineEndings(le)
	t.SetCursor(t.cursor.SetLineCol(line, col))
	t.ScrollToCursor()
}

// selection returns the byte range of the selection, start first.
func (t *TextEdit) selection() (int, int) {
	a, b := t.anchor.Offset(), t.cursor.Offset()
	if a > b {
		a, b = b, a
	}
	return a, b
}

// Delete with `forwards` false will backspace, destroying the character before the cursor,
// while Delete with `forwards` true will delete the character after (or on) the cursor.
// A line terminator counts as one character, whatever its length.
func (t *TextEdit) Delete(forwards bool) {
	if t.selectMode { // If text is selected, delete the whole selection
		t.selectMode = false
		start, end := t.selection()
		t.edit(start, end-start, nil)
		return
	}

	line, col := t.cursor.GetLineCol()
	offset := t.cursor.Offset()

	if forwards { // Delete the character after the cursor
		if col >= t.Buffer.RunesInLine(line) {
			if line < t.Buffer.LineCount()-1 { // Join with the line below
				t.edit(offset, t.Buffer.LineStart(line+1)-offset, nil)
			}
			return
		}
		_, size := utf8.DecodeRune(t.Buffer.Slice(offset, t.Buffer.LineEnd(line)))
		t.edit(offset, size, nil)
	} else { // Delete the character before the cursor
		if col == 0 {
			if line > 0 { // Join with the line above
				start := t.Buffer.LineEnd(line - 1)
				t.edit(start, offset-start, nil)
			}
			return
		}
		_, size := utf8.DecodeLastRune(t.Buffer.Slice(t.Buffer.LineStart(line), offset))
		t.edit(offset-size, size, nil)
	}
}

// Insert writes `contents` at the cursor position. Any line break ("\r\n", "\r", or "\n")
// is written with the buffer's line ending, and a tab is an indent. Overwrites any active
// selection.
func (t *TextEdit) Insert(contents string) {
	if t.selectMode { // If there is a selection...
		t.Delete(true) // The parameter doesn't matter with selection
	}

	var run strings.Builder // Plain characters not yet inserted
	flush := func() {
		if run.Len() > 0 {
			t.edit(t.cursor.Offset(), 0, []byte(run.String()))
			run.Reset()
		}
	}

	for i := 0; i < len(contents); {
		ch, size := utf8.DecodeRuneInString(contents[i:])
		i += size

		switch ch {
		case '\r', '\n':
			if ch == '\r' && i < len(contents) && contents[i] == '\n' {
				i++ // Consume '\n' after
			}
			flush()
			t.insertLineBreak()
		case '\t':
			flush()
			t.insertIndent()
		case '\b':
			flush()
			t.Delete(false)
		default:
			run.WriteRune(ch)
		}
	}
	flush()
}

func (t *TextEdit) insertLineBreak() {
	offset := t.cursor.Offset()
	c, err := t.Buffer.InsertLineBreak(offset)
	if err == nil {
		t.moveAfter(c)
	}
}

// insertIndent inserts one indent unit for hard tabs, or enough of the indent
// string to reach the next tab stop otherwise.
func (t *TextEdit) insertIndent() {
	width := 1
	if t.Buffer.IndentString() != buffer.TabIndent {
		tabSize := max(t.TabSize, 1)
		width = tabSize - t.visualCol()%tabSize
	}
	c, err := t.Buffer.InsertIndent(t.cursor.Offset(), width)
	if err == nil {
		t.moveAfter(c)
	}
}

// edit applies one change to the buffer and puts the cursor after the inserted text.
func (t *TextEdit) edit(start, length int, text []byte) {
	c, err := t.Buffer.Edit(start, length, text)
	if err != nil {
		return // Positions come from the cursor, which is always in bounds
	}
	t.moveAfter(c)
}

func (t *TextEdit) moveAfter(c buffer.Change) {
	_, end := c.Range()
	t.cursor = buffer.CursorAt(t.Buffer, end)
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// visualCol returns the screen column of the cursor within its line, with tabs expanded.
func (t *TextEdit) visualCol() int {
	line, _ := t.cursor.GetLineCol()
	prefix := t.Buffer.Slice(t.Buffer.LineStart(line), t.cursor.Offset())
	return buffer.DisplayWidth(string(prefix), t.TabSize)
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextEdit. Sends a signal to show the cursor if the TextEdit
// is focused and not in select mode.
func (t *TextEdit) updateCursorVisibility() {
	if t.focused && !t.selectMode && t.screen != nil {
		columnWidth := t.getColumnWidth()
		line, _ := t.cursor.GetLineCol()
		(*t.screen).ShowCursor(t.x+columnWidth+t.visualCol()-t.scrollx, t.y+line-t.scrolly)
	}
}

// Scroll the screen if the cursor is out of view.
func (t *TextEdit) ScrollToCursor() {
	line, _ := t.cursor.GetLineCol()
	col := t.visualCol()

	// Scroll the screen when going to lines out of view
	if line >= t.scrolly+t.height-1 { // If the new line is below view...
		t.scrolly = line - t.height + 1 // Scroll just enough to view that line
	} else if line < t.scrolly { // If the new line is above view
		t.scrolly = line
	}
	t.scrolly = max(t.scrolly, 0)

	columnWidth := t.getColumnWidth()

	// Scroll the screen horizontally when going to columns out of view
	if col >= t.scrollx+(t.width-columnWidth-1) { // If the new column is right of view
		t.scrollx = col - (t.width - columnWidth) + 1 // Scroll just enough to view that column
	} else if col < t.scrollx { // If the new column is left of view
		t.scrollx = col // Scroll left enough to view that column
	}
	t.scrollx = max(t.scrollx, 0)
}

func (t *TextEdit) GetCursor() buffer.Cursor {
	return t.cursor
}

func (t *TextEdit) SetCursor(newCursor buffer.Cursor) {
	t.cursor = newCursor
	t.updateCursorVisibility()
}

// GotoLine moves the cursor to the start of the given line, counting from one.
func (t *TextEdit) GotoLine(line int) {
	t.selectMode = false
	t.SetCursor(t.cursor.SetLineCol(line-1, 0))
	t.ScrollToCursor()
}

// getColumnWidth returns the width of the line numbers column if it is present.
func (t *TextEdit) getColumnWidth() int {
	var columnWidth int
	if t.LineNumbers {
		// Set columnWidth to max count of line number digits
		columnWidth = max(3, 1+len(strconv.Itoa(t.Buffer.LineCount()))) // Column has minimum width of 2
	}
	return columnWidth
}

// GetSelectedBytes returns a copy of the region of the buffer that is currently selected.
// If the returned slice is empty, then nothing was selected.
func (t *TextEdit) GetSelectedBytes() []byte {
	if t.selectMode {
		start, end := t.selection()
		return t.Buffer.Slice(start, end)
	}
	return []byte{}
}

// String returns the whole contents of the buffer.
func (t *TextEdit) String() string {
	return t.Buffer.String()
}

// Draw renders the TextEdit component.
func (t *TextEdit) Draw(s tcell.Screen) {
	columnWidth := t.getColumnWidth()
	bufferLines := t.Buffer.LineCount()

	selectedStyle := t.theme.GetOrDefault("TextEditSelected")
	columnStyle := t.Highlighter.Colorscheme.GetStyle(buffer.Column)
	defaultStyle := t.Highlighter.Colorscheme.GetStyle(buffer.Default)

	t.Highlighter.UpdateInvalidatedLines(t.scrolly, t.scrolly+(t.height-1))

	selStart, selEnd := -1, -1
	if t.selectMode {
		selStart, selEnd = t.selection()
	}

	for lineY := t.y; lineY < t.y+t.height; lineY++ { // For each line we can draw...
		line := lineY + t.scrolly - t.y // The line number being drawn (starts at zero)

		DrawRect(s, t.x+columnWidth, lineY, t.width-columnWidth, 1, ' ', defaultStyle)

		lineNumStr := "" // Line number as a string
		if line < bufferLines { // Only index buffer if we are within it...
			lineNumStr = strconv.Itoa(line + 1)
			t.drawLine(s, line, lineY, columnWidth, selStart, selEnd, defaultStyle, selectedStyle)
		}

		if columnWidth > 0 {
			columnStr := fmt.Sprintf("%s%s│", strings.Repeat(" ", columnWidth-len(lineNumStr)-1), lineNumStr) // Right align line number
			DrawStr(s, t.x, lineY, columnStr, columnStyle) // Draw column
		}
	}

	t.updateCursorVisibility()
}

func (t *TextEdit) drawLine(s tcell.Screen, line, lineY, columnWidth, selStart, selEnd int, defaultStyle, selectedStyle tcell.Style) {
	start := t.Buffer.LineStart(line)
	lineBytes := t.Buffer.Slice(start, t.Buffer.LineEnd(line))
	matches := t.Highlighter.GetLineMatches(line)

	var matchIdx int
	var visual int // Screen column of the rune, before scrolling
	for byteIdx, runeIdx := 0, 0; byteIdx < len(lineBytes); runeIdx++ {
		r, size := utf8.DecodeRune(lineBytes[byteIdx:])

		style := defaultStyle
		if offset := start + byteIdx; offset >= selStart && offset < selEnd {
			style = selectedStyle
		} else {
			for matchIdx < len(matches) && matches[matchIdx].EndCol < runeIdx {
				matchIdx++ // Passed that highlight data
			}
			if matchIdx < len(matches) && matches[matchIdx].Col <= runeIdx {
				style = t.Highlighter.GetStyle(matches[matchIdx])
			}
		}

		width := runewidth.RuneWidth(r)
		if r == '\t' {
			r, width = ' ', t.TabSize
		}
		for i := 0; i < width; i++ { // Wide runes are drawn once; tabs as spaces
			col := t.x + columnWidth + visual + i - t.scrollx
			if col >= t.x+columnWidth && col < t.x+t.width && (i == 0 || r == ' ') {
				s.SetContent(col, lineY, r, nil, style)
			}
		}

		visual += width
		byteIdx += size
	}
}

// SetFocused sets whether the TextEdit is focused. When focused, the cursor is set visible
// and its position is updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if v {
		t.updateCursorVisibility()
	} else if t.screen != nil {
		(*t.screen).HideCursor()
	}
}

// move applies a cursor motion, growing the selection when shift is held.
func (t *TextEdit) move(ev *tcell.EventKey, motion func(buffer.Cursor) buffer.Cursor) {
	if ev.Modifiers()&tcell.ModShift != 0 {
		if !t.selectMode {
			t.anchor = t.cursor
			t.selectMode = true
		}
	} else {
		t.selectMode = false
	}
	t.SetCursor(motion(t.cursor))
	t.ScrollToCursor()
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		ctrl := ev.Modifiers()&tcell.ModCtrl != 0
		switch ev.Key() {
		// Cursor movement
		case tcell.KeyUp:
			t.move(ev, buffer.Cursor.Up)
		case tcell.KeyDown:
			t.move(ev, buffer.Cursor.Down)
		case tcell.KeyLeft:
			if ctrl {
				t.move(ev, buffer.Cursor.PrevWordBoundaryStart)
			} else {
				t.move(ev, buffer.Cursor.Left)
			}
		case tcell.KeyRight:
			if ctrl {
				t.move(ev, buffer.Cursor.NextWordBoundaryEnd)
			} else {
				t.move(ev, buffer.Cursor.Right)
			}
		case tcell.KeyHome:
			t.move(ev, func(c buffer.Cursor) buffer.Cursor {
				line, _ := c.GetLineCol()
				return c.SetLineCol(line, 0)
			})
		case tcell.KeyEnd:
			t.move(ev, func(c buffer.Cursor) buffer.Cursor {
				line, _ := c.GetLineCol()
				return c.SetLineCol(line, math.MaxInt32) // Max column
			})
		case tcell.KeyPgUp:
			t.move(ev, func(c buffer.Cursor) buffer.Cursor {
				line, col := c.GetLineCol()
				return c.SetLineCol(line-t.height, col) // Go a page up
			})
		case tcell.KeyPgDn:
			t.move(ev, func(c buffer.Cursor) buffer.Cursor {
				line, col := c.GetLineCol()
				return c.SetLineCol(line+t.height, col) // Go a page down
			})

		// Deleting
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.Delete(false)
		case tcell.KeyDelete:
			t.Delete(true)

		// Other control
		case tcell.KeyTab:
			t.Insert("\t") // Hard tab or spaces, depending on the indent string
		case tcell.KeyEnter:
			t.Insert("\n") // Written with the buffer's line ending

		// Inserting
		case tcell.KeyRune:
			t.Insert(string(ev.Rune())) // Insert rune
		default:
			return false
		}
		return true
	}
	return false
}
