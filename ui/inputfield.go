package ui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// An InputField is a single-line input box with an optional prompt drawn
// before it.
type InputField struct {
	Prompt string
	Text   string

	cursorPos int // Rune index into Text
	scrollPos int
	screen    *tcell.Screen

	baseComponent
}

func NewInputField(screen *tcell.Screen, prompt string, theme *Theme) *InputField {
	return &InputField{
		Prompt:        prompt,
		screen:        screen,
		baseComponent: baseComponent{theme: theme, height: 1},
	}
}

func (f *InputField) GetCursorPos() int {
	return f.cursorPos
}

// fieldWidth is the number of cells available for text after the prompt.
func (f *InputField) fieldWidth() int {
	return max(f.width-runewidth.StringWidth(f.Prompt), 1)
}

// textWidth returns the cells taken by the runes of Text in [from, to).
func (f *InputField) textWidth(from, to int) int {
	runes := []rune(f.Text)
	from, to = max(0, min(from, len(runes))), max(0, min(to, len(runes)))
	if to <= from {
		return 0
	}
	return runewidth.StringWidth(string(runes[from:to]))
}

// SetCursorPos sets the cursor position offset. Offset is clamped to possible values.
// The InputField is scrolled to show the new cursor position.
func (f *InputField) SetCursorPos(offset int) {
	offset = max(0, min(offset, utf8.RuneCountInString(f.Text)))

	// Scrolling
	if width := f.fieldWidth(); offset >= f.scrollPos+width { // If cursor position is out of view to the right...
		f.scrollPos = offset - width + 1 // Scroll just enough to view that column
	} else if offset < f.scrollPos { // If cursor position is out of view to the left...
		f.scrollPos = offset
	}

	f.cursorPos = offset
	if f.focused && f.screen != nil {
		(*f.screen).ShowCursor(f.x+runewidth.StringWidth(f.Prompt)+f.textWidth(f.scrollPos, offset), f.y)
	}
}

// Delete removes the rune after the cursor when `forward` is true, or the
// one before it otherwise.
func (f *InputField) Delete(forward bool) {
	runes := []rune(f.Text)
	if forward {
		if f.cursorPos < len(runes) {
			f.Text = string(append(runes[:f.cursorPos], runes[f.cursorPos+1:]...))
		}
	} else if f.cursorPos > 0 {
		f.Text = string(append(runes[:f.cursorPos-1], runes[f.cursorPos:]...))
		f.SetCursorPos(f.cursorPos - 1)
	}
}

// Clear empties the field.
func (f *InputField) Clear() {
	f.Text = ""
	f.scrollPos = 0
	f.SetCursorPos(0)
}

func (f *InputField) Draw(s tcell.Screen) {
	style := f.theme.GetOrDefault("InputField")

	DrawRect(s, f.x, f.y, f.width, 1, ' ', style) // Draw background
	promptWidth := DrawStr(s, f.x, f.y, f.Prompt, style)

	runes := []rune(f.Text)
	if f.scrollPos < len(runes) {
		endPos := f.scrollPos + min(len(runes)-f.scrollPos, f.fieldWidth())
		DrawStr(s, f.x+promptWidth, f.y, string(runes[f.scrollPos:endPos]), style) // Draw text
	}

	// Update cursor
	f.SetCursorPos(f.cursorPos)
}

func (f *InputField) SetFocused(v bool) {
	f.focused = v
	if v {
		f.SetCursorPos(f.cursorPos)
	} else if f.screen != nil {
		(*f.screen).HideCursor()
	}
}

func (f *InputField) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft:
			f.SetCursorPos(f.cursorPos - 1)
		case tcell.KeyRight:
			f.SetCursorPos(f.cursorPos + 1)
		case tcell.KeyHome:
			f.SetCursorPos(0)
		case tcell.KeyEnd:
			f.SetCursorPos(utf8.RuneCountInString(f.Text))
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			f.Delete(false)
		case tcell.KeyDelete:
			f.Delete(true)
		case tcell.KeyRune:
			runes := []rune(f.Text)
			runes = append(runes[:f.cursorPos], append([]rune{ev.Rune()}, runes[f.cursorPos:]...)...)
			f.Text = string(runes)
			f.SetCursorPos(f.cursorPos + 1)
		default:
			return false
		}
		return true
	}
	return false
}
