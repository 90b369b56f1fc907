package ui

import (
	"github.com/gdamore/tcell/v2"
)

// A Component is anything the editor can place on screen and send events to:
// the TextEdit and the InputField of the go-to-line prompt. It is expected that
// after constructing a component, to call SetPos() and SetSize().
type Component interface {
	// A component knows its position and size, which is used to draw itself in
	// its bounding rectangle.
	Draw(tcell.Screen)
	// Only the focused component shows the terminal cursor.
	SetFocused(bool)
	// Applies the theme to the component.
	SetTheme(*Theme)

	GetPos() (x, y int)
	SetPos(x, y int)
	GetSize() (w, h int)
	SetSize(w, h int)

	// HandleEvent tells the Component to handle the provided event. If an event
	// is handled, the function should return true. If the event went unhandled,
	// the function should return false.
	HandleEvent(tcell.Event) bool
}

// baseComponent can be embedded in a Component's struct to hide a few of the
// boilerplate fields and functions.
type baseComponent struct {
	focused       bool
	x, y          int
	width, height int
	theme         *Theme
}

func (c *baseComponent) SetFocused(v bool) {
	c.focused = v
}

func (c *baseComponent) SetTheme(theme *Theme) {
	c.theme = theme
}

func (c *baseComponent) GetPos() (int, int) {
	return c.x, c.y
}

func (c *baseComponent) SetPos(x, y int) {
	c.x, c.y = x, y
}

func (c *baseComponent) GetSize() (int, int) {
	return c.width, c.height
}

func (c *baseComponent) SetSize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
}

var (
	_ Component = (*TextEdit)(nil)
	_ Component = (*InputField)(nil)
)
