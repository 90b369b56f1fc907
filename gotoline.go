package main

import (
	"strconv"
	"strings"

	"github.com/fivemoreminix/textstore/ui"
	"github.com/gdamore/tcell/v2"
)

// GotoLinePrompt asks for a line number on the bottom row of the screen.
type GotoLinePrompt struct {
	LineChosenCallback func(int)
	CancelCallback     func()

	inputField *ui.InputField
}

func NewGotoLinePrompt(s *tcell.Screen, theme *ui.Theme, lineChosenCallback func(int), cancelCallback func()) *GotoLinePrompt {
	return &GotoLinePrompt{
		LineChosenCallback: lineChosenCallback,
		CancelCallback:     cancelCallback,
		inputField:         ui.NewInputField(s, "Go to line: ", theme),
	}
}

func (p *GotoLinePrompt) onConfirm() {
	num, err := strconv.Atoi(strings.TrimSpace(p.inputField.Text))
	if err != nil || num < 1 {
		return // Keep the prompt open for another try
	}
	p.inputField.Clear()
	if p.LineChosenCallback != nil {
		p.LineChosenCallback(num)
	}
}

func (p *GotoLinePrompt) Draw(s tcell.Screen) {
	p.inputField.Draw(s)
}

func (p *GotoLinePrompt) SetFocused(v bool) {
	p.inputField.SetFocused(v)
}

func (p *GotoLinePrompt) SetPos(x, y int) {
	p.inputField.SetPos(x, y)
}

func (p *GotoLinePrompt) SetSize(width int) {
	p.inputField.SetSize(width, 1)
}

func (p *GotoLinePrompt) HandleEvent(event tcell.Event) bool {
	if ev, ok := event.(*tcell.EventKey); ok {
		switch ev.Key() {
		case tcell.KeyEsc:
			p.inputField.Clear()
			if p.CancelCallback != nil {
				p.CancelCallback()
			}
			return true
		case tcell.KeyEnter:
			p.onConfirm()
			return true
		}
	}
	return p.inputField.HandleEvent(event)
}
