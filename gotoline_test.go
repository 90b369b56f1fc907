package main

import (
	"testing"

	"github.com/fivemoreminix/textstore/pkg/config"
	"github.com/fivemoreminix/textstore/ui"
	"github.com/fivemoreminix/textstore/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func typeString(p *GotoLinePrompt, s string) {
	for _, r := range s {
		p.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestGotoLinePrompt(t *testing.T) {
	var chosen []int
	var cancelled bool
	p := NewGotoLinePrompt(nil, &ui.Theme{}, func(line int) { chosen = append(chosen, line) }, func() { cancelled = true })
	p.SetSize(30)

	typeString(p, "abc")
	p.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Empty(t, chosen, "not a number")

	p.inputField.Clear()
	typeString(p, "0")
	p.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Empty(t, chosen, "lines count from one")

	p.inputField.Clear()
	typeString(p, "12")
	p.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, []int{12}, chosen)
	assert.Empty(t, p.inputField.Text)

	p.HandleEvent(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone))
	assert.True(t, cancelled)
}

func TestNextLineEnding(t *testing.T) {
	le := buffer.Unix
	seen := map[buffer.LineEnding]bool{}
	for i := 0; i < 3; i++ {
		seen[le] = true
		le = nextLineEnding(le)
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, buffer.Unix, le)
}

func TestApplySettingsForcedLineEnding(t *testing.T) {
	te := ui.NewTextEdit(nil, "", []byte("one\ntwo\nthree"), &ui.Theme{})

	s := config.Defaults()
	le := buffer.Windows
	s.LineEnding = &le
	applySettings(te, s)

	assert.Equal(t, "one\r\ntwo\r\nthree", te.String())
	assert.Equal(t, []int{0, 5, 10}, te.Buffer.Lines())

	te.SetCursor(te.GetCursor().SetLineCol(1, 1))
	te.Insert("X")
	assert.Equal(t, "one\r\ntXwo\r\nthree", te.String())
	assert.Equal(t, 3, te.Buffer.LineCount())
	line, col := te.GetCursor().GetLineCol()
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, col)

	applySettings(te, s) // Same line ending again leaves the text alone
	assert.Equal(t, "one\r\ntXwo\r\nthree", te.String())
}
