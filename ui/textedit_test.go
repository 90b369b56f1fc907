package ui

import (
	"testing"

	"github.com/fivemoreminix/textstore/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTextEdit(t *testing.T, contents string) (*TextEdit, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	require.NoError(t, sim.Init())
	t.Cleanup(sim.Fini)
	sim.SetSize(40, 10)

	var s tcell.Screen = sim
	te := NewTextEdit(&s, "", []byte(contents), &Theme{})
	te.SetPos(0, 0)
	te.SetSize(40, 10)
	te.SetFocused(true)
	return te, sim
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestTextEditEnterUsesLineEnding(t *testing.T) {
	te, _ := newTestTextEdit(t, "ab\r\ncd")
	require.Equal(t, buffer.Windows, te.Buffer.LineEnding())

	te.SetCursor(te.GetCursor().SetLineCol(0, 1))
	te.HandleEvent(key(tcell.KeyEnter))

	assert.Equal(t, "a\r\nb\r\ncd", te.String())
	assert.Equal(t, []int{0, 3, 6}, te.Buffer.Lines())
	line, col := te.GetCursor().GetLineCol()
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)
	assert.True(t, te.Dirty)
	assert.Equal(t, 1, te.LastChange().LinesDelta())
}

func TestTextEditInsertNormalizesLineBreaks(t *testing.T) {
	te, _ := newTestTextEdit(t, "")
	te.Buffer.SetLineEnding(buffer.Windows)

	te.Insert("a\nb\r\nc\rd")
	assert.Equal(t, "a\r\nb\r\nc\r\nd", te.String())
	assert.Equal(t, 4, te.Buffer.LineCount())
}

func TestTextEditTab(t *testing.T) {
	te, _ := newTestTextEdit(t, "ab")
	te.SetCursor(te.GetCursor().SetLineCol(0, 2))
	te.HandleEvent(key(tcell.KeyTab))
	assert.Equal(t, "ab\t", te.String())

	te, _ = newTestTextEdit(t, "ab")
	te.Buffer.SetIndentString("    ")
	te.TabSize = 4
	te.SetCursor(te.GetCursor().SetLineCol(0, 2))
	te.HandleEvent(key(tcell.KeyTab))
	assert.Equal(t, "ab  ", te.String(), "spaces reach the next tab stop")
	te.HandleEvent(key(tcell.KeyTab))
	assert.Equal(t, "ab      ", te.String())
}

func TestTextEditBackspaceJoinsLines(t *testing.T) {
	te, _ := newTestTextEdit(t, "ab\r\ncd")
	te.SetCursor(te.GetCursor().SetLineCol(1, 0))

	te.HandleEvent(key(tcell.KeyBackspace2))
	assert.Equal(t, "abcd", te.String())
	assert.Equal(t, 1, te.Buffer.LineCount())
	line, col := te.GetCursor().GetLineCol()
	assert.Equal(t, 0, line)
	assert.Equal(t, 2, col)

	te.HandleEvent(key(tcell.KeyDelete))
	assert.Equal(t, "abd", te.String())
}

func TestTextEditDeleteMultibyte(t *testing.T) {
	te, _ := newTestTextEdit(t, "añb")
	te.SetCursor(te.GetCursor().SetLineCol(0, 2))
	te.HandleEvent(key(tcell.KeyBackspace2))
	assert.Equal(t, "ab", te.String())
}

func TestTextEditSelection(t *testing.T) {
	te, _ := newTestTextEdit(t, "hello world")
	for i := 0; i < 5; i++ {
		te.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift))
	}
	assert.Equal(t, "hello", string(te.GetSelectedBytes()))

	te.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'J', tcell.ModNone))
	assert.Equal(t, "J world", te.String())
	assert.Empty(t, te.GetSelectedBytes())

	te.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl))
	line, col := te.GetCursor().GetLineCol()
	assert.Equal(t, 0, line)
	assert.Equal(t, 7, col)
}

func TestTextEditGotoLine(t *testing.T) {
	te, _ := newTestTextEdit(t, "a\nb\nc")

	te.GotoLine(2)
	line, col := te.GetCursor().GetLineCol()
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)

	te.GotoLine(100)
	line, _ = te.GetCursor().GetLineCol()
	assert.Equal(t, 2, line)
}

func TestTextEditChangeLineDelimiters(t *testing.T) {
	te, _ := newTestTextEdit(t, "a\nb\nc")
	te.SetCursor(te.GetCursor().SetLineCol(2, 1))

	te.ChangeLineDelimiters(buffer.Windows)
	assert.Equal(t, "a\r\nb\r\nc", te.String())
	assert.Equal(t, "\r\n", te.GetLineDelimiter())
	line, col := te.GetCursor().GetLineCol()
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
}

func TestTextEditDraw(t *testing.T) {
	te, sim := newTestTextEdit(t, "a\tb\nsecond")
	te.TabSize = 4
	te.Draw(sim)

	cell := func(x, y int) rune {
		r, _, _, _ := sim.GetContent(x, y)
		return r
	}

	// Line number column is three cells wide
	assert.Equal(t, '1', cell(1, 0))
	assert.Equal(t, '│', cell(2, 0))
	assert.Equal(t, 'a', cell(3, 0))
	assert.Equal(t, ' ', cell(4, 0))
	assert.Equal(t, 'b', cell(8, 0))
	assert.Equal(t, 's', cell(3, 1))
	assert.Equal(t, ' ', cell(1, 2), "no line number past the end of the buffer")
}
