package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goSource = "package main\n// hi\nvar x = 1\n"

func TestDetectLanguage(t *testing.T) {
	lang := DetectLanguage("main.go", []byte(goSource))
	assert.Equal(t, "Go", lang.Name)

	assert.Same(t, PlainText, DetectLanguage("", nil))
}

func TestHighlighterUpdateLines(t *testing.T) {
	buf := New([]byte(goSource))
	h := NewHighlighter(buf, DetectLanguage("main.go", []byte(goSource)), nil)

	require.True(t, h.HasInvalidatedLines(0, buf.LineCount()-1))
	h.UpdateInvalidatedLines(0, buf.LineCount()-1)
	require.False(t, h.HasInvalidatedLines(0, buf.LineCount()-1))

	assert.Contains(t, h.GetLineMatches(0), Match{0, 6, Keyword})
	assert.Contains(t, h.GetLineMatches(1), Match{0, 4, Comment})
	assert.Contains(t, h.GetLineMatches(2), Match{0, 2, Keyword})
	assert.Contains(t, h.GetLineMatches(2), Match{8, 8, Number})
}

func TestHighlighterFollowsChanges(t *testing.T) {
	buf := New([]byte(goSource))
	h := NewHighlighter(buf, DetectLanguage("main.go", []byte(goSource)), nil)
	buf.Observe(h)
	h.UpdateLines(0, buf.LineCount()-1)

	_, err := buf.Insert(buf.LineEnd(1), []byte("\nnew"))
	require.NoError(t, err)

	assert.False(t, h.HasInvalidatedLines(0, 0))
	assert.True(t, h.HasInvalidatedLines(1, 2))
	assert.False(t, h.HasInvalidatedLines(3, 4))
	assert.Contains(t, h.GetLineMatches(3), Match{0, 2, Keyword}, "the var line moved down with its highlighting")

	_, err = buf.Delete(0, buf.Len())
	require.NoError(t, err)
	assert.Nil(t, h.GetLineMatches(1))
	assert.True(t, h.HasInvalidatedLines(0, 0))
}

func TestColorschemeFallback(t *testing.T) {
	var nilScheme *Colorscheme
	assert.Equal(t, nilScheme.GetStyle(Keyword), nilScheme.GetStyle(Default))
}
