package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndentForWidth(t *testing.T) {
	tests := []struct {
		unit  string
		width int
		want  string
	}{
		{" ", 4, "    "},
		{"\t", 1, "\t"},
		{"\t", 2, "\t\t"},
		{"    ", 2, "  "},
		{"ab", 3, "aba"},
		{"→·", 3, "→·→"},
		{"全", 2, "全全"}, // Two runes, four cells
	}
	for _, tt := range tests {
		got, err := IndentForWidth(tt.unit, tt.width)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "IndentForWidth(%q, %d)", tt.unit, tt.width)
	}
}

func TestIndentForWidthErrors(t *testing.T) {
	_, err := IndentForWidth(" ", 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = IndentForWidth(" ", -2)
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "indent width", configErr.Field)

	_, err = IndentForWidth("", 4)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStorageIndentString(t *testing.T) {
	buf := New([]byte("x"))
	assert.Equal(t, TabIndent, buf.IndentString())

	buf.SetIndentString(" ")
	indent, err := buf.IndentStringForWidth(4)
	require.NoError(t, err)
	assert.Equal(t, "    ", indent)

	buf.SetIndentString(TabIndent)
	indent, err = buf.IndentStringForWidth(1)
	require.NoError(t, err)
	assert.Equal(t, "\t", indent)

	_, err = buf.InsertIndent(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "\tx", buf.String())

	_, err = buf.InsertIndent(0, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "\tx", buf.String())
}

func TestSpaceIndentString(t *testing.T) {
	assert.Equal(t, "  ", SpaceIndentString(2))
	assert.Equal(t, "", SpaceIndentString(0))
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 0, DisplayWidth("", 4))
	assert.Equal(t, 6, DisplayWidth("\tab", 4))
	assert.Equal(t, 4, DisplayWidth("日本", 8))
}
