package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fivemoreminix/textstore/ui/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
line_ending = "crlf"
indent = "spaces"
tab_size = 2
`)
	s, err := Parse("config.toml", data)
	require.NoError(t, err)

	require.NotNil(t, s.LineEnding)
	assert.Equal(t, buffer.Windows, *s.LineEnding)
	assert.Equal(t, IndentSpaces, s.Indent)
	assert.Equal(t, 2, s.TabSize)
	assert.True(t, s.LineNumbers, "missing keys keep their defaults")
	assert.Equal(t, "  ", s.IndentString())
}

func TestParseYAML(t *testing.T) {
	data := []byte("line_ending: mac\nline_numbers: false\n")
	s, err := Parse("config.yml", data)
	require.NoError(t, err)

	require.NotNil(t, s.LineEnding)
	assert.Equal(t, buffer.MacClassic, *s.LineEnding)
	assert.False(t, s.LineNumbers)
	assert.Equal(t, buffer.TabIndent, s.IndentString())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
	}{
		{"unknown line ending", "c.toml", `line_ending = "vms"`},
		{"unknown key", "c.toml", `colour = "red"`},
		{"zero tab size", "c.toml", `tab_size = 0`},
		{"bad indent", "c.yaml", "indent: both\n"},
		{"malformed", "c.toml", `tab_size = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.path, []byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestValidateReportsConfigError(t *testing.T) {
	s := Defaults()
	s.TabSize = -1
	err := s.Validate()
	assert.ErrorIs(t, err, buffer.ErrInvalidConfig)

	var ce *buffer.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "tab_size", ce.Field)
}

func TestSaveLoad(t *testing.T) {
	le := buffer.Windows
	want := Settings{LineEnding: &le, Indent: IndentSpaces, TabSize: 8, LineNumbers: false}

	for _, name := range []string{"config.toml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, Save(path, want))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	s := Defaults()
	s.Indent = "mixed"
	assert.ErrorIs(t, Save(path, s), buffer.ErrInvalidConfig)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestApply(t *testing.T) {
	st := buffer.New([]byte("a\nb"))
	le := buffer.Windows
	s := Settings{LineEnding: &le, Indent: IndentSpaces, TabSize: 3}

	s.Apply(st)
	assert.Equal(t, buffer.Windows, st.LineEnding())
	assert.Equal(t, "   ", st.IndentString())
	assert.Equal(t, 2, st.LineCount(), "applying settings does not rescan")

	Defaults().Apply(st)
	assert.Equal(t, buffer.Windows, st.LineEnding(), "no line ending keeps the current one")
	assert.Equal(t, buffer.TabIndent, st.IndentString())
}
