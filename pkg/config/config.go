// Package config loads editor settings from a TOML or YAML file and
// applies them to text storages.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivemoreminix/textstore/ui/buffer"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Indent styles accepted by Settings.Indent.
const (
	IndentTabs   = "tab"
	IndentSpaces = "spaces"
)

// Settings are the user-editable options of the editor.
type Settings struct {
	// LineEnding forces the line ending of every opened file. When nil, the
	// line ending is detected from each file's contents.
	LineEnding *buffer.LineEnding `toml:"line_ending,omitempty" yaml:"line_ending,omitempty"`
	// Indent is IndentTabs or IndentSpaces.
	Indent      string `toml:"indent" yaml:"indent"`
	TabSize     int    `toml:"tab_size" yaml:"tab_size"`
	LineNumbers bool   `toml:"line_numbers" yaml:"line_numbers"`
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{
		Indent:      IndentTabs,
		TabSize:     4,
		LineNumbers: true,
	}
}

// DefaultPath returns the settings file in the user's configuration
// directory, or "qedit.toml" in the working directory if there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "qedit.toml"
	}
	return filepath.Join(dir, "qedit", "config.toml")
}

// Validate reports the first unusable value as a *buffer.ConfigError.
func (s Settings) Validate() error {
	if s.TabSize <= 0 {
		return &buffer.ConfigError{Field: "tab_size", Value: s.TabSize, Reason: "must be positive"}
	}
	if s.Indent != IndentTabs && s.Indent != IndentSpaces {
		return &buffer.ConfigError{Field: "indent", Value: s.Indent, Reason: "expected \"tab\" or \"spaces\""}
	}
	if s.LineEnding != nil && !s.LineEnding.Valid() {
		return &buffer.ConfigError{Field: "line_ending", Value: uint8(*s.LineEnding), Reason: "unknown value"}
	}
	return nil
}

// IndentString returns the indent unit the settings describe.
func (s Settings) IndentString() string {
	if s.Indent == IndentSpaces {
		return buffer.SpaceIndentString(s.TabSize)
	}
	return buffer.TabIndent
}

// Apply hands the line ending and indent unit to st. Existing line starts are
// not rescanned.
func (s Settings) Apply(st *buffer.Storage) {
	if s.LineEnding != nil {
		st.SetLineEnding(*s.LineEnding)
	}
	st.SetIndentString(s.IndentString())
}

// isYAML reports whether path names a YAML file. Everything else is TOML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads settings from path. Keys missing from the file keep their
// default values, and a missing file yields Defaults().
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil // File doesn't exist, not an error
		}
		return Settings{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes data as the format named by path's extension.
func Parse(path string, data []byte) (Settings, error) {
	s := Defaults()

	var err error
	if isYAML(path) {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&s)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path in the format named by its extension, creating the
// parent directory if needed.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = toml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
