package buffer

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TabIndent is the indent unit of hard-tab files, and the default of a new
// Storage.
const TabIndent = "\t"

// SpaceIndentString returns an indent unit of numSpaces spaces.
func SpaceIndentString(numSpaces int) string {
	if numSpaces <= 0 {
		return ""
	}
	return strings.Repeat(" ", numSpaces)
}

// IndentForWidth builds an indent of exactly n runes from unit, repeating
// it, then cutting the last repetition short if needed. n counts runes, not
// terminal cells: a "\t" unit with n of 1 is one tab however wide it is
// drawn. Use DisplayWidth for cells.
// For example, a unit of " " and n of 4 yields "    ", while "\t" and 1
// yields "\t".
func IndentForWidth(unit string, n int) (string, error) {
	if n <= 0 {
		return "", &ConfigError{Field: "indent width", Value: n, Reason: "must be positive"}
	}
	if unit == "" {
		return "", &ConfigError{Field: "indent string", Value: unit, Reason: "must not be empty"}
	}

	runes := []rune(unit)
	var sb strings.Builder
	sb.Grow(n * len(unit) / len(runes))
	for i := 0; i < n; i++ {
		sb.WriteRune(runes[i%len(runes)])
	}
	return sb.String(), nil
}

// DisplayWidth returns how many terminal cells s occupies when each tab is
// drawn as tabSize columns.
func DisplayWidth(s string, tabSize int) int {
	var cells int
	for _, r := range s {
		if r == '\t' {
			cells += tabSize
		} else {
			cells += runewidth.RuneWidth(r)
		}
	}
	return cells
}
