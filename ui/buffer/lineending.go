package buffer

import (
	"fmt"
	"strings"
)

// LineEnding selects the byte sequence that terminates a line.
type LineEnding uint8

const (
	Unix       LineEnding = iota // "\n"
	MacClassic                   // "\r"
	Windows                      // "\r\n"
)

var terminators = [...][]byte{
	Unix:       {'\n'},
	MacClassic: {'\r'},
	Windows:    {'\r', '\n'},
}

// Terminator returns the bytes recognized and inserted as a line break.
// The returned slice is shared: do not write to it.
func (le LineEnding) Terminator() []byte {
	if int(le) >= len(terminators) {
		return terminators[Unix]
	}
	return terminators[le]
}

func (le LineEnding) String() string {
	switch le {
	case Unix:
		return "unix"
	case MacClassic:
		return "mac"
	case Windows:
		return "windows"
	}
	return fmt.Sprintf("LineEnding(%d)", uint8(le))
}

// Valid reports whether le is one of the three known line endings.
func (le LineEnding) Valid() bool {
	return le <= Windows
}

// ParseLineEnding accepts the names returned by String, and the common
// aliases "lf", "cr", and "crlf". Case is ignored.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unix", "lf":
		return Unix, nil
	case "mac", "macclassic", "cr":
		return MacClassic, nil
	case "windows", "crlf", "dos":
		return Windows, nil
	}
	return Unix, &ConfigError{Field: "line ending", Value: s, Reason: "expected unix, mac, or windows"}
}

// MarshalText lets a LineEnding be used directly in TOML and YAML settings.
func (le LineEnding) MarshalText() ([]byte, error) {
	if !le.Valid() {
		return nil, &ConfigError{Field: "line ending", Value: uint8(le), Reason: "unknown value"}
	}
	return []byte(le.String()), nil
}

func (le *LineEnding) UnmarshalText(text []byte) error {
	v, err := ParseLineEnding(string(text))
	if err != nil {
		return err
	}
	*le = v
	return nil
}

// DetectLineEnding returns the most common line ending in contents. When
// there are no line breaks, or on a tie with Unix, Unix is returned.
func DetectLineEnding(contents []byte) LineEnding {
	var lf, cr, crlf int
	for i := 0; i < len(contents); i++ {
		switch contents[i] {
		case '\r':
			if i+1 < len(contents) && contents[i+1] == '\n' {
				crlf++
				i++ // Consume the '\n'
			} else {
				cr++
			}
		case '\n':
			lf++
		}
	}

	if crlf > lf && crlf >= cr {
		return Windows
	}
	if cr > lf && cr > crlf {
		return MacClassic
	}
	return Unix
}
