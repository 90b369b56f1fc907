package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by Storage operations. Use errors.Is against these, or
// errors.As with *RangeError and *ConfigError for the details.
var (
	ErrOutOfRange    = errors.New("out of range")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// A RangeError reports an offset or edit range outside of the buffer. A
// Storage operation that returns a RangeError has not modified anything.
type RangeError struct {
	Op     string // Operation that failed, like "edit" or "lineIndex"
	Offset int
	Length int // Zero for single-offset operations
	Len    int // Length of the buffer at the time of the call
}

func (e *RangeError) Error() string {
	if e.Length != 0 {
		return fmt.Sprintf("buffer: %s: range [%d, %d) out of bounds [0, %d]", e.Op, e.Offset, e.Offset+e.Length, e.Len)
	}
	return fmt.Sprintf("buffer: %s: offset %d out of bounds [0, %d]", e.Op, e.Offset, e.Len)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// A ConfigError reports an unusable configuration value, like an indent
// width of zero.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("buffer: invalid %s %#v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
