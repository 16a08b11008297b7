package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("invalid grid configuration")
	// ErrOutOfRange matches every *OutOfRangeError.
	ErrOutOfRange = errors.New("cell out of range")
)

// ConfigurationError reports a grid that cannot be built from the given layout.
type ConfigurationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("grid configuration: %s=%d: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// OutOfRangeError reports a coordinate outside [0,Rows)x[0,Cols).
type OutOfRangeError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("cell (%d,%d) out of range for %dx%d grid", e.Row, e.Col, e.Rows, e.Cols)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
