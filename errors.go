package flatten

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned, possibly wrapped, when a flattening
// operation is called with an argument outside of its domain. No output is
// produced in that case.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes a rejected argument.
type ArgumentError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%v: %s", e.Name, e.Value, e.Reason)
}

// Unwrap returns [ErrInvalidArgument].
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func argumentError(name string, value any, reason string) error {
	return &ArgumentError{Name: name, Value: value, Reason: reason}
}
