package host

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedKind is returned for types that cannot be captured.
	ErrUnsupportedKind = errors.New("unsupported kind")

	// ErrIncompatible is returned when a value cannot be stored in a field.
	ErrIncompatible = errors.New("incompatible value")
)

// UnsupportedError reports a field whose type cannot be classified.
type UnsupportedError struct {
	FieldPath string
	Type      string
	Message   string
}

func (e *UnsupportedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("type %s cannot be captured", e.Type)
	}
	if e.FieldPath != "" {
		return fmt.Sprintf("unsupported at %s: %s", e.FieldPath, msg)
	}
	return fmt.Sprintf("unsupported: %s", msg)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupportedKind
}
