package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrBadBuffer reports a truncated or inconsistent buffer.
	ErrBadBuffer = errors.New("bad buffer")
	// ErrTypeMismatch reports recorded data that does not fit the target type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnresolvedField reports a recorded field the target type lacks.
	ErrUnresolvedField = errors.New("unresolved field")
	// ErrInvariant reports a tree that cannot be encoded as built.
	ErrInvariant = errors.New("invariant violation")
)

// BufferError is a fatal decode error at a byte offset.
type BufferError struct {
	Offset  int
	Need    int
	Have    int
	Message string
}

func (e *BufferError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("bad buffer at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("bad buffer at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

func (e *BufferError) Unwrap() error {
	return ErrBadBuffer
}

// FieldError is a recoverable decode error for one field. Err is
// ErrTypeMismatch or ErrUnresolvedField, possibly wrapping a cause.
type FieldError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *FieldError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("decode error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// InvariantError is returned by Encode for trees that violate the layout
// rules, such as an array whose count disagrees with its elements.
type InvariantError struct {
	FieldPath string
	Message   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation at %s: %s", e.FieldPath, e.Message)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}
