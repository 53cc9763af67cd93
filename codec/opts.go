package codec

import (
	"log/slog"

	"github.com/signadot/fieldsnap/host"
)

type EncodeOption func(*encoder)

type DecodeOption func(*decoder)

// EncodeIntrospector sets the introspector used for type names. It must
// agree with the one the tree was built with.
func EncodeIntrospector(in host.Introspector) EncodeOption {
	return func(e *encoder) { e.in = in }
}

// DecodeIntrospector sets the introspector used to reach target fields.
func DecodeIntrospector(in host.Introspector) DecodeOption {
	return func(d *decoder) { d.in = in }
}

// DecodeLogger sets the logger recoverable decode errors are reported to.
func DecodeLogger(l *slog.Logger) DecodeOption {
	return func(d *decoder) { d.logger = l }
}

// OnIssue registers fn to be called with every recoverable decode error,
// in addition to logging it.
func OnIssue(fn func(*Issue)) DecodeOption {
	return func(d *decoder) { d.onIssue = fn }
}

// Issue is a recoverable decode error. The field it concerns is left at
// its default value.
type Issue struct {
	Path  string
	Field string
	Want  string
	Got   string
	Err   *FieldError
}

func (i *Issue) Error() string {
	return i.Err.Error()
}

func (i *Issue) Unwrap() error {
	return i.Err
}
