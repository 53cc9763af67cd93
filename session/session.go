// Package session owns the retained capture state of one object under
// authoring: the last model and its side tables. It is the boundary the
// host's lifecycle hooks call into.
//
// A Session is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/signadot/fieldsnap/capture"
	"github.com/signadot/fieldsnap/codec"
	"github.com/signadot/fieldsnap/host"
	"github.com/signadot/fieldsnap/prop"
	"github.com/signadot/fieldsnap/table"
	"github.com/signadot/fieldsnap/tree"
)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("session closed")

type Option func(*Session)

func WithIntrospector(in host.Introspector) Option {
	return func(s *Session) { s.in = in }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithCaptureOptions adds options to every capture.
func WithCaptureOptions(opts ...capture.Option) Option {
	return func(s *Session) { s.captureOpts = append(s.captureOpts, opts...) }
}

// Session is the authoring state for one target type.
type Session struct {
	t           reflect.Type
	in          host.Introspector
	logger      *slog.Logger
	captureOpts []capture.Option

	model  *prop.Model
	tables *table.Set

	observers map[int]func(obj any)
	nextObs   int
	closed    bool
}

// New returns a session for objects of type t (a struct type or a
// pointer to one). No state exists until the first Capture.
func New(t reflect.Type, opts ...Option) *Session {
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s := &Session{t: t, observers: map[int]func(any){}}
	for _, o := range opts {
		o(s)
	}
	if s.in == nil {
		s.in = host.Default()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("type", s.in.TypeName(t))
	return s
}

// Type returns the target type.
func (s *Session) Type() reflect.Type {
	return s.t
}

func (s *Session) check(obj any) (reflect.Value, error) {
	if s.closed {
		return reflect.Value{}, ErrClosed
	}
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Type().Elem() != s.t {
		return reflect.Value{}, fmt.Errorf("session for %s: got %T", s.t, obj)
	}
	return rv, nil
}

// Capture reads obj, a pointer to the session type, reusing the slots of
// the previous capture. On error the previous state is kept.
func (s *Session) Capture(obj any) error {
	if _, err := s.check(obj); err != nil {
		return err
	}
	opts := append([]capture.Option{capture.WithIntrospector(s.in), capture.WithLogger(s.logger)}, s.captureOpts...)
	m, tables, err := capture.Capture(obj, s.model, s.tables, opts...)
	if err != nil {
		return err
	}
	if s.model == nil {
		s.logger.Debug("session state created")
	}
	s.model, s.tables = m, tables
	return nil
}

// Model returns the current model, nil before the first capture. The
// authoring UI may edit it in place; Finalize and Apply use the edits.
func (s *Session) Model() *prop.Model {
	return s.model
}

func (s *Session) Tables() *table.Set {
	return s.tables
}

// SetState replaces the retained state, as when loading it from a file.
func (s *Session) SetState(m *prop.Model, tables *table.Set) error {
	if s.closed {
		return ErrClosed
	}
	if tables == nil {
		tables = table.NewSet()
	}
	s.model, s.tables = m, tables
	return nil
}

func (s *Session) tree() (*tree.Node, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.model == nil {
		return nil, fmt.Errorf("session for %s has not captured", s.t)
	}
	return tree.Build(s.model, s.t, s.in)
}

// Finalize encodes the current state into a blob.
func (s *Session) Finalize() (*codec.Blob, error) {
	root, err := s.tree()
	if err != nil {
		return nil, err
	}
	blob, err := codec.Encode(root, s.tables, codec.EncodeIntrospector(s.in))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("finalized", "bytes", len(blob.Data))
	return blob, nil
}

// Restore decodes blob into target. It does not touch the session state.
func (s *Session) Restore(blob *codec.Blob, target any, opts ...codec.DecodeOption) error {
	if _, err := s.check(target); err != nil {
		return err
	}
	opts = append([]codec.DecodeOption{codec.DecodeIntrospector(s.in), codec.DecodeLogger(s.logger)}, opts...)
	return codec.Decode(blob, target, opts...)
}

// Apply writes the current model straight into target without encoding.
func (s *Session) Apply(target any) error {
	if _, err := s.check(target); err != nil {
		return err
	}
	root, err := s.tree()
	if err != nil {
		return err
	}
	return tree.Apply(root, target, s.tables, tree.WithIntrospector(s.in), tree.WithLogger(s.logger))
}

// Observe registers fn to be called with the object being reset, before
// it is reinitialized. The returned func removes fn.
func (s *Session) Observe(fn func(obj any)) (unsubscribe func()) {
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

// Reset notifies observers, reinitializes obj to the type's defaults,
// captures it and applies the captured state back to it.
func (s *Session) Reset(obj any) error {
	rv, err := s.check(obj)
	if err != nil {
		return err
	}
	for id := range s.nextObs {
		if fn, ok := s.observers[id]; ok {
			fn(obj)
		}
	}
	rv.Elem().Set(s.in.New(s.t))
	if err := s.Capture(obj); err != nil {
		return err
	}
	return s.Apply(obj)
}

// Close drops the state and all observers. Closing twice is a no-op.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.model, s.tables = nil, nil
	clear(s.observers)
	s.logger.Debug("session closed")
}
