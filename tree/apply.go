package tree

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/signadot/fieldsnap/host"
	"github.com/signadot/fieldsnap/table"
)

// ApplyOption configures Apply.
type ApplyOption func(*applyState)

type applyState struct {
	in      host.Introspector
	logger  *slog.Logger
	onIssue func(path string, err error)
}

// WithIntrospector sets the introspector used to reach fields.
func WithIntrospector(in host.Introspector) ApplyOption {
	return func(s *applyState) { s.in = in }
}

// WithLogger sets the logger for skipped fields.
func WithLogger(l *slog.Logger) ApplyOption {
	return func(s *applyState) { s.logger = l }
}

// OnIssue registers a callback for every skipped field.
func OnIssue(fn func(path string, err error)) ApplyOption {
	return func(s *applyState) { s.onIssue = fn }
}

// Apply writes the values of the tree rooted at root into target, which
// must be a non nil pointer to a value of root's type. Fields that cannot
// be written are logged and left unchanged.
func Apply(root *Node, target any, tables *table.Set, opts ...ApplyOption) error {
	s := &applyState{}
	for _, o := range opts {
		o(s)
	}
	if s.in == nil {
		s.in = host.Default()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("apply target must be a non nil pointer, got %T", target)
	}
	obj := rv.Elem()
	if rv.Type() == root.Type {
		obj = rv
	} else if obj.Type() != root.Type {
		return fmt.Errorf("apply target %s does not match tree type %s", rv.Type(), root.Type)
	}
	s.object(root, obj, tables)
	return nil
}

func (s *applyState) issue(path string, err error) {
	s.logger.Warn("field not applied", "path", path, "error", err)
	if s.onIssue != nil {
		s.onIssue(path, err)
	}
}

// object applies the fields below n to the struct (or struct pointer) v.
func (s *applyState) object(n *Node, v reflect.Value, tables *table.Set) {
	for _, c := range n.Ordered() {
		if !c.Valid() {
			s.issue(c.Path, fmt.Errorf("no field %s on %s", c.Name(), s.in.TypeName(n.Type)))
			continue
		}
		cur := s.in.Get(v, c.Field)
		x, err := s.value(c, cur, tables)
		if err != nil {
			s.issue(c.Path, err)
			continue
		}
		if err := s.in.Set(v, c.Field, x); err != nil {
			s.issue(c.Path, err)
		}
	}
}

// value computes the new value of node c given its current value cur.
func (s *applyState) value(c *Node, cur reflect.Value, tables *table.Set) (reflect.Value, error) {
	switch c.Shape.Class {
	case host.Leaf:
		return LeafValue(c.Record, c.Type, tables)
	case host.Object:
		nv := reflect.New(c.Type).Elem()
		nv.Set(cur)
		if nv.Kind() == reflect.Pointer && nv.IsNil() {
			nv = s.in.New(c.Type)
		}
		s.object(c, nv, tables)
		return nv, nil
	case host.Array:
		return s.array(c, cur, tables)
	}
	return reflect.Value{}, fmt.Errorf("unknown shape for %s", c.Path)
}

func (s *applyState) array(c *Node, cur reflect.Value, tables *table.Set) (reflect.Value, error) {
	count := -1
	if c.Record != nil {
		count, _ = c.Record.Count()
	}
	nv := reflect.New(c.Type).Elem()
	switch c.Type.Kind() {
	case reflect.Slice:
		if count < 0 {
			count = cur.Len()
		}
		if count == 0 {
			return nv, nil
		}
		nv.Set(reflect.MakeSlice(c.Type, count, count))
		for i := range min(count, cur.Len()) {
			nv.Index(i).Set(cur.Index(i))
		}
		for i := cur.Len(); i < count; i++ {
			nv.Index(i).Set(s.in.New(c.Shape.Elem))
		}
	case reflect.Array:
		nv.Set(cur)
	}
	for _, e := range c.Ordered() {
		if !e.Valid() {
			s.issue(e.Path, fmt.Errorf("element %s out of range", e.Name()))
			continue
		}
		i := *e.Segment.Index
		if i >= nv.Len() {
			s.issue(e.Path, fmt.Errorf("element %d beyond count %d", i, nv.Len()))
			continue
		}
		x, err := s.value(e, nv.Index(i), tables)
		if err != nil {
			s.issue(e.Path, err)
			continue
		}
		if !x.Type().AssignableTo(e.Type) {
			s.issue(e.Path, fmt.Errorf("%w: %s into %s", host.ErrIncompatible, x.Type(), e.Type))
			continue
		}
		nv.Index(i).Set(x)
	}
	return nv, nil
}
