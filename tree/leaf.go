package tree

import (
	"fmt"
	"reflect"

	"github.com/signadot/fieldsnap/engine"
	"github.com/signadot/fieldsnap/host"
	"github.com/signadot/fieldsnap/prop"
	"github.com/signadot/fieldsnap/table"
)

// LeafValue converts the leaf record r into a value of type t, looking
// external kinds up in tables.
func LeafValue(r *prop.Record, t reflect.Type, tables *table.Set) (reflect.Value, error) {
	if !r.Kind.IsExternal() {
		rv := reflect.New(t).Elem()
		if err := host.Store(r.Kind, &r.Value, rv); err != nil {
			return reflect.Value{}, err
		}
		return rv, nil
	}
	if tables == nil {
		tables = table.NewSet()
	}
	i := r.Value.Index()
	switch r.Kind {
	case prop.String:
		s, ok := tables.Strings.At(i)
		if !ok {
			return reflect.Value{}, slotError(r, tables.Strings.Len())
		}
		if t.Kind() != reflect.String {
			break
		}
		return reflect.ValueOf(s).Convert(t), nil
	case prop.Curve:
		c, ok := tables.Curves.At(i)
		if !ok {
			return reflect.Value{}, slotError(r, tables.Curves.Len())
		}
		if t != reflect.TypeFor[*engine.Curve]() {
			break
		}
		return reflect.ValueOf(c.Clone()), nil
	case prop.Gradient:
		g, ok := tables.Gradients.At(i)
		if !ok {
			return reflect.Value{}, slotError(r, tables.Gradients.Len())
		}
		if t != reflect.TypeFor[*engine.Gradient]() {
			break
		}
		return reflect.ValueOf(g.Clone()), nil
	case prop.ObjectRef:
		o, ok := tables.Objects.At(i)
		if !ok {
			return reflect.Value{}, slotError(r, tables.Objects.Len())
		}
		if engine.IsNil(o) {
			return reflect.Zero(t), nil
		}
		ov := reflect.ValueOf(o)
		if !ov.Type().AssignableTo(t) {
			break
		}
		rv := reflect.New(t).Elem()
		rv.Set(ov)
		return rv, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot store %s in %s", host.ErrIncompatible, r.Kind, t)
}

func slotError(r *prop.Record, n int) error {
	return fmt.Errorf("%w: %s slot %d out of range (table has %d)", host.ErrIncompatible, r.Kind, r.Value.Index(), n)
}
