// Package capture reads a live object into a flat record model.
//
// Capture keeps side table slots stable: a string, curve, gradient or
// object handle found at the same path with the same kind as in the
// previous model keeps its previous slot. Record positions in the model
// are kept stable the same way.
package capture

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/signadot/fieldsnap/debug"
	"github.com/signadot/fieldsnap/engine"
	"github.com/signadot/fieldsnap/host"
	"github.com/signadot/fieldsnap/kpath"
	"github.com/signadot/fieldsnap/prop"
	"github.com/signadot/fieldsnap/table"
)

// DefaultMaxDepth is the default nesting limit.
const DefaultMaxDepth = 64

// ErrCycle is returned when a pointer refers back to an object being captured.
var ErrCycle = errors.New("pointer cycle")

// Option configures Capture.
type Option func(*capturer)

func WithIntrospector(in host.Introspector) Option {
	return func(c *capturer) { c.in = in }
}

// WithIgnore skips fields with any of the given names, at any depth.
func WithIgnore(names ...string) Option {
	return func(c *capturer) {
		for _, n := range names {
			c.ignore[n] = true
		}
	}
}

// WithMaxDepth limits how deep Capture descends. Deeper values fail the capture.
func WithMaxDepth(n int) Option {
	return func(c *capturer) { c.maxDepth = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *capturer) { c.logger = l }
}

type external struct {
	rec  table.Ticket
	kind prop.Kind
	slot table.Ticket
}

type capturer struct {
	in       host.Introspector
	logger   *slog.Logger
	ignore   map[string]bool
	maxDepth int

	prev       *prop.Model
	prevIndex  map[string]int
	prevTables *table.Set

	records   table.Allocator[prop.Record]
	strings   table.Allocator[string]
	curves    table.Allocator[*engine.Curve]
	gradients table.Allocator[*engine.Gradient]
	objects   table.Allocator[engine.Object]
	externals []external

	visiting map[uintptr]bool
}

// Capture reads live, a struct or a non nil pointer to one, into a new
// model and tables. prev and prevTables are the result of the previous
// capture of the same object, or nil. Capture fails as a whole: on error
// nothing is returned.
func Capture(live any, prev *prop.Model, prevTables *table.Set, opts ...Option) (*prop.Model, *table.Set, error) {
	c := &capturer{
		ignore:     map[string]bool{},
		maxDepth:   DefaultMaxDepth,
		prev:       prev,
		prevIndex:  prev.Index(),
		prevTables: prevTables,
		visiting:   map[uintptr]bool{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.in == nil {
		c.in = host.Default()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	rv := reflect.ValueOf(live)
	if !rv.IsValid() {
		return nil, nil, fmt.Errorf("capture of nil")
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil, fmt.Errorf("capture of nil %s", rv.Type())
		}
		c.visiting[rv.Pointer()] = true
	}
	shape, err := c.in.Classify(rv.Type())
	if err != nil {
		return nil, nil, err
	}
	if shape.Class != host.Object {
		return nil, nil, fmt.Errorf("capture of %s: not an object", rv.Type())
	}
	if err := c.object(nil, rv, 0); err != nil {
		return nil, nil, err
	}
	return c.finish()
}

func (c *capturer) object(kp *kpath.KPath, v reflect.Value, depth int) error {
	for _, f := range c.in.Fields(v.Type()) {
		if c.ignore[f.Name] {
			continue
		}
		if err := c.value(kp.Append(kpath.Field(f.Name)), f.Type, c.in.Get(v, f), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (c *capturer) value(kp *kpath.KPath, t reflect.Type, v reflect.Value, depth int) error {
	path := kp.String()
	if depth > c.maxDepth {
		return fmt.Errorf("capture at %s: depth exceeds %d", path, c.maxDepth)
	}
	shape, err := c.in.Classify(t)
	if err != nil {
		var ue *host.UnsupportedError
		if errors.As(err, &ue) {
			ue.FieldPath = path
		}
		return err
	}
	switch shape.Class {
	case host.Leaf:
		return c.leaf(path, shape.Kind, v)
	case host.Object:
		c.add(prop.Record{Path: path, Kind: prop.Generic})
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v = reflect.Zero(t.Elem())
			} else {
				p := v.Pointer()
				if c.visiting[p] {
					return fmt.Errorf("capture at %s: %w", path, ErrCycle)
				}
				c.visiting[p] = true
				defer delete(c.visiting, p)
			}
		}
		return c.object(kp, v, depth)
	case host.Array:
		r := prop.Record{Path: path, Kind: prop.ArraySize}
		r.Value.SetIndex(v.Len())
		c.add(r)
		for i := range v.Len() {
			if err := c.value(kp.Append(kpath.Index(i)), shape.Elem, v.Index(i), depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// add queues r at the position its path held in the previous model.
func (c *capturer) add(r prop.Record) table.Ticket {
	prev := -1
	if i, ok := c.prevIndex[r.Path]; ok {
		prev = i
	}
	if debug.Capture() {
		debug.Logf("capture: %s %s\n", r.Path, r.Kind)
	}
	return c.records.Add(prev, r)
}

func (c *capturer) leaf(path string, k prop.Kind, v reflect.Value) error {
	if !k.IsExternal() {
		val, err := host.Inline(k, v)
		if err != nil {
			return fmt.Errorf("capture at %s: %w", path, err)
		}
		c.add(prop.Record{Path: path, Kind: k, Value: val})
		return nil
	}
	prev := -1
	if i, ok := c.prevIndex[path]; ok {
		if r := &c.prev.Records[i]; r.Kind == k && c.prevSlotOK(k, r.Value.Index()) {
			prev = r.Value.Index()
		}
	}
	var slot table.Ticket
	switch k {
	case prop.String:
		slot = c.strings.Add(prev, v.String())
	case prop.Curve:
		slot = c.curves.Add(prev, v.Interface().(*engine.Curve).Clone())
	case prop.Gradient:
		slot = c.gradients.Add(prev, v.Interface().(*engine.Gradient).Clone())
	case prop.ObjectRef:
		var obj engine.Object
		if !(v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) || !v.IsNil() {
			obj, _ = v.Interface().(engine.Object)
		}
		slot = c.objects.Add(prev, obj)
	}
	rec := c.add(prop.Record{Path: path, Kind: k})
	c.externals = append(c.externals, external{rec: rec, kind: k, slot: slot})
	return nil
}

// prevSlotOK reports whether slot exists in the previous tables. Without
// previous tables every slot is trusted.
func (c *capturer) prevSlotOK(k prop.Kind, slot int) bool {
	if c.prevTables == nil {
		return true
	}
	var n int
	switch k {
	case prop.String:
		n = c.prevTables.Strings.Len()
	case prop.Curve:
		n = c.prevTables.Curves.Len()
	case prop.Gradient:
		n = c.prevTables.Gradients.Len()
	case prop.ObjectRef:
		n = c.prevTables.Objects.Len()
	}
	return slot < n
}

func (c *capturer) finish() (*prop.Model, *table.Set, error) {
	records := slices.Clone(c.records.Finish())
	tables := &table.Set{
		Strings:   table.Of(c.strings.Finish()...),
		Curves:    table.Of(c.curves.Finish()...),
		Gradients: table.Of(c.gradients.Finish()...),
		Objects:   table.Of(c.objects.Finish()...),
	}
	for _, x := range c.externals {
		var slot int
		switch x.kind {
		case prop.String:
			slot = c.strings.Slot(x.slot)
		case prop.Curve:
			slot = c.curves.Slot(x.slot)
		case prop.Gradient:
			slot = c.gradients.Slot(x.slot)
		case prop.ObjectRef:
			slot = c.objects.Slot(x.slot)
		}
		records[c.records.Slot(x.rec)].Value.SetIndex(slot)
		if debug.Slots() {
			debug.Logf("slots: %s %s -> %d\n", records[c.records.Slot(x.rec)].Path, x.kind, slot)
		}
	}
	m := &prop.Model{Records: records}
	c.logger.Debug("captured", "records", len(m.Live()), "positions", len(records),
		"strings", tables.Strings.Len(), "objects", tables.Objects.Len())
	return m, tables, nil
}
