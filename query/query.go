// Package query filters records with expressions such as
//
//	kind == "String" && value startsWith "enemy"
//	Under("items") && depth > 2
//
// Expressions see the fields of Env and its methods.
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/fieldsnap/engine"
	"github.com/signadot/fieldsnap/kpath"
	"github.com/signadot/fieldsnap/prop"
	"github.com/signadot/fieldsnap/table"
)

// Env is what an expression sees for one record.
type Env struct {
	Path  string `expr:"path"`
	Kind  string `expr:"kind"`
	Depth int    `expr:"depth"`
	// Index is the side table slot of an external record, or -1.
	Index int `expr:"index"`
	// Value is the record's value: the string, object id, key count or
	// element count for those kinds, the inline value otherwise.
	Value    any  `expr:"value"`
	External bool `expr:"external"`
}

// Filter is a compiled expression.
type Filter struct {
	src string
	prg *vm.Program
}

func Compile(src string) (*Filter, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", src, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

func (f *Filter) String() string {
	return f.src
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
	}
}

// Under reports whether the record is at or below parent.
func (e Env) Under(parent string) bool {
	pkp, err := kpath.Parse(parent)
	if err != nil {
		return false
	}
	kp, err := kpath.Parse(e.Path)
	if err != nil {
		return false
	}
	return kp.Equal(pkp) || kp.IsChildOf(pkp)
}

// NewEnv builds the expression environment for r.
func NewEnv(r *prop.Record, tables *table.Set) Env {
	env := Env{
		Path:     r.Path,
		Kind:     r.Kind.String(),
		Depth:    prop.Depth(r.Path),
		Index:    -1,
		External: r.Kind.IsExternal(),
	}
	if env.External {
		env.Index = r.Value.Index()
	}
	switch r.Kind {
	case prop.String:
		if s, ok := tables.String(r.Value.Index()); ok {
			env.Value = s
		}
	case prop.ObjectRef:
		if tables != nil {
			if o, ok := tables.Objects.At(r.Value.Index()); ok && !engine.IsNil(o) {
				env.Value = o.ObjectID()
			}
		}
	case prop.Curve:
		if tables != nil {
			if c, ok := tables.Curves.At(r.Value.Index()); ok && c != nil {
				env.Value = len(c.Keys)
			}
		}
	case prop.Gradient:
		if tables != nil {
			if g, ok := tables.Gradients.At(r.Value.Index()); ok && g != nil {
				env.Value = len(g.ColorKeys)
			}
		}
	case prop.Generic:
	default:
		env.Value = r.Value.Interface(r.Kind)
	}
	return env
}

// Match evaluates f against r.
func (f *Filter) Match(r *prop.Record, tables *table.Set) (bool, error) {
	env := NewEnv(r, tables)
	res, err := expr.Run(f.prg, env)
	if err != nil {
		return false, fmt.Errorf("filter %q on %s: %w", f.src, r.Path, err)
	}
	b, _ := res.(bool)
	return b, nil
}

// Func adapts f to the record filter signature used by dump.
func (f *Filter) Func(tables *table.Set) func(*prop.Record) (bool, error) {
	return func(r *prop.Record) (bool, error) {
		return f.Match(r, tables)
	}
}
