// Package dump renders models, trees and blobs as text for inspection.
package dump

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/fieldsnap/codec"
	"github.com/signadot/fieldsnap/engine"
	"github.com/signadot/fieldsnap/prop"
	"github.com/signadot/fieldsnap/table"
	"github.com/signadot/fieldsnap/tree"
)

type Option func(*state)

type state struct {
	colors  *Colors
	indent  string
	filter  func(*prop.Record) (bool, error)
	verbose bool
}

// WithColors colors the output. A nil Colors means plain text.
func WithColors(c *Colors) Option {
	return func(s *state) { s.colors = c }
}

// WithIndent sets the per level indent of Tree and Blob, two spaces by default.
func WithIndent(indent string) Option {
	return func(s *state) { s.indent = indent }
}

// WithFilter restricts Records to records for which f returns true.
func WithFilter(f func(*prop.Record) (bool, error)) Option {
	return func(s *state) { s.filter = f }
}

// Verbose includes vacant positions and raw payload bytes.
func Verbose() Option {
	return func(s *state) { s.verbose = true }
}

func newState(opts []Option) *state {
	s := &state{indent: "  "}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *state) c(a ColorAttr, str string) string {
	return s.colors.Get(a)(str)
}

// FormatValue renders the value of kind k, resolving external kinds in
// tables when it is non nil.
func FormatValue(k prop.Kind, v *prop.Value, tables *table.Set) string {
	switch k {
	case prop.Generic:
		return ""
	case prop.String:
		if s, ok := tables.String(v.Index()); ok {
			return strconv.Quote(s)
		}
	case prop.ObjectRef:
		if tables != nil {
			if o, ok := tables.Objects.At(v.Index()); ok {
				if engine.IsNil(o) {
					return "null"
				}
				return "&" + o.ObjectID()
			}
		}
	case prop.Curve:
		if tables != nil {
			if c, ok := tables.Curves.At(v.Index()); ok && c != nil {
				return fmt.Sprintf("curve(%d keys)", len(c.Keys))
			}
		}
	case prop.Gradient:
		if tables != nil {
			if g, ok := tables.Gradients.At(v.Index()); ok && g != nil {
				return fmt.Sprintf("gradient(%d colors, %d alphas)", len(g.ColorKeys), len(g.AlphaKeys))
			}
		}
	case prop.ArraySize:
		return fmt.Sprintf("[%d]", v.Index())
	case prop.Char:
		return strconv.QuoteRune(rune(v.Interface(k).(engine.Char)))
	default:
		return fmt.Sprint(v.Interface(k))
	}
	return fmt.Sprintf("#%d", v.Index())
}

// Records writes one line per record position of m.
func Records(w io.Writer, m *prop.Model, tables *table.Set, opts ...Option) error {
	s := newState(opts)
	width := len(strconv.Itoa(m.Len()))
	for i := range m.Len() {
		r := &m.Records[i]
		if r.IsPlaceholder() {
			if s.verbose {
				if _, err := fmt.Fprintf(w, "%*d %s\n", width, i, s.c(VacantColor, "<vacant>")); err != nil {
					return err
				}
			}
			continue
		}
		if s.filter != nil {
			ok, err := s.filter(r)
			if err != nil {
				return fmt.Errorf("record %s: %w", r.Path, err)
			}
			if !ok {
				continue
			}
		}
		line := fmt.Sprintf("%*d %s %s", width, i, s.c(PathColor, r.Path), s.c(KindColor, r.Kind.String()))
		if val := FormatValue(r.Kind, &r.Value, tables); val != "" {
			line += " " + s.value(r.Kind, val)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) value(k prop.Kind, val string) string {
	if k == prop.String {
		return s.c(StringColor, val)
	}
	return s.c(ValueColor, val)
}

// Tree writes the tree rooted at root, one node per line, marking nodes
// that will not be encoded.
func Tree(w io.Writer, root *tree.Node, tables *table.Set, opts ...Option) error {
	s := newState(opts)
	var err error
	root.Walk(func(n *tree.Node) bool {
		if err != nil {
			return false
		}
		depth := 0
		if n.Path != "" {
			depth = n.Depth()
		}
		var b strings.Builder
		b.WriteString(strings.Repeat(s.indent, depth))
		b.WriteString(s.c(PathColor, n.Name()))
		if n.Type != nil {
			b.WriteString(s.c(SepColor, ": "))
			b.WriteString(s.c(TypeColor, n.Type.String()))
		}
		if n.Record != nil {
			if val := FormatValue(n.Record.Kind, &n.Record.Value, tables); val != "" {
				b.WriteString(" = " + s.value(n.Record.Kind, val))
			}
		}
		if n.Path != "" && !n.Valid() {
			b.WriteString(" " + s.c(StaleColor, "(stale)"))
		}
		_, err = fmt.Fprintln(w, b.String())
		return true
	})
	return err
}

// Blob walks blob and writes its blocks and leaves.
func Blob(w io.Writer, blob *codec.Blob, opts ...Option) error {
	s := newState(opts)
	return codec.Walk(blob, func(ev codec.Event) error {
		name := ev.Name
		if ev.Index >= 0 {
			name = "[" + strconv.Itoa(ev.Index) + "]"
		}
		pad := strings.Repeat(s.indent, ev.Depth)
		var line string
		switch ev.Kind {
		case codec.Enter:
			line = fmt.Sprintf("%s%s%s%s %s", pad, s.c(PathColor, name), s.c(SepColor, ": "),
				s.c(TypeColor, ev.TypeName), s.c(KindColor, fmt.Sprintf("%s(%d)", ev.Tag, ev.Count)))
			if ev.Tag == prop.ArraySize {
				line += " " + s.c(KindColor, "of "+ev.ElemKind.String())
			}
			if s.verbose {
				line += fmt.Sprintf(" @%d+%d", ev.Offset, ev.Len)
			}
		case codec.Leaf:
			var v prop.Value
			if err := v.SetPayload(ev.Tag, ev.Payload); err != nil {
				return err
			}
			line = fmt.Sprintf("%s%s%s%s %s", pad, s.c(PathColor, name), s.c(SepColor, ": "),
				s.c(KindColor, ev.Tag.String()), s.value(ev.Tag, FormatValue(ev.Tag, &v, blob.Tables)))
			if s.verbose {
				line += fmt.Sprintf(" @%d [% x]", ev.Offset, ev.Payload)
			}
		case codec.Exit:
			return nil
		}
		_, err := fmt.Fprintln(w, line)
		return err
	})
}
