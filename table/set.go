package table

import "github.com/signadot/fieldsnap/engine"

// Set is the four side tables a snapshot refers to.
type Set struct {
	Strings   *Table[string]
	Curves    *Table[*engine.Curve]
	Gradients *Table[*engine.Gradient]
	Objects   *Table[engine.Object]
}

func NewSet() *Set {
	return &Set{
		Strings:   &Table[string]{},
		Curves:    &Table[*engine.Curve]{},
		Gradients: &Table[*engine.Gradient]{},
		Objects:   &Table[engine.Object]{},
	}
}

// Clone returns a deep copy of s. Objects are handles and are shared.
func (s *Set) Clone() *Set {
	if s == nil {
		return NewSet()
	}
	return &Set{
		Strings:   s.Strings.Clone(nil),
		Curves:    s.Curves.Clone((*engine.Curve).Clone),
		Gradients: s.Gradients.Clone((*engine.Gradient).Clone),
		Objects:   s.Objects.Clone(nil),
	}
}

// String returns the string at slot i.
func (s *Set) String(i int) (string, bool) {
	if s == nil {
		return "", false
	}
	return s.Strings.At(i)
}

// Name interns a field or type name into the strings table.
func (s *Set) Name(name string) int {
	return s.Strings.Intern(name, func(a, b string) bool { return a == b })
}

// Equal reports whether s and o hold equal values in every table.
func (s *Set) Equal(o *Set) bool {
	if s == nil || o == nil {
		return s == o
	}
	return equalTable(s.Strings, o.Strings, func(a, b string) bool { return a == b }) &&
		equalTable(s.Curves, o.Curves, (*engine.Curve).Equal) &&
		equalTable(s.Gradients, o.Gradients, (*engine.Gradient).Equal) &&
		equalTable(s.Objects, o.Objects, func(a, b engine.Object) bool {
			if engine.IsNil(a) || engine.IsNil(b) {
				return engine.IsNil(a) == engine.IsNil(b)
			}
			return a.ObjectID() == b.ObjectID()
		})
}

func equalTable[T any](a, b *Table[T], eq func(a, b T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.Len() {
		x, _ := a.At(i)
		y, _ := b.At(i)
		if !eq(x, y) {
			return false
		}
	}
	return true
}
