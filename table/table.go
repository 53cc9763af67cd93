// Package table holds the side tables for payloads that do not fit in a
// record: strings, curves, gradients and object handles.
//
// Slots are stable. A value captured at the same path in consecutive
// captures keeps its index, and an index freed by a path that went away
// is handed to the next new value before the table grows.
package table

import "slices"

// Table is an ordered, index addressed list of values.
type Table[T any] struct {
	vals []T
}

// Of returns a table holding vals.
func Of[T any](vals ...T) *Table[T] {
	return &Table[T]{vals: vals}
}

func (t *Table[T]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.vals)
}

// At returns the value at slot i.
func (t *Table[T]) At(i int) (T, bool) {
	if t == nil || i < 0 || i >= len(t.vals) {
		var zero T
		return zero, false
	}
	return t.vals[i], true
}

// Values returns the underlying values. Callers must not modify the result.
func (t *Table[T]) Values() []T {
	if t == nil {
		return nil
	}
	return t.vals
}

// Append adds v at the end and returns its slot.
func (t *Table[T]) Append(v T) int {
	t.vals = append(t.vals, v)
	return len(t.vals) - 1
}

// IndexOf returns the first slot whose value satisfies eq, or -1.
func (t *Table[T]) IndexOf(v T, eq func(a, b T) bool) int {
	if t == nil {
		return -1
	}
	return slices.IndexFunc(t.vals, func(x T) bool { return eq(x, v) })
}

// Intern returns the slot of a value equal to v, appending v if there is none.
func (t *Table[T]) Intern(v T, eq func(a, b T) bool) int {
	if i := t.IndexOf(v, eq); i >= 0 {
		return i
	}
	return t.Append(v)
}

// Clone returns a copy of t, copying each value with cp when cp is non nil.
func (t *Table[T]) Clone(cp func(T) T) *Table[T] {
	if t == nil {
		return &Table[T]{}
	}
	res := &Table[T]{vals: slices.Clone(t.vals)}
	if cp != nil {
		for i := range res.vals {
			res.vals[i] = cp(res.vals[i])
		}
	}
	return res
}

// Table returns a table of the values allocated by a.
func (a *Allocator[T]) Table() *Table[T] {
	return &Table[T]{vals: a.Finish()}
}
