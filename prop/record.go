package prop

import (
	"fmt"
)

// Record is a single captured value at a path.
//
// Records with an empty Path are placeholders: positions vacated by a
// path that disappeared, kept so that the positions of surviving records
// do not move between captures.
type Record struct {
	Path  string
	Kind  Kind
	Value Value
}

// IsPlaceholder reports whether r is a vacated position.
func (r *Record) IsPlaceholder() bool {
	return r.Path == ""
}

// ExternalIndex returns the side table index of r if its kind is external.
func (r *Record) ExternalIndex() (int, bool) {
	if !r.Kind.IsExternal() {
		return -1, false
	}
	return r.Value.Index(), true
}

// Count returns the element count of an ArraySize record.
func (r *Record) Count() (int, bool) {
	if r.Kind != ArraySize {
		return 0, false
	}
	return r.Value.Index(), true
}

func (r *Record) String() string {
	if r.IsPlaceholder() {
		return "<vacant>"
	}
	switch r.Kind {
	case Generic:
		return fmt.Sprintf("%s: %s", r.Path, r.Kind)
	case String, Curve, Gradient, ObjectRef:
		return fmt.Sprintf("%s: %s #%d", r.Path, r.Kind, r.Value.Index())
	}
	return fmt.Sprintf("%s: %s %v", r.Path, r.Kind, r.Value.Interface(r.Kind))
}
