package host

import (
	"reflect"

	"github.com/signadot/fieldsnap/prop"
)

// Class is the coarse shape of a type.
type Class int

const (
	Leaf Class = iota
	Array
	Object
)

func (c Class) String() string {
	switch c {
	case Leaf:
		return "leaf"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "unknown"
}

// Shape is the classification of a type.
type Shape struct {
	Class Class
	// Kind is the record kind: the leaf kind, ArraySize or Generic.
	Kind prop.Kind
	// Elem is the element type of an Array.
	Elem reflect.Type
}

// Field describes one visible field of an object type.
type Field struct {
	Name  string
	Type  reflect.Type
	Index []int
}

// Introspector is the capability the engine uses to look at types and values.
type Introspector interface {
	// Fields returns the visible fields of an object type in declared order.
	Fields(t reflect.Type) []Field
	// Field looks up a visible field by name.
	Field(t reflect.Type, name string) (Field, bool)
	Classify(t reflect.Type) (Shape, error)
	// New returns a settable default instance of t.
	New(t reflect.Type) reflect.Value
	// TypeName is the persisted identity of t.
	TypeName(t reflect.Type) string
	// Get reads field f of object v. A nil pointer reads as the zero value.
	Get(v reflect.Value, f Field) reflect.Value
	// Set stores x in field f of object v.
	Set(v reflect.Value, f Field, x reflect.Value) error
}

// TypeNamer lets a type choose its persisted name.
type TypeNamer interface {
	SnapType() string
}

// Defaulter is implemented by types with non zero defaults.
type Defaulter interface {
	SetDefaults()
}

// Accepts reports whether a record of kind rec can be stored in a field
// classified as field. Int64 and Enum are interchangeable.
func Accepts(field, rec prop.Kind) bool {
	if field == rec {
		return true
	}
	isInt := func(k prop.Kind) bool { return k == prop.Int64 || k == prop.Enum }
	return isInt(field) && isInt(rec)
}
