package engine

import (
	"fmt"
	"reflect"
)

// Object is a handle to something that lives outside the captured graph,
// such as another asset. Only the handle is captured; the referenced
// object is never walked.
type Object interface {
	ObjectID() string
}

// ObjectType is the reflect type of the Object interface.
var ObjectType = reflect.TypeFor[Object]()

// Ref is a minimal named Object.
type Ref struct {
	ID string
}

func (r *Ref) ObjectID() string {
	if r == nil {
		return ""
	}
	return r.ID
}

func (r *Ref) String() string {
	return fmt.Sprintf("ref(%s)", r.ObjectID())
}

// Resolver maps object ids back to objects when a snapshot is loaded
// from a file.
type Resolver interface {
	Resolve(id string) (Object, error)
}

// RefResolver resolves every id to a *Ref with that id.
type RefResolver struct{}

func (RefResolver) Resolve(id string) (Object, error) {
	if id == "" {
		return nil, nil
	}
	return &Ref{ID: id}, nil
}

// MapResolver resolves ids from a fixed set of objects.
type MapResolver map[string]Object

func (m MapResolver) Resolve(id string) (Object, error) {
	if id == "" {
		return nil, nil
	}
	obj, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("unknown object %q", id)
	}
	return obj, nil
}

// IsNil reports whether o is nil or a typed nil.
func IsNil(o Object) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
