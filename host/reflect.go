package host

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/signadot/fieldsnap/engine"
	"github.com/signadot/fieldsnap/prop"
)

var (
	typeNamerType = reflect.TypeFor[TypeNamer]()
	defaulterType = reflect.TypeFor[Defaulter]()
	curveType     = reflect.TypeFor[*engine.Curve]()
	gradientType  = reflect.TypeFor[*engine.Gradient]()
)

var engineKinds = map[reflect.Type]prop.Kind{
	reflect.TypeFor[engine.Vector2]():    prop.Vector2,
	reflect.TypeFor[engine.Vector3]():    prop.Vector3,
	reflect.TypeFor[engine.Vector4]():    prop.Vector4,
	reflect.TypeFor[engine.Vector2Int](): prop.Vector2Int,
	reflect.TypeFor[engine.Vector3Int](): prop.Vector3Int,
	reflect.TypeFor[engine.Rect]():       prop.Rect,
	reflect.TypeFor[engine.RectInt]():    prop.RectInt,
	reflect.TypeFor[engine.Bounds]():     prop.Bounds,
	reflect.TypeFor[engine.BoundsInt]():  prop.BoundsInt,
	reflect.TypeFor[engine.Quaternion](): prop.Quaternion,
	reflect.TypeFor[engine.Color]():      prop.Color,
	reflect.TypeFor[engine.LayerMask]():  prop.LayerMask,
	reflect.TypeFor[engine.Char]():       prop.Char,
	curveType:                            prop.Curve,
	gradientType:                         prop.Gradient,
}

// Reflect is the reflection based Introspector. The zero value is ready
// to use.
type Reflect struct {
	fields sync.Map // reflect.Type -> []Field
}

var defaultReflect = &Reflect{}

// Default returns the shared Reflect instance.
func Default() *Reflect {
	return defaultReflect
}

func structOf(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

func (r *Reflect) Fields(t reflect.Type) []Field {
	st := structOf(t)
	if st == nil {
		return nil
	}
	if fs, ok := r.fields.Load(st); ok {
		return fs.([]Field)
	}
	var res []Field
	for i := range st.NumField() {
		sf := st.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("snap"); ok {
			tag, _, _ = strings.Cut(tag, ",")
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		res = append(res, Field{Name: name, Type: sf.Type, Index: sf.Index})
	}
	fs, _ := r.fields.LoadOrStore(st, res)
	return fs.([]Field)
}

func (r *Reflect) Field(t reflect.Type, name string) (Field, bool) {
	for _, f := range r.Fields(t) {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (r *Reflect) Classify(t reflect.Type) (Shape, error) {
	if t == nil {
		return Shape{}, &UnsupportedError{Type: "nil", Message: "nil type"}
	}
	if k, ok := engineKinds[t]; ok {
		return Shape{Class: Leaf, Kind: k}, nil
	}
	if t == engine.ObjectType || (t.Kind() != reflect.Struct && t.Implements(engine.ObjectType)) {
		return Shape{Class: Leaf, Kind: prop.ObjectRef}, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return Shape{Class: Leaf, Kind: prop.Bool}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if t.PkgPath() != "" {
			return Shape{Class: Leaf, Kind: prop.Enum}, nil
		}
		return Shape{Class: Leaf, Kind: prop.Int64}, nil
	case reflect.Float32, reflect.Float64:
		return Shape{Class: Leaf, Kind: prop.Float64}, nil
	case reflect.String:
		return Shape{Class: Leaf, Kind: prop.String}, nil
	case reflect.Slice, reflect.Array:
		return Shape{Class: Array, Kind: prop.ArraySize, Elem: t.Elem()}, nil
	case reflect.Struct:
		return Shape{Class: Object, Kind: prop.Generic}, nil
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct {
			return Shape{Class: Object, Kind: prop.Generic}, nil
		}
	}
	return Shape{}, &UnsupportedError{Type: r.TypeName(t)}
}

func (r *Reflect) New(t reflect.Type) reflect.Value {
	switch {
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		p := reflect.New(t.Elem())
		setDefaults(p)
		return p
	case t.Kind() == reflect.Struct:
		p := reflect.New(t)
		setDefaults(p)
		return p.Elem()
	}
	return reflect.New(t).Elem()
}

func setDefaults(p reflect.Value) {
	if p.Type().Implements(defaulterType) {
		p.Interface().(Defaulter).SetDefaults()
	}
}

func (r *Reflect) TypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	if n, ok := namerOf(t); ok {
		return n.SnapType()
	}
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}
		return t.PkgPath() + "." + t.Name()
	}
	switch t.Kind() {
	case reflect.Slice:
		return "[]" + r.TypeName(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + r.TypeName(t.Elem())
	case reflect.Pointer:
		return "*" + r.TypeName(t.Elem())
	}
	return t.String()
}

func namerOf(t reflect.Type) (TypeNamer, bool) {
	switch {
	case t.Kind() == reflect.Interface:
		return nil, false
	case t.Kind() == reflect.Pointer:
		if t.Implements(typeNamerType) && t.Elem().Kind() != reflect.Pointer {
			return reflect.New(t.Elem()).Interface().(TypeNamer), true
		}
	case t.Implements(typeNamerType):
		return reflect.Zero(t).Interface().(TypeNamer), true
	case reflect.PointerTo(t).Implements(typeNamerType):
		return reflect.New(t).Interface().(TypeNamer), true
	}
	return nil, false
}

func (r *Reflect) Get(v reflect.Value, f Field) reflect.Value {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Zero(f.Type)
		}
		v = v.Elem()
	}
	return v.FieldByIndex(f.Index)
}

func (r *Reflect) Set(v reflect.Value, f Field, x reflect.Value) error {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return fmt.Errorf("%w: nil object setting %s", ErrIncompatible, f.Name)
		}
		v = v.Elem()
	}
	fv := v.FieldByIndex(f.Index)
	if !fv.CanSet() {
		return fmt.Errorf("%w: field %s is not settable", ErrIncompatible, f.Name)
	}
	switch {
	case x.Type().AssignableTo(f.Type):
		fv.Set(x)
	case x.Type().ConvertibleTo(f.Type) && kindClass(x.Kind()) == kindClass(f.Type.Kind()):
		fv.Set(x.Convert(f.Type))
	default:
		return fmt.Errorf("%w: cannot assign %s to %s", ErrIncompatible, x.Type(), f.Type)
	}
	return nil
}

// kindClass groups kinds between which Set converts.
func kindClass(k reflect.Kind) reflect.Kind {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.Int
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.Uint
	case reflect.Float32, reflect.Float64:
		return reflect.Float64
	}
	return k
}
