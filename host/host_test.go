package host

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/fieldsnap/engine"
	"github.com/signadot/fieldsnap/prop"
)

type Mode int

type inner struct {
	X float32
}

type sample struct {
	Count   int
	Label   string
	Mode    Mode
	Pos     engine.Vector3
	Items   []int
	Fixed   [2]uint8
	Inner   inner
	Ptr     *inner
	Target  engine.Object
	Ref     *engine.Ref
	Curve   *engine.Curve
	Initial engine.Char
	Skipped int `snap:"-"`
	Renamed int `snap:"other"`
	hidden  int
}

type named struct {
	A int
}

func (named) SnapType() string { return "game.Named" }

type withDefaults struct {
	Speed float64
}

func (w *withDefaults) SetDefaults() { w.Speed = 2.5 }

func TestFields(t *testing.T) {
	r := &Reflect{}
	var names []string
	for _, f := range r.Fields(reflect.TypeFor[sample]()) {
		names = append(names, f.Name)
	}
	want := []string{"Count", "Label", "Mode", "Pos", "Items", "Fixed", "Inner", "Ptr",
		"Target", "Ref", "Curve", "Initial", "other"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Fields (-want +got):\n%s", diff)
	}
	if _, ok := r.Field(reflect.TypeFor[*sample](), "Label"); !ok {
		t.Error("Field through pointer type")
	}
	if _, ok := r.Field(reflect.TypeFor[sample](), "hidden"); ok {
		t.Error("unexported field visible")
	}
}

func TestClassify(t *testing.T) {
	r := &Reflect{}
	tests := []struct {
		typ   reflect.Type
		class Class
		kind  prop.Kind
	}{
		{reflect.TypeFor[int](), Leaf, prop.Int64},
		{reflect.TypeFor[uint16](), Leaf, prop.Int64},
		{reflect.TypeFor[Mode](), Leaf, prop.Enum},
		{reflect.TypeFor[float32](), Leaf, prop.Float64},
		{reflect.TypeFor[bool](), Leaf, prop.Bool},
		{reflect.TypeFor[string](), Leaf, prop.String},
		{reflect.TypeFor[engine.Char](), Leaf, prop.Char},
		{reflect.TypeFor[engine.LayerMask](), Leaf, prop.LayerMask},
		{reflect.TypeFor[engine.Bounds](), Leaf, prop.Bounds},
		{reflect.TypeFor[*engine.Gradient](), Leaf, prop.Gradient},
		{reflect.TypeFor[engine.Object](), Leaf, prop.ObjectRef},
		{reflect.TypeFor[*engine.Ref](), Leaf, prop.ObjectRef},
		{reflect.TypeFor[[]int](), Array, prop.ArraySize},
		{reflect.TypeFor[[3]string](), Array, prop.ArraySize},
		{reflect.TypeFor[inner](), Object, prop.Generic},
		{reflect.TypeFor[*inner](), Object, prop.Generic},
	}
	for _, tt := range tests {
		s, err := r.Classify(tt.typ)
		if err != nil {
			t.Errorf("Classify(%s): %v", tt.typ, err)
			continue
		}
		if s.Class != tt.class || s.Kind != tt.kind {
			t.Errorf("Classify(%s) = %s/%s, want %s/%s", tt.typ, s.Class, s.Kind, tt.class, tt.kind)
		}
	}
	for _, typ := range []reflect.Type{
		reflect.TypeFor[map[string]int](),
		reflect.TypeFor[any](),
		reflect.TypeFor[chan int](),
		reflect.TypeFor[func()](),
		reflect.TypeFor[complex64](),
		reflect.TypeFor[uintptr](),
		reflect.TypeFor[*int](),
	} {
		_, err := r.Classify(typ)
		if !errors.Is(err, ErrUnsupportedKind) {
			t.Errorf("Classify(%s) = %v, want ErrUnsupportedKind", typ, err)
		}
	}
}

func TestTypeName(t *testing.T) {
	r := &Reflect{}
	tests := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeFor[int](), "int"},
		{reflect.TypeFor[inner](), "github.com/signadot/fieldsnap/host.inner"},
		{reflect.TypeFor[[]inner](), "[]github.com/signadot/fieldsnap/host.inner"},
		{reflect.TypeFor[[4]int32](), "[4]int32"},
		{reflect.TypeFor[named](), "game.Named"},
		{reflect.TypeFor[*named](), "game.Named"},
		{reflect.TypeFor[[]named](), "[]game.Named"},
	}
	for _, tt := range tests {
		if got := r.TypeName(tt.typ); got != tt.want {
			t.Errorf("TypeName(%s) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	r := &Reflect{}
	v := r.New(reflect.TypeFor[withDefaults]())
	if got := v.Interface().(withDefaults).Speed; got != 2.5 {
		t.Errorf("Speed = %g, want 2.5", got)
	}
	if !v.CanSet() {
		t.Error("New value not settable")
	}
	p := r.New(reflect.TypeFor[*withDefaults]())
	if got := p.Interface().(*withDefaults).Speed; got != 2.5 {
		t.Errorf("pointer Speed = %g, want 2.5", got)
	}
}

func TestGetSet(t *testing.T) {
	r := &Reflect{}
	s := &sample{Count: 3}
	v := reflect.ValueOf(s)
	f, _ := r.Field(v.Type(), "Count")
	if got := r.Get(v, f).Int(); got != 3 {
		t.Errorf("Get = %d", got)
	}
	if err := r.Set(v, f, reflect.ValueOf(int64(9))); err != nil {
		t.Fatal(err)
	}
	if s.Count != 9 {
		t.Errorf("Count = %d", s.Count)
	}
	lf, _ := r.Field(v.Type(), "Label")
	if err := r.Set(v, lf, reflect.ValueOf(1)); !errors.Is(err, ErrIncompatible) {
		t.Errorf("Set int into string = %v", err)
	}
	var nilp *inner
	xf, _ := r.Field(reflect.TypeFor[*inner](), "X")
	if got := r.Get(reflect.ValueOf(nilp), xf).Float(); got != 0 {
		t.Errorf("Get through nil = %g", got)
	}
}

func TestInlineStore(t *testing.T) {
	var n int8
	rv := reflect.ValueOf(&n).Elem()
	v, _ := prop.Of(prop.Int64, int64(300))
	if err := Store(prop.Int64, &v, rv); !errors.Is(err, ErrIncompatible) {
		t.Errorf("Store overflow = %v", err)
	}
	v, _ = prop.Of(prop.Int64, int64(-5))
	if err := Store(prop.Int64, &v, rv); err != nil || n != -5 {
		t.Errorf("Store = %v, n = %d", err, n)
	}
	var u uint
	if err := Store(prop.Int64, &v, reflect.ValueOf(&u).Elem()); err == nil {
		t.Error("negative into uint")
	}
	pos := engine.Vector3{X: 1, Y: 2, Z: 3}
	pv, err := Inline(prop.Vector3, reflect.ValueOf(pos))
	if err != nil {
		t.Fatal(err)
	}
	var got engine.Vector3
	if err := Store(prop.Vector3, &pv, reflect.ValueOf(&got).Elem()); err != nil || got != pos {
		t.Errorf("Vector3 = %v, %v", got, err)
	}
	if err := Store(prop.Vector3, &pv, reflect.ValueOf(&n).Elem()); err == nil {
		t.Error("Vector3 into int8")
	}
	m := Mode(4)
	mv, err := Inline(prop.Enum, reflect.ValueOf(m))
	if err != nil || mv.Int64() != 4 {
		t.Errorf("Enum Inline = %d, %v", mv.Int64(), err)
	}
	if !Accepts(prop.Enum, prop.Int64) || Accepts(prop.Float64, prop.Int64) {
		t.Error("Accepts")
	}
}
