package capture

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/fieldsnap/engine"
	"github.com/signadot/fieldsnap/host"
	"github.com/signadot/fieldsnap/prop"
	"github.com/signadot/fieldsnap/table"
)

type inner struct {
	Name string
	N    int
}

type widget struct {
	Count  int
	Label  string
	Items  []int
	In     inner
	Ptr    *inner
	Target engine.Object
	Curve  *engine.Curve
	Mask   engine.LayerMask
}

func paths(m *prop.Model) []string {
	var res []string
	for _, r := range m.Records {
		res = append(res, r.Path)
	}
	return res
}

func TestCaptureRecords(t *testing.T) {
	w := &widget{
		Count:  7,
		Label:  "foo",
		Items:  []int{1, 2, 3},
		In:     inner{Name: "in", N: 2},
		Target: &engine.Ref{ID: "obj"},
		Curve:  &engine.Curve{Keys: []engine.Keyframe{{Time: 1, Value: 1}}},
		Mask:   5,
	}
	m, tables, err := Capture(w, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"Count", "Label", "Items", "Items[0]", "Items[1]", "Items[2]",
		"In", "In.Name", "In.N", "Ptr", "Ptr.Name", "Ptr.N",
		"Target", "Curve", "Mask",
	}
	if diff := cmp.Diff(want, paths(m)); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
	items, _ := m.Lookup("Items")
	if n, _ := items.Count(); n != 3 {
		t.Errorf("Items count = %d", n)
	}
	label, _ := m.Lookup("Label")
	i, _ := label.ExternalIndex()
	if s, _ := tables.Strings.At(i); s != "foo" {
		t.Errorf("Label string = %q", s)
	}
	if got := tables.Strings.Values(); len(got) != 3 {
		t.Errorf("strings = %q, want Label, In.Name and the nil Ptr's Name", got)
	}
	target, _ := m.Lookup("Target")
	i, _ = target.ExternalIndex()
	if o, _ := tables.Objects.At(i); o.ObjectID() != "obj" {
		t.Errorf("Target = %v", o)
	}
	w.Curve.Keys[0].Value = 9
	i, _ = mustLookup(t, m, "Curve").ExternalIndex()
	if c, _ := tables.Curves.At(i); c.Keys[0].Value != 1 {
		t.Error("curve table aliases the live curve")
	}
}

func mustLookup(t *testing.T, m *prop.Model, path string) *prop.Record {
	t.Helper()
	r, ok := m.Lookup(path)
	if !ok {
		t.Fatalf("no record at %s", path)
	}
	return r
}

func TestSlotStability(t *testing.T) {
	w := &widget{Label: "a", In: inner{Name: "b"}, Target: &engine.Ref{ID: "x"}}
	m1, t1, err := Capture(w, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	m2, t2, err := Capture(w, m1, t1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m1, m2); diff != "" {
		t.Errorf("model changed (-first +second):\n%s", diff)
	}
	if !t1.Equal(t2) {
		t.Error("tables changed between identical captures")
	}
}

type v1 struct {
	S0 string
	S1 string
	A  string
}

type v2 struct {
	S0 string
	S1 string
	B  string
}

func TestSlotReuse(t *testing.T) {
	m1, t1, err := Capture(&v1{S0: "s0", S1: "s1", A: "a"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if i, _ := mustLookup(t, m1, "A").ExternalIndex(); i != 2 {
		t.Fatalf("A slot = %d, want 2", i)
	}
	m2, t2, err := Capture(&v2{S0: "s0", S1: "s1", B: "b"}, m1, t1)
	if err != nil {
		t.Fatal(err)
	}
	if i, _ := mustLookup(t, m2, "B").ExternalIndex(); i != 2 {
		t.Errorf("B slot = %d, want 2", i)
	}
	if diff := cmp.Diff([]string{"s0", "s1", "b"}, t2.Strings.Values()); diff != "" {
		t.Errorf("strings (-want +got):\n%s", diff)
	}
	// B took A's record position too
	if diff := cmp.Diff([]string{"S0", "S1", "B"}, paths(m2)); diff != "" {
		t.Errorf("positions (-want +got):\n%s", diff)
	}
}

type labels struct {
	First  string
	Middle string
	Last   string
}

type labelsNoMiddle struct {
	First string
	Last  string
}

func (labels) SnapType() string         { return "labels" }
func (labelsNoMiddle) SnapType() string { return "labels" }

func TestRemovedFieldLeavesPlaceholder(t *testing.T) {
	m1, t1, err := Capture(labels{First: "f", Middle: "m", Last: "l"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	m2, t2, err := Capture(labelsNoMiddle{First: "f", Last: "l"}, m1, t1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"First", "", "Last"}, paths(m2)); diff != "" {
		t.Errorf("positions (-want +got):\n%s", diff)
	}
	if i, _ := mustLookup(t, m2, "Last").ExternalIndex(); i != 2 {
		t.Errorf("Last slot = %d, want 2", i)
	}
	if s, _ := t2.Strings.At(1); s != "" {
		t.Errorf("vacated slot holds %q", s)
	}
}

func TestArrayResize(t *testing.T) {
	w := &widget{Items: []int{1, 2, 3}}
	m1, t1, err := Capture(w, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Items = append(w.Items, 4, 5)
	m2, _, err := Capture(w, m1, t1)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := mustLookup(t, m2, "Items").Count(); n != 5 {
		t.Errorf("count = %d, want 5", n)
	}
	for i, want := range []int64{1, 2, 3, 4, 5} {
		r := mustLookup(t, m2, "Items["+string(rune('0'+i))+"]")
		if r.Value.Int64() != want {
			t.Errorf("Items[%d] = %d", i, r.Value.Int64())
		}
	}
	// surviving records keep their positions
	idx1, idx2 := m1.Index(), m2.Index()
	for p, i := range idx1 {
		if idx2[p] != i {
			t.Errorf("%s moved from %d to %d", p, i, idx2[p])
		}
	}
}

func TestKindChangeGetsNewSlot(t *testing.T) {
	type before struct{ V string }
	type after struct{ V int }
	m1, t1, err := Capture(before{V: "x"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	m2, t2, err := Capture(after{V: 3}, m1, t1)
	if err != nil {
		t.Fatal(err)
	}
	r := mustLookup(t, m2, "V")
	if r.Kind != prop.Int64 || r.Value.Int64() != 3 {
		t.Errorf("V = %v", r)
	}
	if t2.Strings.Len() != 0 {
		t.Errorf("strings = %q", t2.Strings.Values())
	}
}

type withMap struct {
	OK  int
	Bad map[string]int
}

type node struct {
	Val  int
	Next *node
}

func TestCaptureErrors(t *testing.T) {
	_, _, err := Capture(&withMap{}, nil, nil)
	var ue *host.UnsupportedError
	if !errors.As(err, &ue) || !errors.Is(err, host.ErrUnsupportedKind) {
		t.Fatalf("map field = %v", err)
	}
	if ue.FieldPath != "Bad" {
		t.Errorf("FieldPath = %q", ue.FieldPath)
	}

	n := &node{Val: 1}
	n.Next = n
	if _, _, err := Capture(n, nil, nil); !errors.Is(err, ErrCycle) {
		t.Errorf("cycle = %v", err)
	}

	chain := &node{Next: &node{Next: &node{}}}
	if _, _, err := Capture(chain, nil, nil, WithMaxDepth(2)); err == nil {
		t.Error("expected depth error")
	}
	if _, _, err := Capture(nil, nil, nil); err == nil {
		t.Error("expected error for nil")
	}
	if _, _, err := Capture(3, nil, nil); err == nil {
		t.Error("expected error for non object")
	}
}

func TestIgnore(t *testing.T) {
	m, _, err := Capture(&widget{}, nil, nil, WithIgnore("In", "Ptr", "Target", "Curve", "Mask", "Items"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Count", "Label"}, paths(m)); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
}

func TestStalePrevSlot(t *testing.T) {
	prev := &prop.Model{Records: []prop.Record{{Path: "S0", Kind: prop.String}}}
	prev.Records[0].Value.SetIndex(40)
	m, tables, err := Capture(&v1{A: "a"}, prev, table.NewSet())
	if err != nil {
		t.Fatal(err)
	}
	if tables.Strings.Len() != 3 {
		t.Errorf("strings = %q", tables.Strings.Values())
	}
	if i, _ := mustLookup(t, m, "A").ExternalIndex(); i != 2 {
		t.Errorf("A slot = %d", i)
	}
}

type dotted struct {
	First  string `snap:"a.b"`
	Second string `snap:"a[1]"`
}

func TestPrevSlotsFollowPaths(t *testing.T) {
	d := &dotted{First: "f", Second: "s"}
	m1, t1, err := Capture(d, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{`"a.b"`, `"a[1]"`}, paths(m1)); diff != "" {
		t.Fatalf("paths (-want +got):\n%s", diff)
	}
	// positions and slots disagree from here on
	m1.Records[0], m1.Records[1] = m1.Records[1], m1.Records[0]
	d.Second = "s2"
	m2, t2, err := Capture(d, m1, t1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{`"a[1]"`, `"a.b"`}, paths(m2)); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
	for path, want := range map[string]int{`"a.b"`: 0, `"a[1]"`: 1} {
		r, ok := m2.Lookup(path)
		if !ok {
			t.Fatalf("no record at %s", path)
		}
		if got := r.Value.Index(); got != want {
			t.Errorf("%s slot = %d, want %d", path, got, want)
		}
	}
	if diff := cmp.Diff([]string{"f", "s2"}, t2.Strings.Values()); diff != "" {
		t.Errorf("strings (-want +got):\n%s", diff)
	}
}
