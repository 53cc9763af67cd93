package prop

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/fieldsnap/engine"
)

func TestKindNames(t *testing.T) {
	for k := Generic; k < numKinds; k++ {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v", k.String(), got)
		}
		if k.InlineSize() > ValueSize {
			t.Errorf("%s inline size %d exceeds %d", k, k.InlineSize(), ValueSize)
		}
	}
	if _, err := ParseKind("Nope"); err == nil {
		t.Error("expected error")
	}
	if Kind(200).Valid() {
		t.Error("Kind(200) valid")
	}
}

func TestWireTags(t *testing.T) {
	// tag bytes are persisted in blobs
	tags := map[Kind]uint8{
		Generic: 0, Int64: 1, String: 4, ObjectRef: 6, Enum: 8,
		ArraySize: 13, Char: 14, Curve: 15, Gradient: 17, BoundsInt: 22,
	}
	for k, tag := range tags {
		if uint8(k) != tag {
			t.Errorf("%s = %d, want %d", k, uint8(k), tag)
		}
	}
}

func TestValueRoundTrip(t *testing.T) {
	tests := []struct {
		kind Kind
		x    any
	}{
		{Int64, int64(-42)},
		{Enum, int64(3)},
		{Bool, true},
		{Float64, 3.25},
		{String, 7},
		{ArraySize, 5},
		{LayerMask, engine.LayerMask(0x81)},
		{Char, engine.Char('λ')},
		{Color, engine.Color{R: 1, G: 0.5, B: 0.25, A: 1}},
		{Vector2, engine.Vector2{X: 1, Y: 2}},
		{Vector3, engine.Vector3{X: 1, Y: 2, Z: 3}},
		{Vector4, engine.Vector4{X: 1, Y: 2, Z: 3, W: 4}},
		{Quaternion, engine.Identity},
		{Rect, engine.Rect{X: 1, Y: 2, W: 3, H: 4}},
		{Bounds, engine.Bounds{Center: engine.Vector3{X: 1}, Extents: engine.Vector3{Z: 2}}},
		{Vector2Int, engine.Vector2Int{X: -1, Y: 2}},
		{Vector3Int, engine.Vector3Int{X: 1, Y: -2, Z: 3}},
		{RectInt, engine.RectInt{X: 1, Y: 2, W: 3, H: 4}},
		{BoundsInt, engine.BoundsInt{Position: engine.Vector3Int{X: 1, Y: 2, Z: 3}, Size: engine.Vector3Int{X: 4, Y: 5, Z: 6}}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			v, err := Of(tt.kind, tt.x)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.x, v.Interface(tt.kind)); diff != "" {
				t.Errorf("Interface mismatch (-want +got):\n%s", diff)
			}
			w, err := ParseHex(tt.kind, v.Hex(tt.kind))
			if err != nil {
				t.Fatal(err)
			}
			if w != v {
				t.Errorf("hex round trip changed value")
			}
		})
	}
}

func TestValueOfWrongType(t *testing.T) {
	if _, err := Of(Int64, "x"); err == nil {
		t.Error("expected error storing string as Int64")
	}
	if _, err := Of(String, -1); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestLittleEndian(t *testing.T) {
	var v Value
	v.SetIndex(0x01020304)
	if got := v.Payload(String); string(got) != "\x04\x03\x02\x01" {
		t.Errorf("payload = %x", got)
	}
	if err := v.SetPayload(String, []byte{1, 2}); err == nil {
		t.Error("expected short payload error")
	}
}

func TestRecord(t *testing.T) {
	var v Value
	v.SetIndex(3)
	r := Record{Path: "label", Kind: String, Value: v}
	if i, ok := r.ExternalIndex(); !ok || i != 3 {
		t.Errorf("ExternalIndex = %d, %v", i, ok)
	}
	r.Kind = Int64
	if _, ok := r.ExternalIndex(); ok {
		t.Error("Int64 is not external")
	}
	if (&Record{}).IsPlaceholder() != true {
		t.Error("empty record should be a placeholder")
	}
}

func rec(path string, k Kind) Record {
	return Record{Path: path, Kind: k}
}

func TestSortForBuild(t *testing.T) {
	m := &Model{Records: []Record{
		rec("items[0]", Int64),
		rec("count", Int64),
		{},
		rec("items", ArraySize),
		rec("pos.x", Float64),
		rec("items[1]", Int64),
		rec("pos", Generic),
	}}
	var got []string
	for _, r := range m.SortForBuild() {
		got = append(got, r.Path)
	}
	want := []string{"pos", "items", "count", "pos.x", "items[1]", "items[0]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortForBuild (-want +got):\n%s", diff)
	}
}

func TestModelPutRemove(t *testing.T) {
	m := &Model{}
	m.Put(rec("a", Generic))
	m.Put(rec("a.x", Int64))
	m.Put(rec("ab", Int64))
	if n := m.Remove("a"); n != 2 {
		t.Fatalf("Remove = %d, want 2", n)
	}
	if m.Len() != 3 {
		t.Fatalf("Len = %d, want 3", m.Len())
	}
	if _, ok := m.Lookup("ab"); !ok {
		t.Error("ab removed")
	}
	m.Put(rec("c", Bool))
	if idx := m.Index(); idx["c"] != 0 {
		t.Errorf("c placed at %d, want first placeholder", idx["c"])
	}
	if len(m.Live()) != 2 {
		t.Errorf("Live = %v", m.Live())
	}
	c := m.Clone()
	c.Records[0].Path = "z"
	if m.Records[0].Path != "c" {
		t.Error("Clone shares records")
	}
}

func TestRemoveQuotedPaths(t *testing.T) {
	m := &Model{}
	m.Put(rec(`"a.b"`, ArraySize))
	m.Put(rec(`"a.b"[0]`, Int64))
	m.Put(rec("a", Generic))
	m.Put(rec("a.b", Int64))
	if n := m.Remove(`"a.b"`); n != 2 {
		t.Fatalf("Remove = %d, want 2", n)
	}
	var live []string
	for _, r := range m.Live() {
		live = append(live, r.Path)
	}
	if diff := cmp.Diff([]string{"a", "a.b"}, live); diff != "" {
		t.Errorf("live (-want +got):\n%s", diff)
	}
	if n := m.Remove("a["); n != 0 {
		t.Errorf("Remove of a malformed path = %d, want 0", n)
	}
}
