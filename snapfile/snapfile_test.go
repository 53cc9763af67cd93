package snapfile

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/fieldsnap/capture"
	"github.com/signadot/fieldsnap/codec"
	"github.com/signadot/fieldsnap/engine"
	"github.com/signadot/fieldsnap/tree"
)

type prefab struct {
	Name   string
	Speed  float32
	Owner  engine.Object
	Fade   *engine.Curve
	Colors *engine.Gradient
	Tags   []string
}

func sample() *prefab {
	return &prefab{
		Name:  "crate",
		Speed: 1.5,
		Owner: &engine.Ref{ID: "level/1"},
		Fade:  &engine.Curve{Keys: []engine.Keyframe{{Time: 0, Value: 1}, {Time: 2, Value: 0, InTangent: -0.5}}, PostWrap: engine.WrapClamp},
		Colors: &engine.Gradient{
			ColorKeys: []engine.ColorKey{{Color: engine.Color{R: 1, G: 1, B: 1, A: 1}, Time: 0}},
			AlphaKeys: []engine.AlphaKey{{Alpha: 1, Time: 0}, {Alpha: 0, Time: 1}},
			Mode:      engine.GradientFixed,
		},
		Tags: []string{"wood", "small"},
	}
}

func TestBlobRoundTrip(t *testing.T) {
	p := sample()
	m, tables, err := capture.Capture(p, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	root, err := tree.Build(m, reflect.TypeFor[prefab](), nil)
	if err != nil {
		t.Fatal(err)
	}
	blob, err := codec.Encode(root, tables)
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := WriteBlob(buf, blob); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "level/1") {
		t.Errorf("object id missing from\n%s", buf.String())
	}
	back, err := ReadBlob(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if back.TypeName != blob.TypeName || !bytes.Equal(back.Data, blob.Data) {
		t.Fatal("blob header or data changed")
	}
	if !back.Tables.Equal(blob.Tables) {
		t.Error("tables changed")
	}
	var got prefab
	if err := codec.Decode(back, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(*p, got); diff != "" {
		t.Errorf("decode after file round trip (-want +got):\n%s", diff)
	}
}

func TestResolver(t *testing.T) {
	p := sample()
	m, tables, err := capture.Capture(p, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := WriteState(buf, m, tables); err != nil {
		t.Fatal(err)
	}
	owner := &engine.Ref{ID: "level/1"}
	_, back, err := ReadState(bytes.NewReader(buf.Bytes()), engine.MapResolver{"level/1": owner})
	if err != nil {
		t.Fatal(err)
	}
	if o, _ := back.Objects.At(0); o != engine.Object(owner) {
		t.Errorf("object not resolved to the given instance: %v", o)
	}
	if _, _, err := ReadState(bytes.NewReader(buf.Bytes()), engine.MapResolver{}); err == nil {
		t.Error("expected unresolved object error")
	}
}

func TestStateRoundTrip(t *testing.T) {
	p := sample()
	m, tables, err := capture.Capture(p, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.Tags = p.Tags[:1]
	m, tables, err = capture.Capture(p, m, tables)
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := WriteState(buf, m, tables); err != nil {
		t.Fatal(err)
	}
	m2, tables2, err := ReadState(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m, m2); diff != "" {
		t.Errorf("model (-want +got):\n%s", diff)
	}
	if !tables.Equal(tables2) {
		t.Error("tables changed")
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := ReadBlob(strings.NewReader("type: x\ndata: '!!'\n"), nil); err == nil {
		t.Error("expected base64 error")
	}
	bad := "records:\n- path: a\n  kind: Int64\n  value: \"0102\"\n"
	if _, _, err := ReadState(strings.NewReader(bad), nil); err == nil {
		t.Error("expected short payload error")
	}
	bad = "records:\n- path: a\n  kind: Nope\n"
	if _, _, err := ReadState(strings.NewReader(bad), nil); err == nil {
		t.Error("expected unknown kind error")
	}
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.yaml")
	err := os.WriteFile(path, []byte("capture:\n  ignore: [hideFlags, name]\nlog:\n  level: debug\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Capture: CaptureConfig{Ignore: []string{"hideFlags", "name"}, MaxDepth: capture.DefaultMaxDepth},
		Log:     LogConfig{Level: "debug"},
		Output:  OutputConfig{Color: "auto"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	if len(cfg.CaptureOptions()) != 2 {
		t.Errorf("CaptureOptions = %d options", len(cfg.CaptureOptions()))
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative depth", Config{Capture: CaptureConfig{MaxDepth: -1}}},
		{"bad level", Config{Log: LogConfig{Level: "loud"}}},
		{"bad color", Config{Output: OutputConfig{Color: "sometimes"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
