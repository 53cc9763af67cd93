package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/fieldsnap/capture"
	"github.com/signadot/fieldsnap/prop"
	"github.com/signadot/fieldsnap/snapfile"
)

type enemy struct {
	Name   string
	Health int
	Path   []float64
	Secret string
}

func (e *enemy) SetDefaults() {
	e.Name = "grunt"
	e.Health = 100
}

func TestLifecycle(t *testing.T) {
	s := New(reflect.TypeFor[*enemy](), WithCaptureOptions(capture.WithIgnore("Secret")))
	if s.Model() != nil {
		t.Fatal("state before first capture")
	}
	if _, err := s.Finalize(); err == nil {
		t.Error("Finalize before capture should fail")
	}
	e := &enemy{Name: "boss", Health: 500, Path: []float64{1, 2}, Secret: "x"}
	if err := s.Capture(e); err != nil {
		t.Fatal(err)
	}
	blob, err := s.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	var got enemy
	if err := s.Restore(blob, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(enemy{Name: "boss", Health: 500, Path: []float64{1, 2}}, got); diff != "" {
		t.Errorf("Restore (-want +got):\n%s", diff)
	}
	if err := s.Capture(enemy{}); err == nil {
		t.Error("expected error capturing a non pointer")
	}
	s.Close()
	s.Close()
	if err := s.Capture(e); !errors.Is(err, ErrClosed) {
		t.Errorf("Capture after Close = %v", err)
	}
	if s.Model() != nil || s.Tables() != nil {
		t.Error("state kept after Close")
	}
}

func TestApplyEditedModel(t *testing.T) {
	s := New(reflect.TypeFor[enemy]())
	e := &enemy{Name: "a", Health: 1}
	if err := s.Capture(e); err != nil {
		t.Fatal(err)
	}
	v, err := prop.Of(prop.Int64, int64(42))
	if err != nil {
		t.Fatal(err)
	}
	s.Model().Put(prop.Record{Path: "Health", Kind: prop.Int64, Value: v})
	var got enemy
	if err := s.Apply(&got); err != nil {
		t.Fatal(err)
	}
	if got.Health != 42 || got.Name != "a" {
		t.Errorf("Apply = %+v", got)
	}
}

func TestReset(t *testing.T) {
	s := New(reflect.TypeFor[enemy]())
	var seen []string
	unsubscribe := s.Observe(func(obj any) {
		seen = append(seen, obj.(*enemy).Name)
	})
	e := &enemy{Name: "custom", Health: 3, Path: []float64{9}}
	if err := s.Reset(e); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(enemy{Name: "grunt", Health: 100}, *e); diff != "" {
		t.Errorf("Reset (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"custom"}, seen); diff != "" {
		t.Errorf("observers (-want +got):\n%s", diff)
	}
	if r, ok := s.Model().Lookup("Health"); !ok || r.Value.Int64() != 100 {
		t.Errorf("model after reset = %v", s.Model().Live())
	}
	unsubscribe()
	if err := s.Reset(e); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 {
		t.Errorf("unsubscribed observer called: %v", seen)
	}
}

func TestSetState(t *testing.T) {
	src := New(reflect.TypeFor[enemy]())
	if err := src.Capture(&enemy{Name: "n", Health: 2}); err != nil {
		t.Fatal(err)
	}
	dst := New(reflect.TypeFor[enemy]())
	if err := dst.SetState(src.Model().Clone(), src.Tables().Clone()); err != nil {
		t.Fatal(err)
	}
	a, err := src.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	b, err := dst.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Data, b.Data); diff != "" {
		t.Errorf("blobs differ:\n%s", diff)
	}
}

func TestConfigCaptureOptions(t *testing.T) {
	cfg := snapfile.DefaultConfig()
	cfg.Capture.Ignore = []string{"Secret", "Path"}
	s := New(reflect.TypeFor[enemy](), WithCaptureOptions(cfg.CaptureOptions()...))
	if err := s.Capture(&enemy{Name: "a", Path: []float64{3}, Secret: "s"}); err != nil {
		t.Fatal(err)
	}
	var paths []string
	for _, r := range s.Model().Live() {
		paths = append(paths, r.Path)
	}
	if diff := cmp.Diff([]string{"Name", "Health"}, paths); diff != "" {
		t.Errorf("captured paths (-want +got):\n%s", diff)
	}
}
