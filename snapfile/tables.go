package snapfile

import (
	"fmt"

	"github.com/signadot/fieldsnap/engine"
	"github.com/signadot/fieldsnap/table"
)

type keyDoc struct {
	Time  float32 `yaml:"t"`
	Value float32 `yaml:"v"`
	In    float32 `yaml:"in,omitempty"`
	Out   float32 `yaml:"out,omitempty"`
}

type curveDoc struct {
	Keys     []keyDoc `yaml:"keys"`
	PreWrap  int32    `yaml:"preWrap,omitempty"`
	PostWrap int32    `yaml:"postWrap,omitempty"`
}

type colorKeyDoc struct {
	Color [4]float32 `yaml:"color,flow"`
	Time  float32    `yaml:"t"`
}

type alphaKeyDoc struct {
	Alpha float32 `yaml:"alpha"`
	Time  float32 `yaml:"t"`
}

type gradientDoc struct {
	ColorKeys []colorKeyDoc `yaml:"colorKeys,omitempty"`
	AlphaKeys []alphaKeyDoc `yaml:"alphaKeys,omitempty"`
	Mode      int32         `yaml:"mode,omitempty"`
}

type tablesDoc struct {
	Strings   []string       `yaml:"strings,omitempty"`
	Curves    []*curveDoc    `yaml:"curves,omitempty"`
	Gradients []*gradientDoc `yaml:"gradients,omitempty"`
	Objects   []string       `yaml:"objects,omitempty"`
}

func fromTables(s *table.Set) tablesDoc {
	var doc tablesDoc
	if s == nil {
		return doc
	}
	doc.Strings = s.Strings.Values()
	for _, c := range s.Curves.Values() {
		if c == nil {
			doc.Curves = append(doc.Curves, nil)
			continue
		}
		cd := &curveDoc{PreWrap: int32(c.PreWrap), PostWrap: int32(c.PostWrap)}
		for _, k := range c.Keys {
			cd.Keys = append(cd.Keys, keyDoc{Time: k.Time, Value: k.Value, In: k.InTangent, Out: k.OutTangent})
		}
		doc.Curves = append(doc.Curves, cd)
	}
	for _, g := range s.Gradients.Values() {
		if g == nil {
			doc.Gradients = append(doc.Gradients, nil)
			continue
		}
		gd := &gradientDoc{Mode: int32(g.Mode)}
		for _, k := range g.ColorKeys {
			gd.ColorKeys = append(gd.ColorKeys, colorKeyDoc{
				Color: [4]float32{k.Color.R, k.Color.G, k.Color.B, k.Color.A},
				Time:  k.Time,
			})
		}
		for _, k := range g.AlphaKeys {
			gd.AlphaKeys = append(gd.AlphaKeys, alphaKeyDoc(k))
		}
		doc.Gradients = append(doc.Gradients, gd)
	}
	for _, o := range s.Objects.Values() {
		id := ""
		if !engine.IsNil(o) {
			id = o.ObjectID()
		}
		doc.Objects = append(doc.Objects, id)
	}
	return doc
}

func (doc *tablesDoc) toTables(r engine.Resolver) (*table.Set, error) {
	if r == nil {
		r = engine.RefResolver{}
	}
	s := table.NewSet()
	for _, str := range doc.Strings {
		s.Strings.Append(str)
	}
	for _, cd := range doc.Curves {
		if cd == nil {
			s.Curves.Append(nil)
			continue
		}
		c := &engine.Curve{PreWrap: engine.WrapMode(cd.PreWrap), PostWrap: engine.WrapMode(cd.PostWrap)}
		for _, k := range cd.Keys {
			c.Keys = append(c.Keys, engine.Keyframe{Time: k.Time, Value: k.Value, InTangent: k.In, OutTangent: k.Out})
		}
		s.Curves.Append(c)
	}
	for _, gd := range doc.Gradients {
		if gd == nil {
			s.Gradients.Append(nil)
			continue
		}
		g := &engine.Gradient{Mode: engine.GradientMode(gd.Mode)}
		for _, k := range gd.ColorKeys {
			g.ColorKeys = append(g.ColorKeys, engine.ColorKey{
				Color: engine.Color{R: k.Color[0], G: k.Color[1], B: k.Color[2], A: k.Color[3]},
				Time:  k.Time,
			})
		}
		for _, k := range gd.AlphaKeys {
			g.AlphaKeys = append(g.AlphaKeys, engine.AlphaKey(k))
		}
		s.Gradients.Append(g)
	}
	for i, id := range doc.Objects {
		obj, err := r.Resolve(id)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Objects.Append(obj)
	}
	return s, nil
}
