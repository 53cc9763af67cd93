package engine

import "slices"

type WrapMode int32

const (
	WrapDefault WrapMode = iota
	WrapOnce
	WrapLoop
	WrapPingPong
	WrapClamp
)

type Keyframe struct {
	Time       float32
	Value      float32
	InTangent  float32
	OutTangent float32
}

// Curve is an animation curve. Curves are reference payloads: a field of
// type *Curve is stored in the curves table.
type Curve struct {
	Keys     []Keyframe
	PreWrap  WrapMode
	PostWrap WrapMode
}

// Clone returns a deep copy of c.
func (c *Curve) Clone() *Curve {
	if c == nil {
		return nil
	}
	res := *c
	res.Keys = slices.Clone(c.Keys)
	return &res
}

// Equal reports whether c and o hold the same keys and wrap modes.
func (c *Curve) Equal(o *Curve) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.PreWrap == o.PreWrap && c.PostWrap == o.PostWrap && slices.Equal(c.Keys, o.Keys)
}

// Evaluate samples the curve at t using hermite interpolation between keys.
// Wrap modes are not applied; t outside the key range clamps.
func (c *Curve) Evaluate(t float32) float32 {
	if c == nil || len(c.Keys) == 0 {
		return 0
	}
	keys := c.Keys
	if t <= keys[0].Time {
		return keys[0].Value
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Value
	}
	i := 1
	for keys[i].Time < t {
		i++
	}
	k0, k1 := keys[i-1], keys[i]
	dt := k1.Time - k0.Time
	if dt == 0 {
		return k1.Value
	}
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}

type GradientMode int32

const (
	GradientBlend GradientMode = iota
	GradientFixed
)

type ColorKey struct {
	Color Color
	Time  float32
}

type AlphaKey struct {
	Alpha float32
	Time  float32
}

// Gradient is a color gradient, stored in the gradients table.
type Gradient struct {
	ColorKeys []ColorKey
	AlphaKeys []AlphaKey
	Mode      GradientMode
}

func (g *Gradient) Clone() *Gradient {
	if g == nil {
		return nil
	}
	res := *g
	res.ColorKeys = slices.Clone(g.ColorKeys)
	res.AlphaKeys = slices.Clone(g.AlphaKeys)
	return &res
}

func (g *Gradient) Equal(o *Gradient) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g.Mode == o.Mode &&
		slices.Equal(g.ColorKeys, o.ColorKeys) &&
		slices.Equal(g.AlphaKeys, o.AlphaKeys)
}
