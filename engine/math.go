package engine

import "fmt"

type Vector2 struct {
	X, Y float32
}

type Vector3 struct {
	X, Y, Z float32
}

type Vector4 struct {
	X, Y, Z, W float32
}

type Vector2Int struct {
	X, Y int32
}

type Vector3Int struct {
	X, Y, Z int32
}

// Rect is an axis aligned rectangle given by its origin and size.
type Rect struct {
	X, Y, W, H float32
}

type RectInt struct {
	X, Y, W, H int32
}

// Bounds is an axis aligned box given by its center and half extents.
type Bounds struct {
	Center  Vector3
	Extents Vector3
}

// Size returns the full size of the box.
func (b Bounds) Size() Vector3 {
	return Vector3{b.Extents.X * 2, b.Extents.Y * 2, b.Extents.Z * 2}
}

type BoundsInt struct {
	Position Vector3Int
	Size     Vector3Int
}

type Quaternion struct {
	X, Y, Z, W float32
}

// Identity is the rotation that does nothing.
var Identity = Quaternion{W: 1}

type Color struct {
	R, G, B, A float32
}

// LayerMask is a bit set of layers.
type LayerMask int32

// Has reports whether layer is set in m.
func (m LayerMask) Has(layer int) bool {
	if layer < 0 || layer > 31 {
		return false
	}
	return m&(1<<layer) != 0
}

// Char is a single character field. It is distinct from rune so that
// plain int32 fields are still captured as integers.
type Char rune

func (c Char) String() string {
	return string(rune(c))
}

func (v Vector2) String() string { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }
func (v Vector3) String() string { return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z) }
func (v Vector4) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", v.X, v.Y, v.Z, v.W)
}
func (v Vector2Int) String() string { return fmt.Sprintf("(%d, %d)", v.X, v.Y) }
func (v Vector3Int) String() string { return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z) }
func (c Color) String() string {
	return fmt.Sprintf("RGBA(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}
