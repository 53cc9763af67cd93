package prop

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/signadot/fieldsnap/engine"
)

// ValueSize is the capacity of Value, the size of the largest inline
// kind (BoundsInt).
const ValueSize = 24

// Value is the inline payload of a Record. Its interpretation depends on
// the record's Kind. All multi-byte quantities are little-endian.
type Value [ValueSize]byte

var le = binary.LittleEndian

func (v *Value) putF32(i int, f float32) { le.PutUint32(v[i*4:], math.Float32bits(f)) }
func (v *Value) f32(i int) float32 { return math.Float32frombits(le.Uint32(v[i*4:])) }
func (v *Value) putI32(i int, n int32) { le.PutUint32(v[i*4:], uint32(n)) }
func (v *Value) i32(i int) int32 { return int32(le.Uint32(v[i*4:])) }

func (v *Value) SetInt64(n int64) { le.PutUint64(v[:], uint64(n)) }
func (v *Value) Int64() int64 { return int64(le.Uint64(v[:])) }
func (v *Value) SetUint32(n uint32) { le.PutUint32(v[:], n) }
func (v *Value) Uint32() uint32 { return le.Uint32(v[:]) }

func (v *Value) SetFloat64(f float64) { le.PutUint64(v[:], math.Float64bits(f)) }
func (v *Value) Float64() float64 { return math.Float64frombits(le.Uint64(v[:])) }

func (v *Value) SetBool(b bool) {
	v[0] = 0
	if b {
		v[0] = 1
	}
}
func (v *Value) Bool() bool { return v[0] != 0 }

// SetIndex stores a side table index.
func (v *Value) SetIndex(i int) { v.SetUint32(uint32(i)) }

// Index returns the side table index stored by SetIndex.
func (v *Value) Index() int { return int(v.Uint32()) }

func (v *Value) SetVector2(x engine.Vector2) { v.putF32(0, x.X); v.putF32(1, x.Y) }
func (v *Value) Vector2() engine.Vector2 { return engine.Vector2{X: v.f32(0), Y: v.f32(1)} }

func (v *Value) SetVector3(x engine.Vector3) { v.putF32(0, x.X); v.putF32(1, x.Y); v.putF32(2, x.Z) }
func (v *Value) Vector3() engine.Vector3 {
	return engine.Vector3{X: v.f32(0), Y: v.f32(1), Z: v.f32(2)}
}

func (v *Value) SetVector4(x engine.Vector4) {
	v.putF32(0, x.X)
	v.putF32(1, x.Y)
	v.putF32(2, x.Z)
	v.putF32(3, x.W)
}
func (v *Value) Vector4() engine.Vector4 {
	return engine.Vector4{X: v.f32(0), Y: v.f32(1), Z: v.f32(2), W: v.f32(3)}
}

func (v *Value) SetQuaternion(q engine.Quaternion) {
	v.SetVector4(engine.Vector4(q))
}
func (v *Value) Quaternion() engine.Quaternion { return engine.Quaternion(v.Vector4()) }

func (v *Value) SetColor(c engine.Color) {
	v.putF32(0, c.R)
	v.putF32(1, c.G)
	v.putF32(2, c.B)
	v.putF32(3, c.A)
}
func (v *Value) Color() engine.Color {
	return engine.Color{R: v.f32(0), G: v.f32(1), B: v.f32(2), A: v.f32(3)}
}

func (v *Value) SetRect(r engine.Rect) {
	v.putF32(0, r.X)
	v.putF32(1, r.Y)
	v.putF32(2, r.W)
	v.putF32(3, r.H)
}
func (v *Value) Rect() engine.Rect {
	return engine.Rect{X: v.f32(0), Y: v.f32(1), W: v.f32(2), H: v.f32(3)}
}

func (v *Value) SetBounds(b engine.Bounds) {
	v.putF32(0, b.Center.X)
	v.putF32(1, b.Center.Y)
	v.putF32(2, b.Center.Z)
	v.putF32(3, b.Extents.X)
	v.putF32(4, b.Extents.Y)
	v.putF32(5, b.Extents.Z)
}
func (v *Value) Bounds() engine.Bounds {
	return engine.Bounds{
		Center:  engine.Vector3{X: v.f32(0), Y: v.f32(1), Z: v.f32(2)},
		Extents: engine.Vector3{X: v.f32(3), Y: v.f32(4), Z: v.f32(5)},
	}
}

func (v *Value) SetVector2Int(x engine.Vector2Int) { v.putI32(0, x.X); v.putI32(1, x.Y) }
func (v *Value) Vector2Int() engine.Vector2Int {
	return engine.Vector2Int{X: v.i32(0), Y: v.i32(1)}
}

func (v *Value) SetVector3Int(x engine.Vector3Int) {
	v.putI32(0, x.X)
	v.putI32(1, x.Y)
	v.putI32(2, x.Z)
}
func (v *Value) Vector3Int() engine.Vector3Int {
	return engine.Vector3Int{X: v.i32(0), Y: v.i32(1), Z: v.i32(2)}
}

func (v *Value) SetRectInt(r engine.RectInt) {
	v.putI32(0, r.X)
	v.putI32(1, r.Y)
	v.putI32(2, r.W)
	v.putI32(3, r.H)
}
func (v *Value) RectInt() engine.RectInt {
	return engine.RectInt{X: v.i32(0), Y: v.i32(1), W: v.i32(2), H: v.i32(3)}
}

func (v *Value) SetBoundsInt(b engine.BoundsInt) {
	v.putI32(0, b.Position.X)
	v.putI32(1, b.Position.Y)
	v.putI32(2, b.Position.Z)
	v.putI32(3, b.Size.X)
	v.putI32(4, b.Size.Y)
	v.putI32(5, b.Size.Z)
}
func (v *Value) BoundsInt() engine.BoundsInt {
	return engine.BoundsInt{
		Position: engine.Vector3Int{X: v.i32(0), Y: v.i32(1), Z: v.i32(2)},
		Size:     engine.Vector3Int{X: v.i32(3), Y: v.i32(4), Z: v.i32(5)},
	}
}

// Payload returns the bytes of v that a leaf of kind k occupies on the wire.
func (v *Value) Payload(k Kind) []byte {
	return v[:k.InlineSize()]
}

// SetPayload copies a wire payload of kind k into v, clearing the rest.
func (v *Value) SetPayload(k Kind, p []byte) error {
	n := k.InlineSize()
	if len(p) != n {
		return fmt.Errorf("%s payload is %d bytes, want %d", k, len(p), n)
	}
	*v = Value{}
	copy(v[:], p)
	return nil
}

// Interface returns the value as its canonical Go type for kind k:
// int64 for Int64 and Enum, float64, bool, int for ArraySize and the
// external kinds (the table index), and the engine types otherwise.
func (v *Value) Interface(k Kind) any {
	switch k {
	case Int64, Enum:
		return v.Int64()
	case Bool:
		return v.Bool()
	case Float64:
		return v.Float64()
	case String, Curve, Gradient, ObjectRef, ArraySize:
		return v.Index()
	case LayerMask:
		return engine.LayerMask(v.i32(0))
	case Char:
		return engine.Char(v.i32(0))
	case Color:
		return v.Color()
	case Vector2:
		return v.Vector2()
	case Vector3:
		return v.Vector3()
	case Vector4:
		return v.Vector4()
	case Quaternion:
		return v.Quaternion()
	case Rect:
		return v.Rect()
	case Bounds:
		return v.Bounds()
	case Vector2Int:
		return v.Vector2Int()
	case Vector3Int:
		return v.Vector3Int()
	case RectInt:
		return v.RectInt()
	case BoundsInt:
		return v.BoundsInt()
	}
	return nil
}

// Of builds a Value of kind k from x, which must have the type
// Interface returns for k.
func Of(k Kind, x any) (Value, error) {
	var v Value
	ok := true
	switch k {
	case Int64, Enum:
		var n int64
		n, ok = x.(int64)
		v.SetInt64(n)
	case Bool:
		var b bool
		b, ok = x.(bool)
		v.SetBool(b)
	case Float64:
		var f float64
		f, ok = x.(float64)
		v.SetFloat64(f)
	case String, Curve, Gradient, ObjectRef, ArraySize:
		var i int
		i, ok = x.(int)
		if ok && (i < 0 || uint64(i) > math.MaxUint32) {
			return v, fmt.Errorf("%s index %d out of range", k, i)
		}
		v.SetIndex(i)
	case LayerMask:
		var m engine.LayerMask
		m, ok = x.(engine.LayerMask)
		v.putI32(0, int32(m))
	case Char:
		var c engine.Char
		c, ok = x.(engine.Char)
		v.putI32(0, int32(c))
	case Color:
		var c engine.Color
		c, ok = x.(engine.Color)
		v.SetColor(c)
	case Vector2:
		var a engine.Vector2
		a, ok = x.(engine.Vector2)
		v.SetVector2(a)
	case Vector3:
		var a engine.Vector3
		a, ok = x.(engine.Vector3)
		v.SetVector3(a)
	case Vector4:
		var a engine.Vector4
		a, ok = x.(engine.Vector4)
		v.SetVector4(a)
	case Quaternion:
		var a engine.Quaternion
		a, ok = x.(engine.Quaternion)
		v.SetQuaternion(a)
	case Rect:
		var a engine.Rect
		a, ok = x.(engine.Rect)
		v.SetRect(a)
	case Bounds:
		var a engine.Bounds
		a, ok = x.(engine.Bounds)
		v.SetBounds(a)
	case Vector2Int:
		var a engine.Vector2Int
		a, ok = x.(engine.Vector2Int)
		v.SetVector2Int(a)
	case Vector3Int:
		var a engine.Vector3Int
		a, ok = x.(engine.Vector3Int)
		v.SetVector3Int(a)
	case RectInt:
		var a engine.RectInt
		a, ok = x.(engine.RectInt)
		v.SetRectInt(a)
	case BoundsInt:
		var a engine.BoundsInt
		a, ok = x.(engine.BoundsInt)
		v.SetBoundsInt(a)
	case Generic:
	default:
		return v, fmt.Errorf("invalid kind %d", uint8(k))
	}
	if !ok {
		return Value{}, fmt.Errorf("cannot store %T as %s", x, k)
	}
	return v, nil
}

// Hex returns the payload of kind k as lowercase hex.
func (v *Value) Hex(k Kind) string {
	return hex.EncodeToString(v.Payload(k))
}

// ParseHex is the inverse of Hex.
func ParseHex(k Kind, s string) (Value, error) {
	var v Value
	d, err := hex.DecodeString(s)
	if err != nil {
		return v, fmt.Errorf("invalid %s payload: %w", k, err)
	}
	if err := v.SetPayload(k, d); err != nil {
		return v, err
	}
	return v, nil
}
