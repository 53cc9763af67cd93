package prop

import (
	"fmt"
)

// Kind classifies the value held by a Record. Kind values are also the
// tag bytes of the binary layout and must not be renumbered.
type Kind uint8

const (
	// Generic marks an object container.
	Generic Kind = iota
	Int64
	Bool
	Float64
	String
	Color
	ObjectRef
	LayerMask
	Enum
	Vector2
	Vector3
	Vector4
	Rect
	// ArraySize marks an array container; its value is the element count.
	ArraySize
	Char
	Curve
	Bounds
	Gradient
	Quaternion
	Vector2Int
	Vector3Int
	RectInt
	BoundsInt

	numKinds
)

var kindNames = [numKinds]string{
	Generic:    "Generic",
	Int64:      "Int64",
	Bool:       "Bool",
	Float64:    "Float64",
	String:     "String",
	Color:      "Color",
	ObjectRef:  "ObjectRef",
	LayerMask:  "LayerMask",
	Enum:       "Enum",
	Vector2:    "Vector2",
	Vector3:    "Vector3",
	Vector4:    "Vector4",
	Rect:       "Rect",
	ArraySize:  "ArraySize",
	Char:       "Char",
	Curve:      "Curve",
	Bounds:     "Bounds",
	Gradient:   "Gradient",
	Quaternion: "Quaternion",
	Vector2Int: "Vector2Int",
	Vector3Int: "Vector3Int",
	RectInt:    "RectInt",
	BoundsInt:  "BoundsInt",
}

var inlineSizes = [numKinds]int{
	Generic:    0,
	Int64:      8,
	Bool:       1,
	Float64:    8,
	String:     4,
	Color:      16,
	ObjectRef:  4,
	LayerMask:  4,
	Enum:       8,
	Vector2:    8,
	Vector3:    12,
	Vector4:    16,
	Rect:       16,
	ArraySize:  4,
	Char:       4,
	Curve:      4,
	Bounds:     24,
	Gradient:   4,
	Quaternion: 16,
	Vector2Int: 8,
	Vector3Int: 12,
	RectInt:    16,
	BoundsInt:  24,
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k < numKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = kk
	return nil
}

// InlineSize is the number of payload bytes a leaf of kind k occupies in
// the binary layout. External kinds store a 4 byte table index.
func (k Kind) InlineSize() int {
	if !k.Valid() {
		return 0
	}
	return inlineSizes[k]
}

// IsExternal reports whether values of kind k live in a side table.
func (k Kind) IsExternal() bool {
	switch k {
	case String, Curve, Gradient, ObjectRef:
		return true
	}
	return false
}

// IsContainer reports whether k marks a node with children.
func (k Kind) IsContainer() bool {
	return k == Generic || k == ArraySize
}
