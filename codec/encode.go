package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/signadot/fieldsnap/debug"
	"github.com/signadot/fieldsnap/host"
	"github.com/signadot/fieldsnap/prop"
	"github.com/signadot/fieldsnap/table"
	"github.com/signadot/fieldsnap/tree"
)

type encoder struct {
	in     host.Introspector
	tables *table.Set
	buf    []byte
}

// Encode writes the valid nodes of the tree rooted at root. The returned
// blob carries a copy of tables with the field and type names added to
// its strings table; tables itself is not modified.
func Encode(root *tree.Node, tables *table.Set, opts ...EncodeOption) (*Blob, error) {
	e := &encoder{}
	for _, o := range opts {
		o(e)
	}
	if e.in == nil {
		e.in = host.Default()
	}
	if root == nil || !root.Valid() || root.Shape.Class != host.Object {
		return nil, &InvariantError{FieldPath: tree.RootName, Message: "root is not a typed object"}
	}
	e.tables = tables.Clone()
	e.u8(uint8(prop.Generic))
	e.name(tree.RootName)
	if err := e.block(root, e.object); err != nil {
		return nil, err
	}
	if debug.Encode() {
		debug.Logf("encode: %s %d bytes, %d strings\n", e.in.TypeName(root.Type), len(e.buf), e.tables.Strings.Len())
	}
	return &Blob{
		TypeName: e.in.TypeName(root.Type),
		Data:     e.buf,
		Tables:   e.tables,
	}, nil
}

func (e *encoder) u8(b uint8) {
	e.buf = append(e.buf, b)
}

func (e *encoder) u32(n uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, n)
}

func (e *encoder) name(s string) {
	e.u32(uint32(e.tables.Name(s)))
}

// block writes a length prefixed body.
func (e *encoder) block(n *tree.Node, body func(*tree.Node) error) error {
	at := len(e.buf)
	e.u32(0)
	if err := body(n); err != nil {
		return err
	}
	size := len(e.buf) - at - 4
	binary.LittleEndian.PutUint32(e.buf[at:], uint32(size))
	return nil
}

func (e *encoder) object(n *tree.Node) error {
	children := n.ValidChildren()
	e.name(e.in.TypeName(n.Type))
	e.u32(uint32(len(children)))
	for _, c := range children {
		k := kindOf(c)
		e.u8(uint8(k))
		e.name(c.Name())
		if err := e.value(c, k); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) array(n *tree.Node) error {
	children := n.ValidChildren()
	if n.Record != nil {
		if want, _ := n.Record.Count(); want != len(children) {
			return &InvariantError{FieldPath: n.Path,
				Message: fmt.Sprintf("array size %d but %d elements", want, len(children))}
		}
	}
	for i, c := range children {
		if *c.Segment.Index != i {
			return &InvariantError{FieldPath: n.Path, Message: fmt.Sprintf("element %d missing", i)}
		}
	}
	elem := prop.Generic
	if len(children) > 0 {
		elem = kindOf(children[0])
	}
	e.name(e.in.TypeName(n.Type))
	e.u32(uint32(len(children)))
	e.u8(uint8(elem))
	for _, c := range children {
		if k := kindOf(c); k != elem {
			return &InvariantError{FieldPath: c.Path,
				Message: fmt.Sprintf("element kind %s differs from %s", k, elem)}
		}
		if err := e.value(c, elem); err != nil {
			return err
		}
	}
	return nil
}

// value writes the payload or body of c, without tag and name.
func (e *encoder) value(c *tree.Node, k prop.Kind) error {
	switch k {
	case prop.Generic:
		return e.block(c, e.object)
	case prop.ArraySize:
		return e.block(c, e.array)
	}
	e.buf = append(e.buf, c.Record.Value.Payload(k)...)
	if debug.Encode() {
		debug.Logf("encode: %s %s % x\n", c.Path, k, c.Record.Value.Payload(k))
	}
	return nil
}

// kindOf is the kind a valid node is written as.
func kindOf(n *tree.Node) prop.Kind {
	if n.Record != nil {
		return n.Record.Kind
	}
	return n.Shape.Kind
}
