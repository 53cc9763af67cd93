package codec

import (
	"fmt"

	"github.com/signadot/fieldsnap/prop"
)

// EventKind is the kind of a Walk event.
type EventKind int

const (
	// Enter starts a block. Count and TypeName are set, and ElemKind for arrays.
	Enter EventKind = iota
	// Leaf is a leaf value with its payload.
	Leaf
	// Exit ends the block opened by the matching Enter.
	Exit
)

func (k EventKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Leaf:
		return "leaf"
	case Exit:
		return "exit"
	}
	return "unknown"
}

// Event is one step of a schema-less walk over a blob.
type Event struct {
	Kind EventKind
	// Depth is 0 for the root block.
	Depth int
	// Name is the field name; empty for array elements.
	Name string
	// Index is the element index, or -1 for fields and the root.
	Index int
	// Tag is the kind tag of the field or element.
	Tag      prop.Kind
	TypeName string
	Count    int
	ElemKind prop.Kind
	// Payload aliases the blob data for Leaf events.
	Payload []byte
	// Offset is the position of the event's first byte in the blob data.
	Offset int
	// Len is the body length of a block.
	Len int
}

type walkState int

const (
	expectHeader walkState = iota
	readTag
	leafRead
	enterBlock
	exitBlock
	walkDone
)

type frame struct {
	c        *Cursor
	array    bool
	elemKind prop.Kind
	count    int
	next     int
	ev       Event
}

// pending is the field or element read by readTag and not yet emitted.
type pending struct {
	ev  Event
	sub *Cursor
}

// Walk visits every field and element of blob without a target type,
// checking the structure as it goes. It stops at the first error, either
// a *BufferError or an error returned by fn.
func Walk(blob *Blob, fn func(Event) error) error {
	if blob == nil {
		return &BufferError{Message: "nil blob"}
	}
	var (
		top   = NewCursor(blob.Data)
		stack []*frame
		cur   pending
		state = expectHeader
	)
	for state != walkDone {
		switch state {
		case expectHeader:
			at := top.Offset()
			tag, err := top.ReadU8()
			if err != nil {
				return err
			}
			if prop.Kind(tag) != prop.Generic {
				return &BufferError{Offset: at, Message: fmt.Sprintf("root tag is %s", prop.Kind(tag))}
			}
			name, err := blob.readName(top)
			if err != nil {
				return err
			}
			sub, err := top.readBlock()
			if err != nil {
				return err
			}
			if err := top.end(); err != nil {
				return err
			}
			cur = pending{ev: Event{Name: name, Index: -1, Tag: prop.Generic, Offset: at}, sub: sub}
			state = enterBlock

		case enterBlock:
			f := &frame{c: cur.sub, array: cur.ev.Tag == prop.ArraySize}
			ev := cur.ev
			ev.Kind = Enter
			ev.Depth = len(stack)
			ev.Len = cur.sub.Remaining()
			typeName, err := blob.readName(f.c)
			if err != nil {
				return err
			}
			count, err := f.c.ReadU32()
			if err != nil {
				return err
			}
			if uint64(count) > uint64(f.c.Remaining()) {
				return &BufferError{Offset: f.c.Offset(),
					Message: fmt.Sprintf("count %d exceeds remaining %d bytes", count, f.c.Remaining())}
			}
			ev.TypeName = typeName
			ev.Count = int(count)
			f.count = int(count)
			if f.array {
				tag, err := f.c.ReadU8()
				if err != nil {
					return err
				}
				f.elemKind = prop.Kind(tag)
				if !f.elemKind.Valid() {
					return &BufferError{Offset: f.c.Offset() - 1, Message: fmt.Sprintf("invalid element tag %d", tag)}
				}
				ev.ElemKind = f.elemKind
			}
			f.ev = ev
			stack = append(stack, f)
			if err := fn(ev); err != nil {
				return err
			}
			state = readTag

		case readTag:
			f := stack[len(stack)-1]
			if f.next == f.count {
				state = exitBlock
				break
			}
			at := f.c.Offset()
			ev := Event{Index: -1, Offset: at}
			if f.array {
				ev.Index = f.next
				ev.Tag = f.elemKind
			} else {
				tag, err := f.c.ReadU8()
				if err != nil {
					return err
				}
				ev.Tag = prop.Kind(tag)
				if !ev.Tag.Valid() {
					return &BufferError{Offset: at, Message: fmt.Sprintf("invalid kind tag %d", tag)}
				}
				if ev.Name, err = blob.readName(f.c); err != nil {
					return err
				}
			}
			f.next++
			cur = pending{ev: ev}
			if !ev.Tag.IsContainer() {
				state = leafRead
				break
			}
			sub, err := f.c.readBlock()
			if err != nil {
				return err
			}
			cur.sub = sub
			state = enterBlock

		case leafRead:
			f := stack[len(stack)-1]
			payload, err := f.c.ReadBytes(cur.ev.Tag.InlineSize())
			if err != nil {
				return err
			}
			ev := cur.ev
			ev.Kind = Leaf
			ev.Depth = len(stack)
			ev.Payload = payload
			if err := fn(ev); err != nil {
				return err
			}
			state = readTag

		case exitBlock:
			f := stack[len(stack)-1]
			if err := f.c.end(); err != nil {
				return err
			}
			stack = stack[:len(stack)-1]
			ev := f.ev
			ev.Kind = Exit
			if err := fn(ev); err != nil {
				return err
			}
			if len(stack) == 0 {
				state = walkDone
			} else {
				state = readTag
			}
		}
	}
	return nil
}

// Verify walks blob and reports the first structural error.
func Verify(blob *Blob) error {
	return Walk(blob, func(Event) error { return nil })
}
