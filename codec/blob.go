package codec

import (
	"fmt"

	"github.com/signadot/fieldsnap/table"
)

// Blob is an encoded object and the side tables it refers to.
type Blob struct {
	// TypeName is the persisted name of the root type.
	TypeName string
	Data     []byte
	Tables   *table.Set
}

// Clone returns a deep copy of b.
func (b *Blob) Clone() *Blob {
	if b == nil {
		return nil
	}
	return &Blob{
		TypeName: b.TypeName,
		Data:     append([]byte(nil), b.Data...),
		Tables:   b.Tables.Clone(),
	}
}

func (b *Blob) name(i uint32, c *Cursor) (string, error) {
	s, ok := b.Tables.String(int(i))
	if !ok {
		return "", &BufferError{Offset: c.Offset() - 4,
			Message: fmt.Sprintf("name index %d out of range (strings table has %d)", i, b.Tables.Strings.Len())}
	}
	return s, nil
}

func (b *Blob) readName(c *Cursor) (string, error) {
	i, err := c.ReadU32()
	if err != nil {
		return "", err
	}
	return b.name(i, c)
}
