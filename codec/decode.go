package codec

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"

	"github.com/signadot/fieldsnap/debug"
	"github.com/signadot/fieldsnap/host"
	"github.com/signadot/fieldsnap/kpath"
	"github.com/signadot/fieldsnap/prop"
	"github.com/signadot/fieldsnap/tree"
)

type decoder struct {
	in      host.Introspector
	logger  *slog.Logger
	onIssue func(*Issue)
	blob    *Blob
}

// Decode decodes blob into target, which must be a non nil pointer. The
// value is built fresh and stored into target only if decoding succeeds,
// so on error target is unchanged.
func Decode(blob *Blob, target any, opts ...DecodeOption) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode target must be a non nil pointer, got %T", target)
	}
	v, err := DecodeValue(blob, rv.Type().Elem(), opts...)
	if err != nil {
		return err
	}
	rv.Elem().Set(v)
	return nil
}

// DecodeValue decodes blob into a new value of type t.
func DecodeValue(blob *Blob, t reflect.Type, opts ...DecodeOption) (reflect.Value, error) {
	d := &decoder{blob: blob}
	for _, o := range opts {
		o(d)
	}
	if d.in == nil {
		d.in = host.Default()
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if blob == nil {
		return reflect.Value{}, &BufferError{Message: "nil blob"}
	}
	shape, err := d.in.Classify(t)
	if err != nil || shape.Class != host.Object {
		return reflect.Value{}, fmt.Errorf("decode target %s is not an object", t)
	}
	c := NewCursor(blob.Data)
	tag, err := c.ReadU8()
	if err != nil {
		return reflect.Value{}, err
	}
	if prop.Kind(tag) != prop.Generic {
		return reflect.Value{}, &BufferError{Offset: 0, Message: fmt.Sprintf("root tag is %s", prop.Kind(tag))}
	}
	if _, err := blob.readName(c); err != nil {
		return reflect.Value{}, err
	}
	body, err := c.readBlock()
	if err != nil {
		return reflect.Value{}, err
	}
	if err := c.end(); err != nil {
		return reflect.Value{}, err
	}
	v, ok, err := d.object(body, nil, t)
	if err != nil {
		return reflect.Value{}, err
	}
	if !ok {
		v = d.in.New(t)
	}
	return v, nil
}

func (d *decoder) issue(kp *kpath.KPath, want, got string, err error, msg string) {
	path, field := kp.String(), kp.Last().Name()
	fe := &FieldError{FieldPath: path, Message: msg, Err: err}
	d.logger.Warn(msg, "path", path, "field", field, "want", want, "got", got)
	if d.onIssue != nil {
		d.onIssue(&Issue{Path: path, Field: field, Want: want, Got: got, Err: fe})
	}
}

// object decodes an object body into a new value of type t. ok is false
// when the recorded type does not match t, in which case the body is
// ignored.
func (d *decoder) object(c *Cursor, kp *kpath.KPath, t reflect.Type) (reflect.Value, bool, error) {
	typeName, err := d.blob.readName(c)
	if err != nil {
		return reflect.Value{}, false, err
	}
	count, err := c.ReadU32()
	if err != nil {
		return reflect.Value{}, false, err
	}
	if want := d.in.TypeName(t); typeName != want {
		d.issue(kp, want, typeName, ErrTypeMismatch, "recorded type differs, block skipped")
		return reflect.Value{}, false, nil
	}
	v := d.in.New(t)
	for range count {
		tag, err := c.ReadU8()
		if err != nil {
			return reflect.Value{}, false, err
		}
		k := prop.Kind(tag)
		if !k.Valid() {
			return reflect.Value{}, false, &BufferError{Offset: c.Offset() - 1, Message: fmt.Sprintf("invalid kind tag %d", tag)}
		}
		name, err := d.blob.readName(c)
		if err != nil {
			return reflect.Value{}, false, err
		}
		fkp := kp.Append(kpath.Field(name))
		var (
			sub     *Cursor
			payload []byte
		)
		if k.IsContainer() {
			sub, err = c.readBlock()
		} else {
			payload, err = c.ReadBytes(k.InlineSize())
		}
		if err != nil {
			return reflect.Value{}, false, err
		}
		f, found := d.in.Field(t, name)
		if !found {
			d.issue(fkp, "", k.String(), ErrUnresolvedField,
				fmt.Sprintf("no field %s on %s, skipped", name, d.in.TypeName(t)))
			continue
		}
		x, ok, err := d.value(k, sub, payload, fkp, f.Type)
		if err != nil {
			return reflect.Value{}, false, err
		}
		if !ok {
			continue
		}
		if err := d.in.Set(v, f, x); err != nil {
			d.issue(fkp, f.Type.String(), x.Type().String(), fmt.Errorf("%w: %w", ErrTypeMismatch, err), "field not set")
		}
	}
	if err := c.end(); err != nil {
		return reflect.Value{}, false, err
	}
	return v, true, nil
}

// value decodes one field or element of kind k into type t. Containers
// come with their body cursor, leaves with their payload.
func (d *decoder) value(k prop.Kind, body *Cursor, payload []byte, kp *kpath.KPath, t reflect.Type) (reflect.Value, bool, error) {
	shape, err := d.in.Classify(t)
	if err != nil || !host.Accepts(shape.Kind, k) {
		d.issue(kp, shape.Kind.String(), k.String(), ErrTypeMismatch, "recorded kind does not fit field")
		return reflect.Value{}, false, nil
	}
	switch k {
	case prop.Generic:
		return d.object(body, kp, t)
	case prop.ArraySize:
		return d.array(body, kp, t, shape)
	}
	r := prop.Record{Kind: k}
	if err := r.Value.SetPayload(k, payload); err != nil {
		return reflect.Value{}, false, err
	}
	x, err := tree.LeafValue(&r, t, d.blob.Tables)
	if err != nil {
		d.issue(kp, t.String(), k.String(), fmt.Errorf("%w: %w", ErrTypeMismatch, err), "leaf left at default")
		return reflect.Value{}, false, nil
	}
	if debug.Decode() {
		debug.Logf("decode: %s %s % x\n", kp, k, payload)
	}
	return x, true, nil
}

func (d *decoder) array(c *Cursor, kp *kpath.KPath, t reflect.Type, shape host.Shape) (reflect.Value, bool, error) {
	typeName, err := d.blob.readName(c)
	if err != nil {
		return reflect.Value{}, false, err
	}
	count32, err := c.ReadU32()
	if err != nil {
		return reflect.Value{}, false, err
	}
	tag, err := c.ReadU8()
	if err != nil {
		return reflect.Value{}, false, err
	}
	elem := prop.Kind(tag)
	if !elem.Valid() {
		return reflect.Value{}, false, &BufferError{Offset: c.Offset() - 1, Message: fmt.Sprintf("invalid element tag %d", tag)}
	}
	if uint64(count32) > uint64(c.Remaining()) {
		return reflect.Value{}, false, &BufferError{Offset: c.Offset(),
			Message: fmt.Sprintf("array count %d exceeds remaining %d bytes", count32, c.Remaining())}
	}
	count := int(count32)
	if want := d.in.TypeName(t); typeName != want {
		d.issue(kp, want, typeName, ErrTypeMismatch, "recorded type differs, block skipped")
		return reflect.Value{}, false, nil
	}
	v := reflect.New(t).Elem()
	n := count
	switch t.Kind() {
	case reflect.Slice:
		if count > 0 {
			v.Set(reflect.MakeSlice(t, count, count))
		}
	case reflect.Array:
		n = min(count, t.Len())
	}
	for i := range v.Len() {
		v.Index(i).Set(d.in.New(shape.Elem))
	}
	for i := range count {
		var (
			sub     *Cursor
			payload []byte
		)
		if elem.IsContainer() {
			sub, err = c.readBlock()
		} else {
			payload, err = c.ReadBytes(elem.InlineSize())
		}
		if err != nil {
			return reflect.Value{}, false, err
		}
		ekp := kp.Append(kpath.Index(i))
		if i >= n {
			d.issue(ekp, strconv.Itoa(t.Len()), strconv.Itoa(count), ErrTypeMismatch, "element beyond array length")
			continue
		}
		x, ok, err := d.value(elem, sub, payload, ekp, shape.Elem)
		if err != nil {
			return reflect.Value{}, false, err
		}
		if ok {
			v.Index(i).Set(x)
		}
	}
	if err := c.end(); err != nil {
		return reflect.Value{}, false, err
	}
	return v, true, nil
}
