package kpath

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// KPath represents a field path as a linked list of segments.
// Each segment is either a field or an index:
//   - "a.b" → field a, then field b
//   - "a[0]" → field a, then element 0 of a
//   - "a[0].b" → field b of element 0 of a
type KPath struct {
	Field *string // Struct field name (e.g., "a", "b")
	Index *int    // Array or slice index (e.g., 0, 1)
	Next  *KPath  // Next segment in path (nil for leaf)
}

// String returns the path string representation of this KPath.
// Example:
//
//	KPath{Field: &"a", Next: &KPath{Field: &"b"}} → "a.b"
//	KPath{Field: &"a", Next: &KPath{Index: &0}} → "a[0]"
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if x.Field != nil {
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(quoteField(*x.Field))
			continue
		}
		if x.Index != nil {
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// Parse parses a path string into a KPath structure.
//
// Examples:
//   - "a.b.c" → path with 3 field segments
//   - "a[0][1]" → field then two index segments
//   - "[3].b" → index then field
//   - "" → Root path (returns nil)
//
// Returns an error if the path syntax is invalid.
func Parse(kpath string) (*KPath, error) {
	if kpath == "" {
		return nil, nil
	}
	root := &KPath{}
	if err := parseFrag(kpath, root, true); err != nil {
		return nil, err
	}
	return root, nil
}

func parseFrag(frag string, parent *KPath, top bool) error {
	if len(frag) == 0 {
		return nil
	}
	var rest string
	switch frag[0] {
	case '.':
		if top {
			return fmt.Errorf("unexpected '.' at start of path")
		}
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		rest = r
	case '[':
		i := strings.IndexByte(frag, ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, err := parseIndex(frag[1:i])
		if err != nil {
			return err
		}
		parent.Index = &index
		rest = frag[i+1:]
	default:
		if !top {
			return fmt.Errorf("expected '.' or '[', got %q", frag[0])
		}
		field, r, err := parseField(frag)
		if err != nil {
			return err
		}
		parent.Field = &field
		rest = r
	}
	if len(rest) == 0 {
		return nil
	}
	next := &KPath{}
	if err := parseFrag(rest, next, false); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

func parseIndex(is string) (int, error) {
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %v", is, err)
	}
	return int(u64), nil
}

// parseField parses a field name from a fragment.
// It stops at '.' or '['. Double quoted names may contain either.
func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] == '"' {
		quoted, err := strconv.QuotedPrefix(frag)
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field: %w", err)
		}
		field, err = strconv.Unquote(quoted)
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field: %w", err)
		}
		return field, frag[len(quoted):], nil
	}
	i := strings.IndexAny(frag, ".[")
	if i == 0 {
		return "", "", fmt.Errorf("empty field name")
	}
	if i == -1 {
		return frag, "", nil
	}
	return frag[:i], frag[i:], nil
}

// Clone returns a deep copy of p.
func (p *KPath) Clone() *KPath {
	if p == nil {
		return nil
	}
	res := p.copySegment()
	res.Next = p.Next.Clone()
	return res
}

// Append returns a copy of p with the segments of q added at the end.
func (p *KPath) Append(q *KPath) *KPath {
	if p == nil {
		return q.Clone()
	}
	res := p.Clone()
	last := res
	for last.Next != nil {
		last = last.Next
	}
	last.Next = q.Clone()
	return res
}

// Depth returns the number of segments in p.
func (p *KPath) Depth() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Last returns the last segment of p (not a copy).
func (p *KPath) Last() *KPath {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x
}

// IsChildOf returns true if this path is a strict descendant of the given parent path.
func (p *KPath) IsChildOf(parent *KPath) bool {
	if parent == nil {
		return p != nil
	}
	pp := p
	for x := parent; x != nil; x = x.Next {
		if pp == nil || !segmentsEqual(pp, x) {
			return false
		}
		pp = pp.Next
	}
	return pp != nil
}

// Equal reports whether p and other have the same segments.
func (p *KPath) Equal(other *KPath) bool {
	return p.Compare(other) == 0
}

// Compare compares two paths segment by segment.
// Returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p *KPath) Compare(other *KPath) int {
	pa, pb := p, other
	for pa != nil && pb != nil {
		if c := compareSegment(pa, pb); c != 0 {
			return c
		}
		pa, pb = pa.Next, pb.Next
	}
	switch {
	case pa == nil && pb == nil:
		return 0
	case pa == nil:
		return -1
	}
	return 1
}
