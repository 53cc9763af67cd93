package kpath

import (
	"strconv"
	"strings"
)

// Field returns a single field segment.
func Field(name string) *KPath {
	return &KPath{Field: &name}
}

// Index returns a single index segment.
func Index(i int) *KPath {
	return &KPath{Index: &i}
}

// IsIndex reports whether the first segment of p is an index segment.
func (p *KPath) IsIndex() bool {
	return p != nil && p.Index != nil
}

// IsField reports whether the first segment of p is a field segment.
func (p *KPath) IsField() bool {
	return p != nil && p.Field != nil
}

func (p *KPath) copySegment() *KPath {
	if p == nil {
		return nil
	}
	res := &KPath{}
	if p.Field != nil {
		tmp := *p.Field
		res.Field = &tmp
		return res
	}
	if p.Index != nil {
		tmp := *p.Index
		res.Index = &tmp
	}
	return res
}

func segmentsEqual(a, b *KPath) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if (a.Field == nil) != (b.Field == nil) {
		return false
	}
	if a.Field != nil {
		return *a.Field == *b.Field
	}
	if (a.Index == nil) != (b.Index == nil) {
		return false
	}
	if a.Index != nil {
		return *a.Index == *b.Index
	}
	return true
}

// compareSegment orders field segments before index segments, fields by
// name and indices numerically.
func compareSegment(a, b *KPath) int {
	if a.Field != nil && b.Field != nil {
		return strings.Compare(*a.Field, *b.Field)
	}
	if a.Field != nil {
		return -1
	}
	if b.Field != nil {
		return 1
	}
	if a.Index != nil && b.Index != nil {
		switch {
		case *a.Index < *b.Index:
			return -1
		case *a.Index > *b.Index:
			return 1
		}
		return 0
	}
	if a.Index != nil {
		return -1
	}
	if b.Index != nil {
		return 1
	}
	return 0
}

// SegmentString returns the canonical string representation of this single segment.
// Unlike String(), this only returns the current segment, not the entire path.
// Examples:
//   - KPath{Field: &"a"} → "a"
//   - KPath{Field: &"field name"} → "\"field name\"" (quoted if needed)
//   - KPath{Index: &0} → "[0]"
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	if p.Field != nil {
		return quoteField(*p.Field)
	}
	if p.Index != nil {
		return "[" + strconv.Itoa(*p.Index) + "]"
	}
	return ""
}

// Name returns the field name of the first segment of p, unquoted, or
// the segment string of an index segment such as "[2]".
func (p *KPath) Name() string {
	if p != nil && p.Field != nil {
		return *p.Field
	}
	return p.SegmentString()
}

func needsQuote(field string) bool {
	if field == "" {
		return true
	}
	if field[0] == '"' {
		return true
	}
	for _, r := range field {
		if r <= ' ' || r == 0x7f {
			return true
		}
	}
	return strings.ContainsAny(field, ".[]")
}

func quoteField(field string) string {
	if needsQuote(field) {
		return strconv.Quote(field)
	}
	return field
}
