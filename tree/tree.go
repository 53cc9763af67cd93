// Package tree rebuilds a flat record model into a tree with one node per
// path segment, resolving each node's declared type against a root type.
package tree

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/signadot/fieldsnap/debug"
	"github.com/signadot/fieldsnap/host"
	"github.com/signadot/fieldsnap/kpath"
	"github.com/signadot/fieldsnap/prop"
)

// RootName is the name the root node is written under.
const RootName = "Root"

// Node is one path segment.
type Node struct {
	// Segment is the last path segment, nil for the root.
	Segment *kpath.KPath
	// Path is the full path of the node, "" for the root.
	Path string
	// Type is the declared type at this path, nil when the path no longer
	// resolves against the root type (a typeless node).
	Type reflect.Type
	// Shape is the classification of Type.
	Shape host.Shape
	// Field is the declaring field when Segment is a field segment.
	Field host.Field
	// Record is the leaf or container record at this path, if any.
	Record *prop.Record
	// Children are keyed by segment string.
	Children map[string]*Node

	kp     *kpath.KPath
	order  int
	shaped bool
}

// Name returns the segment name, or RootName for the root.
func (n *Node) Name() string {
	if n.Segment == nil {
		return RootName
	}
	return n.Segment.Name()
}

// IsIndex reports whether the node is an array element.
func (n *Node) IsIndex() bool {
	return n.Segment.IsIndex()
}

// Depth is the number of segments in the node's path.
func (n *Node) Depth() int {
	return prop.Depth(n.Path)
}

// Valid reports whether the node should be encoded: it has a type, the
// type can be classified, and a leaf record's kind agrees with it.
func (n *Node) Valid() bool {
	if n.Type == nil || !n.shaped {
		return false
	}
	if n.Record == nil {
		return n.Shape.Class != host.Leaf
	}
	return host.Accepts(n.Shape.Kind, n.Record.Kind)
}

// Ordered returns the children in encode order: array elements by index,
// object fields in declared order, unknown fields last by name.
func (n *Node) Ordered() []*Node {
	res := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		res = append(res, c)
	}
	slices.SortFunc(res, func(a, b *Node) int {
		if a.order != b.order {
			if a.order < b.order {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name(), b.Name())
	})
	return res
}

// ValidChildren returns the valid children in encode order.
func (n *Node) ValidChildren() []*Node {
	var res []*Node
	for _, c := range n.Ordered() {
		if c.Valid() {
			res = append(res, c)
		}
	}
	return res
}

// Walk calls fn for n and its descendants in encode order, stopping when
// fn returns false for a node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Ordered() {
		c.Walk(fn)
	}
}

// Build assembles the live records of m under a root of type rootType.
// A pointer root type is replaced by its element type.
func Build(m *prop.Model, rootType reflect.Type, in host.Introspector) (*Node, error) {
	if in == nil {
		in = host.Default()
	}
	if rootType != nil && rootType.Kind() == reflect.Pointer {
		rootType = rootType.Elem()
	}
	root := &Node{Type: rootType}
	root.classify(in)
	if root.Shape.Class != host.Object {
		return nil, fmt.Errorf("root type %s is not an object", in.TypeName(rootType))
	}
	recs := m.SortForBuild()
	for i := range recs {
		r := &recs[i]
		kp, err := kpath.Parse(r.Path)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", r.Path, err)
		}
		node := root
		for seg := kp; seg != nil; seg = seg.Next {
			node = node.child(seg, in)
		}
		node.Record = r
		if debug.Tree() {
			debug.Logf("tree: %s %s typed=%t valid=%t\n", r.Path, r.Kind, node.Type != nil, node.Valid())
		}
	}
	return root, nil
}

func (n *Node) classify(in host.Introspector) {
	if n.Type == nil {
		return
	}
	s, err := in.Classify(n.Type)
	if err != nil {
		return
	}
	n.Shape = s
	n.shaped = true
}

// child returns the child of n for the first segment of seg, creating it
// and resolving its type when it does not exist yet.
func (n *Node) child(seg *kpath.KPath, in host.Introspector) *Node {
	key := seg.SegmentString()
	if c, ok := n.Children[key]; ok {
		return c
	}
	c := &Node{
		Segment: segment(seg),
		order:   math.MaxInt,
	}
	c.kp = n.kp.Append(c.Segment)
	c.Path = c.kp.String()
	if n.shaped {
		switch {
		case seg.IsIndex() && n.Shape.Class == host.Array:
			i := *seg.Index
			if n.Type.Kind() != reflect.Array || i < n.Type.Len() {
				c.Type = n.Shape.Elem
				c.order = i
			}
		case seg.IsField() && n.Shape.Class == host.Object:
			for i, f := range in.Fields(n.Type) {
				if f.Name == *seg.Field {
					c.Type = f.Type
					c.Field = f
					c.order = i
					break
				}
			}
		}
	}
	c.classify(in)
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	n.Children[key] = c
	return c
}

func segment(seg *kpath.KPath) *kpath.KPath {
	if seg.Field != nil {
		return kpath.Field(*seg.Field)
	}
	return kpath.Index(*seg.Index)
}
