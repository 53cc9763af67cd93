// Package kpath provides field path parsing and navigation.
//
// A path locates a value inside a captured object graph:
//   - .field - struct field access
//   - [index] - array or slice element
//
// # Usage
//
//	// Parse a path
//	kp, err := kpath.Parse("items[2].x")
//
//	// Access path components
//	seg := kp.Last()
//	isElem := seg.IsIndex()
//
//	// Navigate
//	child := kp.Append(kpath.Field("y"))
//	below := child.IsChildOf(kp)
//
//	// Compare paths
//	cmp := kp1.Compare(kp2) // -1, 0, or 1
//
// # Path Examples
//
//	"count"            // top level field
//	"items[2]"         // element 2 of the items container
//	"list[0].pos.x"    // field x of field pos of element 0 of list
//	"\"pos.x\".y"      // field y of a field named pos.x
package kpath
