// Package codec encodes a property tree into a compact binary blob and
// decodes blobs back into Go values whose types may have changed since
// the blob was written.
//
// All integers are little-endian. Names (field names, type names and the
// root name) are indexes into the blob's strings table.
//
//	root    = Generic name:u32 len:u32 object
//	object  = type:u32 count:u32 field*
//	array   = type:u32 count:u32 elem:u8 element*
//	field   = kind:u8 name:u32 payload           (leaf kinds)
//	        | kind:u8 name:u32 len:u32 body      (Generic, ArraySize)
//	element = payload                            (leaf elem kind)
//	        | len:u32 body                       (container elem kind)
//
// len counts the bytes of the body that follows it, so a reader that does
// not know a field can skip it. Leaf payload sizes are fixed per kind; the
// external kinds (String, Curve, Gradient, ObjectRef) hold a 4 byte table
// index.
//
// Decoding is best effort per field. A block whose recorded type name
// differs from the target's type is skipped and the target keeps its
// default, as are unknown field names and leaves whose kind does not fit
// the target field. Only a malformed buffer fails the whole decode.
package codec
