// Package host is the field introspection capability the snapshot engine
// runs on: enumerate the fields of a type, get and set them, construct
// default instances and classify types into record kinds.
//
// The engine only talks to the Introspector interface. Reflect is the
// implementation over Go's reflect package.
//
// Reflect follows these rules:
//   - only exported struct fields are visible, in declaration order
//   - a field tagged `snap:"-"` is skipped, `snap:"name"` renames it
//   - a type implementing TypeNamer reports its own type name, which lets
//     two Go types stand for the same persisted type
//   - New calls SetDefaults on types implementing Defaulter
package host
