// Package analyze provides package loading and discovery of record types.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find the
// struct types that ask for a duplicate-aware decoder through a marker
// comment on their declaration:
//
//	//dupkey:first
//	type Dog struct { ... }
//
// Key types:
//   - TypeID: package import path + type name
//   - Marker: which resolution policy the declaration selected
//   - StructInfo: the marked type, its fields and source position
//   - FieldInfo: describes field name, type, tags, and embedding
package analyze
