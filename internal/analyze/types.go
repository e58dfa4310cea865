package analyze

import (
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"dupkey-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "dupkey-generator/examples/dogs"
	Name    string // e.g., "Dog"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Marker is the entry point selected by a marker comment.
type Marker int

const (
	MarkerNone  Marker = iota
	MarkerFirst        // //dupkey:first
	MarkerLast         // //dupkey:last
)

// Marker comment texts, without the leading slashes.
const (
	markerFirstText = "dupkey:first"
	markerLastText  = "dupkey:last"
)

// String returns a human-readable representation of the Marker.
func (m Marker) String() string {
	switch m {
	case MarkerNone:
		return "none"
	case MarkerFirst:
		return "first"
	case MarkerLast:
		return "last"
	default:
		return common.UnknownStr
	}
}

// ParseMarker recognizes a single comment line such as "//dupkey:last".
func ParseMarker(comment string) Marker {
	text := strings.TrimSpace(strings.TrimPrefix(comment, "//"))

	switch text {
	case markerFirstText:
		return MarkerFirst
	case markerLastText:
		return MarkerLast
	default:
		return MarkerNone
	}
}

// StructInfo describes a marked type declaration.
type StructInfo struct {
	ID         TypeID
	Marker     Marker
	IsStruct   bool        // false when the marker sits on a non-struct type
	Fields     []FieldInfo // For structs, the list of fields in declaration order
	GoType     types.Type  // The declared named type
	TypeParams []string    // Type parameter names of a generic declaration
	Pos        token.Position
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     types.Type        // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// TypeGraph holds the marked types of all loaded packages.
type TypeGraph struct {
	// Types maps TypeID to StructInfo for all marked types.
	Types map[TypeID]*StructInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*StructInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Marked types in declaration order
}
