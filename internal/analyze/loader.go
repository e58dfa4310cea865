package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"

	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Analyzer loads Go packages and collects marked types.
type Analyzer struct {
	graph *TypeGraph
	// Dir is the working directory for package patterns; empty means the
	// current directory.
	Dir string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
	}
}

// LoadPackages loads the specified packages and collects their marked types.
// Patterns are standard Go package patterns (e.g., "./examples/...").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// processPackage walks the type declarations of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}
	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)

				marker := findMarker(ts.Doc)
				if marker == MarkerNone && len(gd.Specs) == 1 {
					marker = findMarker(gd.Doc)
				}
				if marker == MarkerNone {
					continue
				}

				info := a.analyzeSpec(pkg, ts, marker)
				a.graph.Types[info.ID] = info
				pkgInfo.Types = append(pkgInfo.Types, info.ID)

				log.Debug().
					Str("type", info.ID.String()).
					Stringer("marker", marker).
					Int("fields", len(info.Fields)).
					Msg("found marked type")
			}
		}
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// findMarker returns the first marker comment in a doc comment group.
func findMarker(doc *ast.CommentGroup) Marker {
	if doc == nil {
		return MarkerNone
	}

	for _, c := range doc.List {
		if m := ParseMarker(c.Text); m != MarkerNone {
			return m
		}
	}

	return MarkerNone
}

// analyzeSpec builds the StructInfo of one marked type declaration.
func (a *Analyzer) analyzeSpec(pkg *packages.Package, ts *ast.TypeSpec, marker Marker) *StructInfo {
	info := &StructInfo{
		ID:     TypeID{PkgPath: pkg.PkgPath, Name: ts.Name.Name},
		Marker: marker,
		Pos:    pkg.Fset.Position(ts.Pos()),
	}

	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return info
	}
	info.GoType = obj.Type()

	if named, ok := obj.Type().(*types.Named); ok {
		tparams := named.TypeParams()
		for i := range tparams.Len() {
			info.TypeParams = append(info.TypeParams, tparams.At(i).Obj().Name())
		}
	}

	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return info
	}
	info.IsStruct = true

	for i := range st.NumFields() {
		field := st.Field(i)

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     field.Type(),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}

	return info
}

// SortedTypes returns the marked types of a package in declaration order.
func (g *TypeGraph) SortedTypes(pkgPath string) []*StructInfo {
	pkg := g.Packages[pkgPath]
	if pkg == nil {
		return nil
	}

	out := make([]*StructInfo, 0, len(pkg.Types))
	for _, id := range pkg.Types {
		out = append(out, g.Types[id])
	}

	return out
}
