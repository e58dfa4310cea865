package gen

import (
	"go/types"
	"slices"
	"strconv"
	"strings"

	"dupkey-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports a generated file needs while its field
// types are formatted.
type importSet struct {
	// pkgPath is the package being generated into; its types are unqualified.
	pkgPath string
	byPath  map[string]string // path -> name used in code
	byName  map[string]string // name -> path
}

func newImportSet(pkgPath string) *importSet {
	return &importSet{
		pkgPath: pkgPath,
		byPath:  make(map[string]string),
		byName:  make(map[string]string),
	}
}

// add registers an import and returns the name it is referred to by. A name
// already taken by another path gets a numeric suffix.
func (s *importSet) add(pkgPath, name string) string {
	if used, ok := s.byPath[pkgPath]; ok {
		return used
	}

	used := name
	for i := 2; ; i++ {
		if _, taken := s.byName[used]; !taken {
			break
		}
		used = name + strconv.Itoa(i)
	}

	s.byPath[pkgPath] = used
	s.byName[used] = pkgPath

	return used
}

// qualifier implements types.Qualifier.
func (s *importSet) qualifier(p *types.Package) string {
	if p.Path() == s.pkgPath {
		return ""
	}

	return s.add(p.Path(), p.Name())
}

// typeString returns the type as written in the generated package,
// registering the imports it needs.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

// sorted returns the imports ordered by path. An alias is only written when
// the name differs from the last path element.
func (s *importSet) sorted() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))
	for p, name := range s.byPath {
		spec := importSpec{Path: p}
		if name != common.PkgAlias(p) {
			spec.Alias = name
		}
		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	return out
}
