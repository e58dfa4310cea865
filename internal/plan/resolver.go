package plan

import (
	"context"
	"fmt"
	"maps"
	"slices"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"dupkey-generator/dupkey"
	"dupkey-generator/internal/analyze"
	"dupkey-generator/internal/common"
	"dupkey-generator/internal/diagnostic"
)

// Resolver builds decoding plans for the marked types of a TypeGraph.
type Resolver struct {
	graph *analyze.TypeGraph
}

// NewResolver creates a Resolver over graph.
func NewResolver(graph *analyze.TypeGraph) *Resolver {
	return &Resolver{graph: graph}
}

// Resolve plans every marked type, package by package in import path order
// and type by type in declaration order.
func (r *Resolver) Resolve(ctx context.Context) (*ResolvedPlan, error) {
	result := &ResolvedPlan{}

	for _, pkgPath := range slices.Sorted(maps.Keys(r.graph.Packages)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pkg := r.graph.Packages[pkgPath]
		assert.NotEmpty(ctx, pkg.Name, "package name must be set")

		for _, info := range r.graph.SortedTypes(pkgPath) {
			tp, diags := r.resolveType(info)
			result.Diagnostics.Merge(diags)

			if tp == nil {
				log.Debug().Str("type", info.ID.String()).Msg("skipping type with configuration errors")
				continue
			}

			tp.PkgName = pkg.Name
			tp.Dir = pkg.Dir
			result.Types = append(result.Types, *tp)
		}
	}

	return result, nil
}

// resolveType builds the plan of one type. It returns nil when the type has
// configuration errors; every field error is reported, not only the first.
func (r *Resolver) resolveType(info *analyze.StructInfo) (*TypePlan, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	typeName := info.ID.String()
	pos := info.Pos.String()

	policy, ok := PolicyFor(info.Marker)
	if !ok {
		diags.AddConfigError(&dupkey.ConfigError{Type: typeName, Reason: dupkey.ErrInvalidPolicy, Detail: info.Marker.String()}, typeName, pos)
		return nil, diags
	}

	if !info.IsStruct {
		diags.AddConfigError(&dupkey.ConfigError{Type: typeName, Reason: dupkey.ErrNotStruct}, typeName, pos)
		return nil, diags
	}

	tp := &TypePlan{
		ID:         info.ID,
		Policy:     policy,
		TypeParams: info.TypeParams,
	}

	var fields []dupkey.Field
	for _, fi := range info.Fields {
		f, include, err := dupkey.FieldFromTag(fi.Name, fi.Exported, fi.Embedded, fi.Tag)
		if err != nil {
			diags.AddConfigError(err, typeName, pos)
			continue
		}
		if !include {
			if fi.Exported {
				diags.AddInfo(diagnostic.CodeSkippedField, `field is excluded by json:"-"`, typeName, fi.Name)
			}
			continue
		}

		if unique := common.Unique(f.Keys); len(unique) != len(f.Keys) {
			diags.AddWarning(diagnostic.CodeRepeatedKey,
				fmt.Sprintf("accepted keys %v list a key more than once", f.Keys), typeName, f.Name)
		}

		fields = append(fields, f)
		tp.Fields = append(tp.Fields, FieldPlan{Field: f, GoName: fi.Name, GoType: fi.Type})
	}

	if diags.HasErrors() {
		return nil, diags
	}

	if len(fields) == 0 {
		diags.AddWarning(diagnostic.CodeNoFields, "type has no decodable fields", typeName, "")
	}

	schema, err := dupkey.NewSchema(typeName, fields...)
	if err != nil {
		diags.AddConfigError(err, typeName, pos)
		return nil, diags
	}

	tp.Plan, err = dupkey.Compile(schema, policy)
	if err != nil {
		diags.AddConfigError(err, typeName, pos)
		return nil, diags
	}

	log.Debug().
		Str("type", typeName).
		Stringer("policy", policy).
		Int("fields", schema.Len()).
		Msg("planned type")

	return tp, diags
}
