package plan

import (
	"context"
	"go/types"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupkey-generator/dupkey"
	"dupkey-generator/internal/analyze"
	"dupkey-generator/internal/diagnostic"
)

func stringField(name string, index int, tag reflect.StructTag) analyze.FieldInfo {
	return analyze.FieldInfo{
		Name:     name,
		Exported: true,
		Type:     types.Typ[types.String],
		Tag:      tag,
		Index:    index,
	}
}

func graphOf(infos ...*analyze.StructInfo) *analyze.TypeGraph {
	graph := analyze.NewTypeGraph()

	for _, info := range infos {
		graph.Types[info.ID] = info

		pkg := graph.Packages[info.ID.PkgPath]
		if pkg == nil {
			pkg = &analyze.PackageInfo{Path: info.ID.PkgPath, Name: "pets", Dir: "/src/pets"}
			graph.Packages[info.ID.PkgPath] = pkg
		}
		pkg.Types = append(pkg.Types, info.ID)
	}

	return graph
}

func TestResolverBasic(t *testing.T) {
	dog := &analyze.StructInfo{
		ID:       analyze.TypeID{PkgPath: "test/pets", Name: "Dog"},
		Marker:   analyze.MarkerLast,
		IsStruct: true,
		Fields: []analyze.FieldInfo{
			stringField("Name", 0, `json:"name"`),
			stringField("Breed", 1, `json:"breed" dupkey:"alias=type,default"`),
			{Name: "internal", Type: types.Typ[types.Int], Index: 2},
			stringField("Note", 3, `json:"-"`),
		},
	}

	result, err := NewResolver(graphOf(dog)).Resolve(context.Background())
	require.NoError(t, err)
	require.True(t, result.Diagnostics.IsValid())
	require.Len(t, result.Diagnostics.Infos, 1, "json:\"-\" on an exported field is reported")
	assert.Equal(t, "Note", result.Diagnostics.Infos[0].Field)
	require.Len(t, result.Types, 1)

	tp := result.Types[0]
	assert.Equal(t, dog.ID, tp.ID)
	assert.Equal(t, "pets", tp.PkgName)
	assert.Equal(t, "/src/pets", tp.Dir)
	assert.Equal(t, dupkey.LastWins, tp.Policy)
	assert.Equal(t, dupkey.LastWins, tp.Plan.Policy())

	require.Len(t, tp.Fields, 2)
	assert.Equal(t, dupkey.Field{Name: "Name", Keys: []string{"Name", "name"}}, tp.Fields[0].Field)
	assert.Equal(t, dupkey.Field{Name: "Breed", Keys: []string{"Breed", "breed", "type"}, UseDefault: true}, tp.Fields[1].Field)
	assert.Equal(t, "Breed", tp.Fields[1].GoName)
	assert.Equal(t, types.Typ[types.String], tp.Fields[1].GoType)

	assert.Equal(t, 2, tp.Plan.Schema().Len())
	i, ok := tp.Plan.Schema().Lookup("type")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestResolver_FirstMarker(t *testing.T) {
	owner := &analyze.StructInfo{
		ID:       analyze.TypeID{PkgPath: "test/pets", Name: "Owner"},
		Marker:   analyze.MarkerFirst,
		IsStruct: true,
		Fields:   []analyze.FieldInfo{stringField("Email", 0, `dupkey:"alias=mail"`)},
	}

	result, err := NewResolver(graphOf(owner)).Resolve(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Types, 1)
	assert.Equal(t, dupkey.FirstWins, result.Types[0].Policy)
}

func TestResolver_ConfigErrorsExcludeType(t *testing.T) {
	broken := &analyze.StructInfo{
		ID:       analyze.TypeID{PkgPath: "test/pets", Name: "Broken"},
		Marker:   analyze.MarkerLast,
		IsStruct: true,
		Fields: []analyze.FieldInfo{
			stringField("A", 0, `dupkey:"flatten"`),
			stringField("B", 1, `dupkey:"skip"`),
		},
	}
	fine := &analyze.StructInfo{
		ID:       analyze.TypeID{PkgPath: "test/pets", Name: "Fine"},
		Marker:   analyze.MarkerLast,
		IsStruct: true,
		Fields:   []analyze.FieldInfo{stringField("A", 0, "")},
	}

	result, err := NewResolver(graphOf(broken, fine)).Resolve(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Diagnostics.Errors, 2, "every field error is reported")
	for _, d := range result.Diagnostics.Errors {
		assert.Equal(t, diagnostic.CodeUnknownDirective, d.Code)
		assert.Equal(t, "test/pets.Broken", d.Type)
	}
	assert.Equal(t, "A", result.Diagnostics.Errors[0].Field)
	assert.Equal(t, "B", result.Diagnostics.Errors[1].Field)

	require.Len(t, result.Types, 1)
	assert.Equal(t, "Fine", result.Types[0].ID.Name)
}

func TestResolver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	info := &analyze.StructInfo{
		ID:       analyze.TypeID{PkgPath: "test/pets", Name: "Dog"},
		Marker:   analyze.MarkerLast,
		IsStruct: true,
	}

	_, err := NewResolver(graphOf(info)).Resolve(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolver_LoadedPackage(t *testing.T) {
	graph, err := analyze.NewAnalyzer().LoadPackages("../analyze/testdata/bad")
	require.NoError(t, err)

	result, err := NewResolver(graph).Resolve(context.Background())
	require.NoError(t, err)

	const pkg = "dupkey-generator/internal/analyze/testdata/bad."

	codes := map[string][]string{}
	for _, d := range result.Diagnostics.Errors {
		codes[d.Type] = append(codes[d.Type], d.Code)
	}

	assert.Equal(t, map[string][]string{
		pkg + "Names":    {diagnostic.CodeNotStruct},
		pkg + "Embedded": {diagnostic.CodeUnnamedField, diagnostic.CodeUnknownDirective},
		pkg + "Shared":   {diagnostic.CodeDuplicateKey},
	}, codes)

	var warnings []string
	for _, d := range result.Diagnostics.Warnings {
		warnings = append(warnings, d.Type+":"+d.Code)
	}
	assert.ElementsMatch(t, []string{
		pkg + "Repeated:" + diagnostic.CodeRepeatedKey,
		pkg + "Empty:" + diagnostic.CodeNoFields,
	}, warnings)

	var planned []string
	for _, tp := range result.Types {
		planned = append(planned, tp.ID.Name)
	}
	assert.Equal(t, []string{"Repeated", "Empty", "Grouped", "Box"}, planned)

	box := result.Types[3]
	assert.Equal(t, []string{"K", "V"}, box.TypeParams)
	require.Len(t, box.Fields, 2)
	assert.Equal(t, "V", box.Fields[1].GoType.String())

	require.Len(t, result.Diagnostics.Infos, 1)
	assert.Equal(t, diagnostic.CodeSkippedField, result.Diagnostics.Infos[0].Code)
	assert.Equal(t, pkg+"Box", result.Diagnostics.Infos[0].Type)
	assert.Equal(t, "Note", result.Diagnostics.Infos[0].Field)
}

func TestPolicyFor(t *testing.T) {
	p, ok := PolicyFor(analyze.MarkerFirst)
	assert.True(t, ok)
	assert.Equal(t, dupkey.FirstWins, p)

	p, ok = PolicyFor(analyze.MarkerLast)
	assert.True(t, ok)
	assert.Equal(t, dupkey.LastWins, p)

	_, ok = PolicyFor(analyze.MarkerNone)
	assert.False(t, ok)
}

func TestResolvedPlan_ByPackage(t *testing.T) {
	p := &ResolvedPlan{Types: []TypePlan{
		{ID: analyze.TypeID{PkgPath: "a", Name: "X"}},
		{ID: analyze.TypeID{PkgPath: "b", Name: "Y"}},
		{ID: analyze.TypeID{PkgPath: "a", Name: "Z"}},
	}}

	byPkg := p.ByPackage()
	require.Len(t, byPkg, 2)
	assert.Equal(t, "X", byPkg["a"][0].ID.Name)
	assert.Equal(t, "Z", byPkg["a"][1].ID.Name)
	assert.Equal(t, "Y", byPkg["b"][0].ID.Name)
}
