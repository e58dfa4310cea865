package analyze

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dogsPkg = "dupkey-generator/examples/dogs"
	badPkg  = "dupkey-generator/internal/analyze/testdata/bad"
)

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(dogsPkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	require.Contains(t, graph.Packages, dogsPkg)
	pkg := graph.Packages[dogsPkg]
	assert.Equal(t, "dogs", pkg.Name)
	assert.NotEmpty(t, pkg.Dir)

	assert.Equal(t, []TypeID{
		{PkgPath: dogsPkg, Name: "Dog"},
		{PkgPath: dogsPkg, Name: "Owner"},
		{PkgPath: dogsPkg, Name: "Kennel"},
		{PkgPath: dogsPkg, Name: "Note"},
	}, pkg.Types)

}

func TestAnalyzer_Markers(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages(dogsPkg)
	require.NoError(t, err)

	dog := graph.Types[TypeID{PkgPath: dogsPkg, Name: "Dog"}]
	require.NotNil(t, dog)
	assert.Equal(t, MarkerLast, dog.Marker)
	assert.True(t, dog.IsStruct)
	assert.Equal(t, "dogs.go", filepath.Base(dog.Pos.Filename))

	owner := graph.Types[TypeID{PkgPath: dogsPkg, Name: "Owner"}]
	require.NotNil(t, owner)
	assert.Equal(t, MarkerFirst, owner.Marker)
}

func TestAnalyzer_Fields(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages(dogsPkg)
	require.NoError(t, err)

	dog := graph.Types[TypeID{PkgPath: dogsPkg, Name: "Dog"}]
	require.NotNil(t, dog)
	require.Len(t, dog.Fields, 6)

	breed := dog.Fields[1]
	assert.Equal(t, "Breed", breed.Name)
	assert.True(t, breed.Exported)
	assert.Equal(t, "alias=type", breed.Tag.Get("dupkey"))
	assert.Equal(t, "string", breed.Type.String())
	assert.Equal(t, 1, breed.Index)

	owner := dog.Fields[4]
	assert.Equal(t, "*"+dogsPkg+".Owner", owner.Type.String())

	hidden := dog.Fields[5]
	assert.Equal(t, "checkedIn", hidden.Name)
	assert.False(t, hidden.Exported)
	assert.Empty(t, hidden.Tag)
}

func TestAnalyzer_TypeParams(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages(dogsPkg)
	require.NoError(t, err)

	note := graph.Types[TypeID{PkgPath: dogsPkg, Name: "Note"}]
	require.NotNil(t, note)
	assert.True(t, note.IsStruct)
	assert.Equal(t, []string{"T"}, note.TypeParams)
	require.Len(t, note.Fields, 2)
	assert.Equal(t, "T", note.Fields[1].Type.String())

	assert.Empty(t, graph.Types[TypeID{PkgPath: dogsPkg, Name: "Dog"}].TypeParams)
}

func TestAnalyzer_NonStructAndGroupedDecls(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages("./testdata/bad")
	require.NoError(t, err)

	names := graph.Types[TypeID{PkgPath: badPkg, Name: "Names"}]
	require.NotNil(t, names)
	assert.False(t, names.IsStruct)
	assert.Empty(t, names.Fields)

	grouped := graph.Types[TypeID{PkgPath: badPkg, Name: "Grouped"}]
	require.NotNil(t, grouped)
	assert.Equal(t, MarkerFirst, grouped.Marker)

	assert.Nil(t, graph.Types[TypeID{PkgPath: badPkg, Name: "Plain"}])
	assert.Nil(t, graph.Types[TypeID{PkgPath: badPkg, Name: "Base"}])

	embedded := graph.Types[TypeID{PkgPath: badPkg, Name: "Embedded"}]
	require.NotNil(t, embedded)
	require.NotEmpty(t, embedded.Fields)
	assert.True(t, embedded.Fields[0].Embedded)
}

func TestAnalyzer_LoadErrors(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("./testdata/does-not-exist")
	require.Error(t, err)
}

func TestTypeGraph_SortedTypes(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages(dogsPkg)
	require.NoError(t, err)

	var names []string
	for _, info := range graph.SortedTypes(dogsPkg) {
		names = append(names, info.ID.Name)
	}

	assert.Equal(t, []string{"Dog", "Owner", "Kennel", "Note"}, names)
	assert.Nil(t, graph.SortedTypes("nope"))
}
