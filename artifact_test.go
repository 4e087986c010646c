package constgen_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"constgen"
	"constgen/internal/manifest"
	"constgen/phf"
	"constgen/rt"
)

func TestArtifact_NameCollision(t *testing.T) {
	t.Parallel()

	a := constgen.New("gen")
	require.NoError(t, a.WriteConst("Answer", "int", 42))

	err := a.WriteStatic("Answer", "string", "forty-two")
	require.ErrorIs(t, err, constgen.ErrNameCollision)
	assert.Contains(t, err.Error(), "Answer")

	assert.Equal(t, 1, a.Len())
}

func TestArtifact_RejectsInvalidName(t *testing.T) {
	t.Parallel()

	a := constgen.New("gen")
	assert.Error(t, a.WriteConst("", "int", 1))
	assert.Error(t, a.WriteConst("2fast", "int", 2))
	assert.Error(t, a.WriteConst("with space", "int", 3))
}

func TestArtifact_WriteRejectsBadSignature(t *testing.T) {
	t.Parallel()

	a := constgen.New("gen")

	err := a.WriteConst("X", "(int)", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "X")
}

func TestArtifact_Flush(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	a := constgen.New("citydata")
	require.NoError(t, a.WriteConst("CityCount", "int", 3))
	require.NoError(t, a.WriteConst("Origin", "(int, int)", rt.Pair[int, int]{A: 0, B: 0}))
	require.NoError(t, a.WriteStatic("Names", "[]string", []string{"Riga", "Oslo", "Bern"}))
	require.NoError(t, a.WriteStaticArray("Grid", "int : 2", [][]int{{1, 2}, {3, 4}}))
	require.NoError(t, a.WriteFunc("Motto", "string", "per aspera"))
	require.NoError(t, a.WriteSliceFunc("Mottos", "string", []string{"per aspera", "ad astra"}))

	require.NoError(t, a.Flush(dir))

	unit, err := os.ReadFile(filepath.Join(dir, "citydata.gen.go"))
	require.NoError(t, err)

	src := string(unit)
	assert.Contains(t, src, "// Code generated by constgen. DO NOT EDIT.")
	assert.Contains(t, src, "package citydata")
	assert.Contains(t, src, "const CityCount int = 3")
	// Composite const kinds materialize as var.
	assert.Contains(t, src, "var Origin rt.Pair[int, int] = rt.Pair[int, int]{0, 0}")
	assert.Contains(t, src, `"constgen/rt"`)
	assert.Contains(t, src, "var Grid [2][2]int = [2][2]int{{1, 2}, {3, 4}}")
	assert.Contains(t, src, "func Motto() string {")
	assert.Contains(t, src, "func Mottos() []string {")

	mdata, err := os.ReadFile(filepath.Join(dir, "citydata.manifest.yaml"))
	require.NoError(t, err)

	m, err := manifest.Parse(mdata)
	require.NoError(t, err)
	assert.Equal(t, "citydata", m.Package)
	require.Len(t, m.Declarations, 6)

	spew.Dump(m)

	// Declarations keep write order, and the const kind survives the var
	// fallback in the unit.
	assert.Equal(t, "CityCount", m.Declarations[0].Name)
	assert.Equal(t, manifest.KindConst, m.Declarations[1].Kind)
	assert.Equal(t, "Origin", m.Declarations[1].Name)
	assert.Equal(t, 2, m.Declarations[3].Dim)
	assert.Equal(t, manifest.KindFunc, m.Declarations[5].Kind)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "stale temp file %s", e.Name())
	}
}

func TestArtifact_FlushCollection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	b := phf.NewMapBuilder[string, uint32]()
	require.NoError(t, b.Entry("Riga", 605802))
	require.NoError(t, b.Entry("Oslo", 709037))

	a := constgen.New("gen")
	require.NoError(t, a.WriteStatic("Populations", "Map[string, uint32]", b))
	require.NoError(t, a.Flush(dir))

	unit, err := os.ReadFile(filepath.Join(dir, "gen.gen.go"))
	require.NoError(t, err)

	src := string(unit)
	assert.Contains(t, src, "var Populations phf.Map[string, uint32] = phf.RawMap(")
	assert.Contains(t, src, `"constgen/phf"`)
}

func TestArtifact_FlushOverwritesPreviousRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	a := constgen.New("gen")
	require.NoError(t, a.WriteConst("V", "int", 1))
	require.NoError(t, a.Flush(dir))

	b := constgen.New("gen")
	require.NoError(t, b.WriteConst("V", "int", 2))
	require.NoError(t, b.Flush(dir))

	unit, err := os.ReadFile(filepath.Join(dir, "gen.gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(unit), "const V int = 2")
}

func TestArtifact_FailedWriteLeavesNoDeclaration(t *testing.T) {
	t.Parallel()

	a := constgen.New("gen")
	require.Error(t, a.WriteStaticArray("Ragged", "int:2", [][]int{{1, 2}, {3}}))
	assert.Equal(t, 0, a.Len())
}
