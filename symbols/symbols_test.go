package symbols_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"constgen"
	"constgen/internal/manifest"
	"constgen/rt"
	"constgen/symbols"
)

func sampleManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Package: "gen",
		Declarations: []manifest.Declaration{
			{Name: "A", Kind: manifest.KindConst, Type: "int", Fragment: "1"},
			{Name: "B", Kind: manifest.KindStatic, Type: "[]string", Fragment: `[]string{"b"}`},
			{Name: "C", Kind: manifest.KindFunc, Type: "string", Fragment: `"c"`},
		},
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	content, err := symbols.Expand(sampleManifest(), "consumer", "C", "A")
	require.NoError(t, err)

	src := string(content)
	assert.Contains(t, src, "package consumer")
	assert.Contains(t, src, "const A int = 1")
	assert.Contains(t, src, "func C() string {")
	assert.NotContains(t, src, "var B")

	// Requested order, not manifest order.
	assert.Less(t, strings.Index(src, "func C"), strings.Index(src, "const A"))
}

func TestExpand_MissingSymbol(t *testing.T) {
	t.Parallel()

	_, err := symbols.Expand(sampleManifest(), "consumer", "A", "Nope")
	require.ErrorIs(t, err, symbols.ErrMissingSymbol)
	assert.Contains(t, err.Error(), "Nope")
}

func TestExpand_DuplicateRequest(t *testing.T) {
	t.Parallel()

	_, err := symbols.Expand(sampleManifest(), "consumer", "A", "B", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A")
}

func TestExpand_EmptyRequest(t *testing.T) {
	t.Parallel()

	_, err := symbols.Expand(sampleManifest(), "consumer")
	assert.Error(t, err)
}

func TestUse_EndToEnd(t *testing.T) {
	t.Parallel()

	genDir := t.TempDir()
	outDir := t.TempDir()

	a := constgen.New("gen")
	require.NoError(t, a.WriteConst("MaxCities", "int", 100))
	require.NoError(t, a.WriteStatic("Capital", "(string, uint32)", rt.Pair[string, uint32]{A: "Riga", B: 605802}))
	require.NoError(t, a.WriteConst("Bounds", "*(int, int)", rt.Ptr(rt.Pair[int, int]{A: 1, B: 2})))
	require.NoError(t, a.Flush(genDir))

	out := filepath.Join(outDir, "symbols.gen.go")
	err := symbols.Use(filepath.Join(genDir, "gen.manifest.yaml"), out, "app", "Capital", "MaxCities", "Bounds")
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)

	src := string(content)
	assert.Contains(t, src, "// Code generated by constgen. DO NOT EDIT.")
	assert.Contains(t, src, "package app")
	assert.Contains(t, src, `var Capital rt.Pair[string, uint32] = rt.Pair[string, uint32]{"Riga", 605802}`)
	assert.Contains(t, src, `"constgen/rt"`)
	assert.Contains(t, src, "const MaxCities int = 100")
	assert.Contains(t, src, "var Bounds *rt.Pair[int, int] = rt.Ptr(rt.Pair[int, int]{1, 2})")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "stale temp file %s", e.Name())
	}
}

func TestUse_MissingManifest(t *testing.T) {
	t.Parallel()

	err := symbols.Use(filepath.Join(t.TempDir(), "nope.yaml"), "out.go", "app", "A")
	assert.Error(t, err)
}

func TestUse_MissingSymbolWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	a := constgen.New("gen")
	require.NoError(t, a.WriteConst("A", "int", 1))
	require.NoError(t, a.Flush(dir))

	out := filepath.Join(dir, "symbols.gen.go")
	err := symbols.Use(filepath.Join(dir, "gen.manifest.yaml"), out, "app", "Nope")
	require.ErrorIs(t, err, symbols.ErrMissingSymbol)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}
