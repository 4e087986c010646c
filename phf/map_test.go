package phf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawMapFromBuilder finalizes b and reconstructs the runtime Map the way
// generated code would.
func rawMapFromBuilder[K Key, V any](t *testing.T, b *MapBuilder[K, V]) Map[K, V] {
	t.Helper()

	table, err := b.BuildTable()
	require.NoError(t, err)

	keys := make([]K, len(table.Keys))
	vals := make([]V, len(table.Vals))

	for i := range table.Keys {
		keys[i] = table.Keys[i].(K)
		vals[i] = table.Vals[i].(V)
	}

	return RawMap(table.Seed, table.Disps, keys, vals)
}

func TestMap_IntKeys(t *testing.T) {
	b := NewMapBuilder[int, int]()
	for i := range 5 {
		require.NoError(t, b.Entry(i, 10+i))
	}

	m := rawMapFromBuilder(t, b)

	assert.Equal(t, 5, m.Len())

	for i := range 5 {
		v, ok := m.Get(i)
		require.True(t, ok, "key %d missing", i)
		assert.Equal(t, 10+i, v)
	}

	_, ok := m.Get(99)
	assert.False(t, ok)
}

func TestMap_StringKeys(t *testing.T) {
	b := NewMapBuilder[string, string]()
	require.NoError(t, b.Entry("hello", "there"))
	require.NoError(t, b.Entry("what", "do"))
	require.NoError(t, b.Entry("you", "think?"))

	m := rawMapFromBuilder(t, b)

	assert.Equal(t, 3, m.Len())

	v, ok := m.Get("hello")
	require.True(t, ok)
	assert.Equal(t, "there", v)

	v, ok = m.Get("what")
	require.True(t, ok)
	assert.Equal(t, "do", v)

	v, ok = m.Get("you")
	require.True(t, ok)
	assert.Equal(t, "think?", v)

	// A key never inserted resolves to some slot but must fail the stored
	// key comparison.
	_, ok = m.Get("nope")
	assert.False(t, ok)
	assert.False(t, m.Has("nope"))
}

func TestMap_NoFalsePositives(t *testing.T) {
	b := NewMapBuilder[string, int]()
	for i := range 300 {
		require.NoError(t, b.Entry(fmt.Sprintf("present-%d", i), i))
	}

	m := rawMapFromBuilder(t, b)

	for i := range 300 {
		v, ok := m.Get(fmt.Sprintf("present-%d", i))
		require.True(t, ok)
		require.Equal(t, i, v)
	}

	for i := range 300 {
		assert.False(t, m.Has(fmt.Sprintf("absent-%d", i)))
	}
}

func TestMap_Empty(t *testing.T) {
	m := rawMapFromBuilder(t, NewMapBuilder[string, int]())

	assert.Equal(t, 0, m.Len())
	assert.True(t, m.IsEmpty())
	assert.False(t, m.Has("anything"))
}

func TestMapBuilder_DuplicateKey(t *testing.T) {
	b := NewMapBuilder[string, int]()
	require.NoError(t, b.Entry("dup", 1))

	err := b.Entry("dup", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "dup")

	// The first entry survives untouched.
	assert.Equal(t, 1, b.Len())
}

func TestMap_Iteration(t *testing.T) {
	b := NewMapBuilder[int, string]()
	require.NoError(t, b.Entry(1, "a"))
	require.NoError(t, b.Entry(2, "b"))
	require.NoError(t, b.Entry(3, "c"))

	m := rawMapFromBuilder(t, b)

	got := make(map[int]string)
	for k, v := range m.All() {
		got[k] = v
	}

	assert.Equal(t, map[int]string{1: "a", 2: "b", 3: "c"}, got)

	count := 0
	for range m.Keys() {
		count++
	}

	assert.Equal(t, 3, count)
}

func TestSet_Membership(t *testing.T) {
	b := NewSetBuilder[string]()
	for _, k := range []string{"alpha", "beta", "gamma"} {
		require.NoError(t, b.Entry(k))
	}

	table, err := b.BuildTable()
	require.NoError(t, err)
	require.True(t, table.Set)

	keys := make([]string, len(table.Keys))
	for i := range table.Keys {
		keys[i] = table.Keys[i].(string)
	}

	s := RawSet(table.Seed, table.Disps, keys)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("alpha"))
	assert.True(t, s.Has("beta"))
	assert.True(t, s.Has("gamma"))
	assert.False(t, s.Has("delta"))
}

func TestSetBuilder_DuplicateKey(t *testing.T) {
	b := NewSetBuilder[int]()
	require.NoError(t, b.Entry(7))

	assert.ErrorIs(t, b.Entry(7), ErrDuplicateKey)
}
