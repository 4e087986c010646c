package chd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stringHasher builds the hashAll closure Solve expects.
func stringHasher(keys []string) func(seed uint64) []Hashes {
	return func(seed uint64) []Hashes {
		hs := make([]Hashes, len(keys))
		for i, k := range keys {
			hs[i] = HashBytes(seed, []byte(k))
		}

		return hs
	}
}

func TestSolve_Empty(t *testing.T) {
	sol, err := Solve(0, func(uint64) []Hashes { return nil })

	require.NoError(t, err)
	assert.Empty(t, sol.Disps)
	assert.Empty(t, sol.Slots)
}

func TestSolve_AssignsEverySlot(t *testing.T) {
	sizes := []int{1, 2, 5, 17, 100, 500}

	for _, n := range sizes {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			keys := make([]string, n)
			for i := range keys {
				keys[i] = fmt.Sprintf("key-%d", i)
			}

			sol, err := Solve(n, stringHasher(keys))
			require.NoError(t, err)

			require.Len(t, sol.Slots, n)

			// Every key index appears exactly once: the assignment is a
			// permutation.
			seen := make(map[int]bool, n)
			for _, ki := range sol.Slots {
				require.GreaterOrEqual(t, ki, 0)
				require.Less(t, ki, n)
				require.False(t, seen[ki], "key index %d assigned twice", ki)
				seen[ki] = true
			}
		})
	}
}

func TestSolve_LookupResolvesToOwnSlot(t *testing.T) {
	keys := make([]string, 64)
	for i := range keys {
		keys[i] = fmt.Sprintf("entry/%d", i)
	}

	sol, err := Solve(len(keys), stringHasher(keys))
	require.NoError(t, err)

	hs := stringHasher(keys)(sol.Seed)
	n := uint32(len(keys))

	for ki, h := range hs {
		d := sol.Disps[h.G%uint32(len(sol.Disps))]
		slot := Displace(h.F1, h.F2, d[0], d[1]) % n

		assert.Equal(t, ki, sol.Slots[slot], "key %d does not resolve to its own slot", ki)
	}
}

func TestSolve_Deterministic(t *testing.T) {
	keys := []string{"hello", "there", "what", "do", "you", "think"}

	a, err := Solve(len(keys), stringHasher(keys))
	require.NoError(t, err)

	b, err := Solve(len(keys), stringHasher(keys))
	require.NoError(t, err)

	assert.Equal(t, a.Seed, b.Seed)
	assert.Equal(t, a.Disps, b.Disps)
	assert.Equal(t, a.Slots, b.Slots)
}

func TestSolve_IntegerKeys(t *testing.T) {
	n := 200
	hashAll := func(seed uint64) []Hashes {
		hs := make([]Hashes, n)
		for i := range hs {
			hs[i] = HashUint64(seed, uint64(i))
		}

		return hs
	}

	sol, err := Solve(n, hashAll)
	require.NoError(t, err)
	assert.Len(t, sol.Slots, n)
}

func TestHashBytes_SeedChangesHash(t *testing.T) {
	a := HashBytes(InitialSeed, []byte("payload"))
	b := HashBytes(mix(InitialSeed), []byte("payload"))

	assert.NotEqual(t, a, b)
}
