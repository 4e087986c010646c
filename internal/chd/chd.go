// Package chd computes displacement tables for perfect hashing over a fixed
// key set, in the style of the compress-hash-displace construction: keys are
// grouped into small buckets by one hash component, then each bucket is
// assigned a displacement pair that maps its keys onto free slots.
//
// The search is fully deterministic: it starts from a fixed seed and reseeds
// with a splitmix step, so identical key sets always produce identical
// tables.
package chd

import (
	"errors"
	"sort"
)

// ErrNoSolution is returned when no valid displacement assignment exists
// within the bounded search effort.
var ErrNoSolution = errors.New("no displacement assignment found")

// InitialSeed is the first seed tried by Solve. Fixed so that repeated runs
// over the same keys are reproducible.
const InitialSeed uint64 = 0x9e3779b97f4a7c15

const (
	// lambda is the average bucket size. Five keys per bucket keeps the
	// per-bucket displacement search short at practical table sizes.
	lambda = 5

	// maxSeedTries bounds the number of hash seeds attempted before the
	// search is reported as failed.
	maxSeedTries = 64
)

// Hashes carries the three hash components used by the scheme: G selects the
// bucket, F1 and F2 feed the displacement function.
type Hashes struct {
	G  uint32
	F1 uint32
	F2 uint32
}

// Displace computes the raw slot value for hash components (f1, f2) under
// the displacement pair (d1, d2). Callers reduce the result modulo the table
// length.
func Displace(f1, f2, d1, d2 uint32) uint32 {
	return d2 + f1*d1 + f2
}

// mix is the splitmix64 finalizer. Used both for reseeding and for expanding
// a single 64-bit hash into independent components.
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return z ^ (z >> 31)
}

// HashBytes hashes b under seed into the three components.
func HashBytes(seed uint64, b []byte) Hashes {
	// Seeded FNV-1a, then expanded through the splitmix finalizer.
	h := seed ^ 0xcbf29ce484222325
	for _, c := range b {
		h ^= uint64(c)
		h *= 0x100000001b3
	}

	return expand(h)
}

// HashUint64 hashes a 64-bit value under seed into the three components.
// Integer and boolean keys funnel through this after widening.
func HashUint64(seed uint64, x uint64) Hashes {
	return expand(mix(seed ^ x*0x100000001b3))
}

func expand(h uint64) Hashes {
	h = mix(h)
	lo := mix(h ^ InitialSeed)

	return Hashes{
		G:  uint32(h >> 32),
		F1: uint32(h),
		F2: uint32(lo),
	}
}

// Solution is a complete perfect-hash assignment for one key set.
type Solution struct {
	// Seed is the hash seed under which the displacements are valid.
	Seed uint64
	// Disps holds one (d1, d2) displacement pair per bucket.
	Disps [][2]uint32
	// Slots maps slot index -> original key index. Every slot is occupied;
	// the table is minimal.
	Slots []int
}

// Solve searches for a perfect-hash solution over n keys. hashAll must
// return the n key hashes under the given seed, in key order. Solve never
// loops unboundedly: after maxSeedTries seeds it fails with ErrNoSolution.
func Solve(n int, hashAll func(seed uint64) []Hashes) (*Solution, error) {
	if n == 0 {
		return &Solution{Seed: InitialSeed}, nil
	}

	seed := InitialSeed
	for range maxSeedTries {
		if sol, ok := trySeed(seed, n, hashAll(seed)); ok {
			return sol, nil
		}

		seed = mix(seed)
	}

	return nil, ErrNoSolution
}

// trySeed attempts a full displacement assignment for one seed.
func trySeed(seed uint64, n int, hs []Hashes) (*Solution, bool) {
	nbuckets := (n + lambda - 1) / lambda

	buckets := make([][]int, nbuckets)
	for i, h := range hs {
		b := int(h.G % uint32(nbuckets))
		buckets[b] = append(buckets[b], i)
	}

	// Largest buckets first; index breaks ties so the order is total.
	order := make([]int, nbuckets)
	for i := range order {
		order[i] = i
	}

	sort.Slice(order, func(i, j int) bool {
		bi, bj := order[i], order[j]
		if len(buckets[bi]) != len(buckets[bj]) {
			return len(buckets[bi]) > len(buckets[bj])
		}

		return bi < bj
	})

	slots := make([]int, n)
	for i := range slots {
		slots[i] = -1
	}

	// tryGen marks slots claimed within the current (d1, d2) attempt,
	// avoiding a clear between attempts.
	tryGen := make([]uint64, n)
	gen := uint64(0)

	disps := make([][2]uint32, nbuckets)
	claimed := make([]int, 0, lambda*2)

	for _, b := range order {
		keys := buckets[b]
		if len(keys) == 0 {
			continue
		}

		found := false

	search:
		for d1 := uint32(0); d1 < uint32(n); d1++ {
			for d2 := uint32(0); d2 < uint32(n); d2++ {
				gen++
				claimed = claimed[:0]

				ok := true
				for _, ki := range keys {
					slot := int(Displace(hs[ki].F1, hs[ki].F2, d1, d2) % uint32(n))
					if slots[slot] != -1 || tryGen[slot] == gen {
						ok = false
						break
					}

					tryGen[slot] = gen
					claimed = append(claimed, slot)
				}

				if !ok {
					continue
				}

				for i, ki := range keys {
					slots[claimed[i]] = ki
				}

				disps[b] = [2]uint32{d1, d2}
				found = true

				break search
			}
		}

		if !found {
			return nil, false
		}
	}

	return &Solution{Seed: seed, Disps: disps, Slots: slots}, true
}
