// Package phf provides immutable map and set collections backed by perfect
// hash tables, together with the insertion-ordered builders a generator
// program fills before exporting them.
//
// Builders live on the generation side: entries are accumulated, then the
// serializer finalizes the builder into displacement and slot tables and
// emits a Raw* constructor call. The runtime types on the consuming side
// answer lookups in O(1) with a single stored-key equality check and never
// allocate after construction.
package phf

import (
	"errors"
	"fmt"

	"constgen/internal/chd"
)

// ErrDuplicateKey is returned by builder Entry methods when a key is added
// twice. Re-adding is rejected rather than overwritten: a silent overwrite in
// build tooling hides data bugs until the consumer ships.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrSearchFailed is returned when no valid perfect-hash assignment was
// found within the bounded search effort.
var ErrSearchFailed = errors.New("perfect hash search failed")

// Key is the set of types usable as perfect-hash keys. rune and byte are
// covered through their underlying types.
type Key interface {
	string | int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 | bool
}

// hashKey hashes one key under seed.
func hashKey[K Key](seed uint64, key K) chd.Hashes {
	switch k := any(key).(type) {
	case string:
		return chd.HashBytes(seed, []byte(k))
	case int:
		return chd.HashUint64(seed, uint64(int64(k)))
	case int8:
		return chd.HashUint64(seed, uint64(int64(k)))
	case int16:
		return chd.HashUint64(seed, uint64(int64(k)))
	case int32:
		return chd.HashUint64(seed, uint64(int64(k)))
	case int64:
		return chd.HashUint64(seed, uint64(k))
	case uint:
		return chd.HashUint64(seed, uint64(k))
	case uint8:
		return chd.HashUint64(seed, uint64(k))
	case uint16:
		return chd.HashUint64(seed, uint64(k))
	case uint32:
		return chd.HashUint64(seed, uint64(k))
	case uint64:
		return chd.HashUint64(seed, k)
	case bool:
		if k {
			return chd.HashUint64(seed, 1)
		}

		return chd.HashUint64(seed, 0)
	default:
		// Unreachable: the Key constraint admits no other type.
		panic("phf: unhashable key type")
	}
}

// hashAll hashes every key under seed, in key order.
func hashAll[K Key](seed uint64, keys []K) []chd.Hashes {
	hs := make([]chd.Hashes, len(keys))
	for i, k := range keys {
		hs[i] = hashKey(seed, k)
	}

	return hs
}

// slotFor resolves the candidate slot for key in a table of n slots. The
// caller must still compare the stored key: a perfect hash maps unknown keys
// to arbitrary slots.
func slotFor[K Key](seed uint64, disps [][2]uint32, n int, key K) (int, bool) {
	if n == 0 || len(disps) == 0 {
		return 0, false
	}

	h := hashKey(seed, key)
	d := disps[h.G%uint32(len(disps))]

	return int(chd.Displace(h.F1, h.F2, d[0], d[1]) % uint32(n)), true
}

// solve runs the displacement search for the builder's keys.
func solve[K Key](keys []K) (*chd.Solution, error) {
	sol, err := chd.Solve(len(keys), func(seed uint64) []chd.Hashes {
		return hashAll(seed, keys)
	})
	if err != nil {
		return nil, fmt.Errorf("%w over %d keys: %v", ErrSearchFailed, len(keys), err)
	}

	return sol, nil
}
