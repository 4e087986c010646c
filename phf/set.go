package phf

import (
	"fmt"
	"iter"
)

// SetBuilder accumulates keys on the generation side.
type SetBuilder[K Key] struct {
	keys []K
	seen map[K]struct{}
}

// NewSetBuilder returns an empty builder.
func NewSetBuilder[K Key]() *SetBuilder[K] {
	return &SetBuilder[K]{seen: make(map[K]struct{})}
}

// Entry appends one key. Re-adding an existing key fails with
// ErrDuplicateKey.
func (b *SetBuilder[K]) Entry(key K) error {
	if _, dup := b.seen[key]; dup {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}

	b.seen[key] = struct{}{}
	b.keys = append(b.keys, key)

	return nil
}

// Len reports the number of keys added so far.
func (b *SetBuilder[K]) Len() int {
	return len(b.keys)
}

// BuildTable computes the perfect-hash layout. Keys are permuted into slot
// order.
func (b *SetBuilder[K]) BuildTable() (*Table, error) {
	sol, err := solve(b.keys)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Seed:  sol.Seed,
		Disps: sol.Disps,
		Keys:  make([]any, len(b.keys)),
		Set:   true,
	}

	for slot, ki := range sol.Slots {
		t.Keys[slot] = b.keys[ki]
	}

	return t, nil
}

// Set is an immutable set with perfect-hash membership tests. Iteration
// order is unspecified; use OrderedSet when order matters.
type Set[K Key] struct {
	seed  uint64
	disps [][2]uint32
	keys  []K
}

// RawSet constructs a Set directly from precomputed tables. It exists for
// generated code; hand-written callers should go through SetBuilder.
func RawSet[K Key](seed uint64, disps [][2]uint32, keys []K) Set[K] {
	return Set[K]{seed: seed, disps: disps, keys: keys}
}

// Len reports the number of keys.
func (s Set[K]) Len() int {
	return len(s.keys)
}

// IsEmpty reports whether the set has no keys.
func (s Set[K]) IsEmpty() bool {
	return len(s.keys) == 0
}

// Has reports whether key is present.
func (s Set[K]) Has(key K) bool {
	slot, ok := slotFor(s.seed, s.disps, len(s.keys), key)

	return ok && s.keys[slot] == key
}

// All iterates over all keys.
func (s Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range s.keys {
			if !yield(k) {
				return
			}
		}
	}
}
