package phf

import "iter"

// OrderedSetBuilder accumulates keys whose insertion order is preserved by
// the emitted OrderedSet.
type OrderedSetBuilder[K Key] struct {
	inner SetBuilder[K]
}

// NewOrderedSetBuilder returns an empty builder.
func NewOrderedSetBuilder[K Key]() *OrderedSetBuilder[K] {
	return &OrderedSetBuilder[K]{
		inner: SetBuilder[K]{seen: make(map[K]struct{})},
	}
}

// Entry appends one key. Re-adding an existing key fails with
// ErrDuplicateKey.
func (b *OrderedSetBuilder[K]) Entry(key K) error {
	return b.inner.Entry(key)
}

// Len reports the number of keys added so far.
func (b *OrderedSetBuilder[K]) Len() int {
	return b.inner.Len()
}

// BuildTable computes the perfect-hash layout. Keys stay in insertion order;
// the slot table is carried as an index array instead.
func (b *OrderedSetBuilder[K]) BuildTable() (*Table, error) {
	sol, err := solve(b.inner.keys)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Seed:    sol.Seed,
		Disps:   sol.Disps,
		Idxs:    sol.Slots,
		Keys:    make([]any, len(b.inner.keys)),
		Ordered: true,
		Set:     true,
	}

	for i, k := range b.inner.keys {
		t.Keys[i] = k
	}

	return t, nil
}

// OrderedSet is an immutable set with perfect-hash membership tests whose
// iteration order is the original insertion order.
type OrderedSet[K Key] struct {
	seed  uint64
	disps [][2]uint32
	idxs  []uint32
	keys  []K
}

// RawOrderedSet constructs an OrderedSet directly from precomputed tables.
// It exists for generated code; hand-written callers should go through
// OrderedSetBuilder.
func RawOrderedSet[K Key](seed uint64, disps [][2]uint32, idxs []uint32, keys []K) OrderedSet[K] {
	return OrderedSet[K]{seed: seed, disps: disps, idxs: idxs, keys: keys}
}

// Len reports the number of keys.
func (s OrderedSet[K]) Len() int {
	return len(s.keys)
}

// IsEmpty reports whether the set has no keys.
func (s OrderedSet[K]) IsEmpty() bool {
	return len(s.keys) == 0
}

// Has reports whether key is present.
func (s OrderedSet[K]) Has(key K) bool {
	_, ok := s.GetIndex(key)
	return ok
}

// GetIndex returns the insertion position of key.
func (s OrderedSet[K]) GetIndex(key K) (int, bool) {
	slot, ok := slotFor(s.seed, s.disps, len(s.keys), key)
	if !ok {
		return 0, false
	}

	i := int(s.idxs[slot])
	if s.keys[i] != key {
		return 0, false
	}

	return i, true
}

// Index returns the key at insertion position i.
func (s OrderedSet[K]) Index(i int) (K, bool) {
	if i < 0 || i >= len(s.keys) {
		var zero K
		return zero, false
	}

	return s.keys[i], true
}

// All iterates over all keys in insertion order.
func (s OrderedSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range s.keys {
			if !yield(k) {
				return
			}
		}
	}
}
