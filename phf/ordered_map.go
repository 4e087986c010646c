package phf

import "iter"

// OrderedMapBuilder accumulates key/value entries whose insertion order is
// preserved by the emitted OrderedMap.
type OrderedMapBuilder[K Key, V any] struct {
	inner MapBuilder[K, V]
}

// NewOrderedMapBuilder returns an empty builder.
func NewOrderedMapBuilder[K Key, V any]() *OrderedMapBuilder[K, V] {
	return &OrderedMapBuilder[K, V]{
		inner: MapBuilder[K, V]{seen: make(map[K]struct{})},
	}
}

// Entry appends one key/value pair. Re-adding an existing key fails with
// ErrDuplicateKey.
func (b *OrderedMapBuilder[K, V]) Entry(key K, value V) error {
	return b.inner.Entry(key, value)
}

// Len reports the number of entries added so far.
func (b *OrderedMapBuilder[K, V]) Len() int {
	return b.inner.Len()
}

// BuildTable computes the perfect-hash layout. Entries stay in insertion
// order; the slot table is carried as an index array instead.
func (b *OrderedMapBuilder[K, V]) BuildTable() (*Table, error) {
	sol, err := solve(b.inner.keys)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Seed:    sol.Seed,
		Disps:   sol.Disps,
		Idxs:    sol.Slots,
		Keys:    make([]any, len(b.inner.keys)),
		Vals:    make([]any, len(b.inner.vals)),
		Ordered: true,
	}

	for i, k := range b.inner.keys {
		t.Keys[i] = k
		t.Vals[i] = b.inner.vals[i]
	}

	return t, nil
}

// OrderedMap is an immutable map with perfect-hash lookup whose iteration
// order is the original insertion order.
type OrderedMap[K Key, V any] struct {
	seed  uint64
	disps [][2]uint32
	idxs  []uint32
	keys  []K
	vals  []V
}

// RawOrderedMap constructs an OrderedMap directly from precomputed tables.
// It exists for generated code; hand-written callers should go through
// OrderedMapBuilder.
func RawOrderedMap[K Key, V any](seed uint64, disps [][2]uint32, idxs []uint32, keys []K, vals []V) OrderedMap[K, V] {
	return OrderedMap[K, V]{seed: seed, disps: disps, idxs: idxs, keys: keys, vals: vals}
}

// Len reports the number of entries.
func (m OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// IsEmpty reports whether the map has no entries.
func (m OrderedMap[K, V]) IsEmpty() bool {
	return len(m.keys) == 0
}

// Get returns the value stored under key.
func (m OrderedMap[K, V]) Get(key K) (V, bool) {
	i, ok := m.GetIndex(key)
	if !ok {
		var zero V
		return zero, false
	}

	return m.vals[i], true
}

// Has reports whether key is present.
func (m OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.GetIndex(key)
	return ok
}

// GetIndex returns the insertion position of key.
func (m OrderedMap[K, V]) GetIndex(key K) (int, bool) {
	slot, ok := slotFor(m.seed, m.disps, len(m.keys), key)
	if !ok {
		return 0, false
	}

	i := int(m.idxs[slot])
	if m.keys[i] != key {
		return 0, false
	}

	return i, true
}

// Index returns the entry at insertion position i.
func (m OrderedMap[K, V]) Index(i int) (K, V, bool) {
	if i < 0 || i >= len(m.keys) {
		var zeroK K
		var zeroV V

		return zeroK, zeroV, false
	}

	return m.keys[i], m.vals[i], true
}

// All iterates over all entries in insertion order.
func (m OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// Keys iterates over all keys in insertion order.
func (m OrderedMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range m.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Values iterates over all values in insertion order.
func (m OrderedMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.vals {
			if !yield(v) {
				return
			}
		}
	}
}
