package phf

import (
	"fmt"
	"iter"
)

// MapBuilder accumulates key/value entries on the generation side. Entries
// keep insertion order internally; the plain Map variant is free to reorder
// them when the hash tables are computed.
type MapBuilder[K Key, V any] struct {
	keys []K
	vals []V
	seen map[K]struct{}
}

// NewMapBuilder returns an empty builder.
func NewMapBuilder[K Key, V any]() *MapBuilder[K, V] {
	return &MapBuilder[K, V]{seen: make(map[K]struct{})}
}

// Entry appends one key/value pair. Re-adding an existing key fails with
// ErrDuplicateKey.
func (b *MapBuilder[K, V]) Entry(key K, value V) error {
	if _, dup := b.seen[key]; dup {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}

	b.seen[key] = struct{}{}
	b.keys = append(b.keys, key)
	b.vals = append(b.vals, value)

	return nil
}

// Len reports the number of entries added so far.
func (b *MapBuilder[K, V]) Len() int {
	return len(b.keys)
}

// BuildTable computes the perfect-hash layout. Entries are permuted into
// slot order.
func (b *MapBuilder[K, V]) BuildTable() (*Table, error) {
	sol, err := solve(b.keys)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Seed:  sol.Seed,
		Disps: sol.Disps,
		Keys:  make([]any, len(b.keys)),
		Vals:  make([]any, len(b.vals)),
	}

	for slot, ki := range sol.Slots {
		t.Keys[slot] = b.keys[ki]
		t.Vals[slot] = b.vals[ki]
	}

	return t, nil
}

// Map is an immutable map with perfect-hash lookup. Iteration order is
// unspecified; use OrderedMap when order matters.
type Map[K Key, V any] struct {
	seed  uint64
	disps [][2]uint32
	keys  []K
	vals  []V
}

// RawMap constructs a Map directly from precomputed tables. It exists for
// generated code; hand-written callers should go through MapBuilder.
func RawMap[K Key, V any](seed uint64, disps [][2]uint32, keys []K, vals []V) Map[K, V] {
	return Map[K, V]{seed: seed, disps: disps, keys: keys, vals: vals}
}

// Len reports the number of entries.
func (m Map[K, V]) Len() int {
	return len(m.keys)
}

// IsEmpty reports whether the map has no entries.
func (m Map[K, V]) IsEmpty() bool {
	return len(m.keys) == 0
}

// Get returns the value stored under key.
func (m Map[K, V]) Get(key K) (V, bool) {
	slot, ok := slotFor(m.seed, m.disps, len(m.keys), key)
	if !ok || m.keys[slot] != key {
		var zero V
		return zero, false
	}

	return m.vals[slot], true
}

// Has reports whether key is present.
func (m Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// All iterates over all entries.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// Keys iterates over all keys.
func (m Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range m.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Values iterates over all values.
func (m Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.vals {
			if !yield(v) {
				return
			}
		}
	}
}
