package phf

// Table is the finalized, read-only layout of a builder: the displacement
// table plus the entries arranged for emission. It is the contract between
// the collection builders and the serializer, which cannot see the builders'
// type parameters.
//
// For plain variants Keys/Vals are in slot order and Idxs is nil. For
// ordered variants Keys/Vals stay in insertion order and Idxs maps
// slot -> entry index.
type Table struct {
	Seed    uint64
	Disps   [][2]uint32
	Idxs    []int
	Keys    []any
	Vals    []any
	Ordered bool
	Set     bool
}

// Builder is implemented by every collection builder. BuildTable computes
// the perfect-hash tables once, over the entries added so far; the builder
// itself is not mutated, so entries added afterwards are simply not part of
// the returned table.
type Builder interface {
	BuildTable() (*Table, error)
}
