package emit

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies a parsed type signature.
type Kind int

const (
	KindInvalid Kind = iota

	KindScalar
	KindOption
	KindTuple
	KindSlice
	KindArray
	KindMap
	KindSet
	KindOrderedMap
	KindOrderedSet
	KindNamed
)
