// Package rt holds the small support types referenced by generated code:
// pointer and tuple carriers that have no direct Go literal syntax.
//
// Generated fragments spell these out explicitly (rt.Ptr, rt.Pair{...}), so
// the package must stay dependency-free and stable.
package rt

// Ptr returns a pointer to v. Generated code uses it to materialize
// option-like values in a single expression.
func Ptr[T any](v T) *T {
	return &v
}

// Pair is a 2-tuple. Fields are positional: A is the first element.
type Pair[A, B any] struct {
	A A
	B B
}

// Tuple3 is a 3-tuple.
type Tuple3[A, B, C any] struct {
	A A
	B B
	C C
}

// Tuple4 is a 4-tuple.
type Tuple4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}
