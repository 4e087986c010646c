package emit

import "errors"

var (
	// ErrUnsupportedType is returned when no emit capability exists for a
	// declared type. The wrapping message always names the type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrDimensionMismatch is returned when a declared dimension exceeds the
	// actual nesting depth of the value, or when the nested data is ragged
	// and cannot fill a fixed-size array.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
