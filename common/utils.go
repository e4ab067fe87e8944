// Package common holds small generic helpers and column-major matrix math shared across the engine.
package common

import "golang.org/x/exp/constraints"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// AlignUp rounds n up to the next multiple of align. An align of zero or one returns n unchanged.
//
// Parameters:
//   - n: the value to round
//   - align: the boundary to round to
//
// Returns:
//   - T: the smallest multiple of align that is >= n
func AlignUp[T constraints.Integer](n, align T) T {
	if align <= 1 {
		return n
	}
	if r := n % align; r != 0 {
		return n + align - r
	}
	return n
}
