package layout

import "errors"

var (
	// ErrInvalidName is returned when a field name is empty or declared twice in one struct.
	ErrInvalidName = errors.New("invalid field name")

	// ErrInvalidType is returned for a type name outside the registered WGSL vocabulary.
	ErrInvalidType = errors.New("invalid type")

	// ErrInvalidValue is returned for a missing value or one holding a non-finite component.
	ErrInvalidValue = errors.New("invalid value")

	// ErrSizeMismatch is returned when a value's component count disagrees with its declared type.
	ErrSizeMismatch = errors.New("value size does not match type")

	// ErrUnknownField is returned when an offset is requested for a field that is not part of the layout.
	ErrUnknownField = errors.New("unknown field")

	// ErrOutOfRange is returned when a value would be written or read past the end of a byte region.
	ErrOutOfRange = errors.New("offset out of range")

	// ErrUnalignedLayout is returned when WGSL source is requested for a tightly packed layout.
	ErrUnalignedLayout = errors.New("layout is not aligned")

	// ErrEmptyLayout is returned when WGSL source is requested for a layout with no fields.
	ErrEmptyLayout = errors.New("layout has no fields")
)
