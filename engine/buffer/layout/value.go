package layout

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Value is a CPU-side datum destined for a typed field: either a Scalar or a Vector.
// Matrices are Vectors holding their components in column-major order.
type Value interface {
	// Components returns the value's lanes in order. A Scalar has exactly one.
	Components() []float64

	isValue()
}

// Scalar is a single number for scalar types (f32, i32, u32, bool).
type Scalar float64

// Components returns the scalar as a single lane.
func (s Scalar) Components() []float64 { return []float64{float64(s)} }

func (Scalar) isValue() {}

// Vector is an ordered list of numbers for vector and matrix types.
type Vector []float64

// Components returns the vector's lanes.
func (v Vector) Components() []float64 { return v }

func (Vector) isValue() {}

// Vec builds a Vector from its components.
func Vec(components ...float64) Vector {
	return Vector(components)
}

// Float32s builds a Vector from float32 components, such as a [16]float32 matrix slice.
func Float32s(components []float32) Vector {
	v := make(Vector, len(components))
	for i, c := range components {
		v[i] = float64(c)
	}
	return v
}

// Bool returns a Scalar holding 1 for true and 0 for false.
func Bool(b bool) Scalar {
	if b {
		return 1
	}
	return 0
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ValidateValue checks that v is present and that every component is finite.
//
// Parameters:
//   - v: the value to check
//
// Returns:
//   - error: ErrInvalidValue if v is nil or holds a NaN or infinite component
func ValidateValue(v Value) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("%w: value is nil", ErrInvalidValue)
	case Scalar:
		if !finite(float64(val)) {
			return fmt.Errorf("%w: %v is not finite", ErrInvalidValue, float64(val))
		}
	case Vector:
		if val == nil {
			return fmt.Errorf("%w: vector is nil", ErrInvalidValue)
		}
		for i, c := range val {
			if !finite(c) {
				return fmt.Errorf("%w: component %d (%v) is not finite", ErrInvalidValue, i, c)
			}
		}
	default:
		return fmt.Errorf("%w: unsupported value %T", ErrInvalidValue, v)
	}
	return nil
}

// ValidateValueSize checks that v carries exactly as many components as t.
// Scalar types accept both a Scalar and a one-element Vector; wider types require a Vector.
//
// Parameters:
//   - v: the value to check
//   - t: the declared type
//
// Returns:
//   - error: ErrSizeMismatch if the component counts disagree
func ValidateValueSize(v Value, t TypeInfo) error {
	switch val := v.(type) {
	case Scalar:
		if t.Size != 1 {
			return fmt.Errorf("%w: %s needs %d components, got a scalar", ErrSizeMismatch, t.Name, t.Size)
		}
	case Vector:
		if len(val) != t.Size {
			return fmt.Errorf("%w: %s needs %d components, got %d", ErrSizeMismatch, t.Name, t.Size, len(val))
		}
	}
	return nil
}

// Validate resolves typeName and runs ValidateValue and ValidateValueSize against it.
//
// Parameters:
//   - v: the value to check
//   - typeName: the declared type name
//
// Returns:
//   - TypeInfo: the resolved type
//   - error: ErrInvalidType, ErrInvalidValue (including f32 overflow) or ErrSizeMismatch
func Validate(v Value, typeName string) (TypeInfo, error) {
	t, err := Resolve(typeName)
	if err != nil {
		return TypeInfo{}, err
	}
	if err := ValidateValue(v); err != nil {
		return TypeInfo{}, err
	}
	if err := ValidateValueSize(v, t); err != nil {
		return TypeInfo{}, err
	}
	if err := validateRange(v, t); err != nil {
		return TypeInfo{}, err
	}
	return t, nil
}

// validateRange rejects float components that would overflow to infinity when narrowed to f32.
func validateRange(v Value, t TypeInfo) error {
	if t.Kind != KindFloat {
		return nil
	}
	for i, c := range v.Components() {
		if math.Abs(c) > math.MaxFloat32 {
			return fmt.Errorf("%w: component %d (%v) overflows %s", ErrInvalidValue, i, c, t.Name)
		}
	}
	return nil
}

// encodeLane converts one component to the 32-bit pattern the shader reads for the given kind.
// Integer kinds truncate toward zero and saturate at the bounds of the 32-bit range.
func encodeLane(x float64, kind ScalarKind) uint32 {
	switch kind {
	case KindSint:
		x = math.Trunc(math.Max(math.MinInt32, math.Min(math.MaxInt32, x)))
		return uint32(int32(x))
	case KindUint:
		x = math.Trunc(math.Max(0, math.Min(math.MaxUint32, x)))
		return uint32(x)
	case KindBool:
		if x != 0 {
			return 1
		}
		return 0
	default:
		return math.Float32bits(float32(x))
	}
}

func decodeLane(bits uint32, kind ScalarKind) float64 {
	switch kind {
	case KindSint:
		return float64(int32(bits))
	case KindUint, KindBool:
		return float64(bits)
	default:
		return float64(math.Float32frombits(bits))
	}
}

// laneOffset returns the byte offset of component i relative to the field start. Matrix columns
// are spaced by the column vector's alignment; everything else is contiguous.
func laneOffset(t TypeInfo, i int, packed bool) int {
	if packed || !t.IsMatrix() {
		return i * 4
	}
	col, row := i/t.Rows, i%t.Rows
	return col*vecAlign(t.Rows) + row*4
}

func writeLanes(dst []byte, offset int, v Value, t TypeInfo, packed bool) error {
	comps := v.Components()
	if len(comps) != t.Size {
		return fmt.Errorf("%w: %s needs %d components, got %d", ErrSizeMismatch, t.Name, t.Size, len(comps))
	}
	end := offset + laneOffset(t, t.Size-1, packed) + 4
	if offset < 0 || end > len(dst) {
		return fmt.Errorf("%w: %s at %d needs %d bytes, region has %d", ErrOutOfRange, t.Name, offset, end, len(dst))
	}
	for i, c := range comps {
		at := offset + laneOffset(t, i, packed)
		binary.LittleEndian.PutUint32(dst[at:at+4], encodeLane(c, t.Kind))
	}
	return nil
}

// WriteValue encodes v into dst starting at offset using the aligned layout of t.
// Vector components are written as consecutive 32-bit lanes; matrix values are expected in
// column-major order and each column starts on its own column-vector boundary. Padding bytes
// are left untouched.
//
// Parameters:
//   - dst: the destination byte region
//   - offset: the byte offset of the field within dst
//   - v: the value to encode
//   - t: the field's type
//
// Returns:
//   - error: ErrSizeMismatch or ErrOutOfRange
func WriteValue(dst []byte, offset int, v Value, t TypeInfo) error {
	return writeLanes(dst, offset, v, t, false)
}

// WritePackedValue encodes v into dst starting at offset with every component contiguous,
// matrices included. It is the encoding used by packed layouts.
func WritePackedValue(dst []byte, offset int, v Value, t TypeInfo) error {
	return writeLanes(dst, offset, v, t, true)
}

func readLanes(src []byte, offset int, t TypeInfo, packed bool) (Value, error) {
	end := offset + laneOffset(t, t.Size-1, packed) + 4
	if offset < 0 || end > len(src) {
		return nil, fmt.Errorf("%w: %s at %d needs %d bytes, region has %d", ErrOutOfRange, t.Name, offset, end, len(src))
	}
	out := make(Vector, t.Size)
	for i := range out {
		at := offset + laneOffset(t, i, packed)
		out[i] = decodeLane(binary.LittleEndian.Uint32(src[at:at+4]), t.Kind)
	}
	if t.Size == 1 {
		return Scalar(out[0]), nil
	}
	return out, nil
}

// ReadValue decodes the field of type t stored at offset in an aligned region. It is the inverse
// of WriteValue and ignores padding.
func ReadValue(src []byte, offset int, t TypeInfo) (Value, error) {
	return readLanes(src, offset, t, false)
}

// ReadPackedValue decodes the field of type t stored at offset in a packed region.
func ReadPackedValue(src []byte, offset int, t TypeInfo) (Value, error) {
	return readLanes(src, offset, t, true)
}
