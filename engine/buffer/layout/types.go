// Package layout implements the WGSL host-shareable memory layout rules used by the engine's uniform and
// storage buffers: the fixed table of scalar/vector/matrix types, struct offset and size computation, and
// the encoding of CPU-side values into the resulting byte regions.
package layout

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ScalarKind identifies how each 32-bit lane of a type is interpreted by the shader.
type ScalarKind uint8

const (
	// KindFloat lanes hold IEEE-754 binary32 values (f32).
	KindFloat ScalarKind = iota
	// KindSint lanes hold two's-complement 32-bit integers (i32).
	KindSint
	// KindUint lanes hold unsigned 32-bit integers (u32).
	KindUint
	// KindBool lanes hold 0 or 1 as an unsigned 32-bit integer (bool).
	KindBool
)

func (k ScalarKind) String() string {
	switch k {
	case KindFloat:
		return "f32"
	case KindSint:
		return "i32"
	case KindUint:
		return "u32"
	case KindBool:
		return "bool"
	}
	return "ScalarKind(" + strconv.Itoa(int(k)) + ")"
}

// TypeInfo holds the immutable layout facts of a single WGSL type.
//
// Size is the number of 32-bit components the type carries, Align the byte boundary its offset
// must satisfy and Stride its padded footprint in bytes. For matrices, Columns and Rows describe
// the column-vector decomposition (matCxR is C columns of vecR).
type TypeInfo struct {
	Name    string
	Kind    ScalarKind
	Size    int
	Align   int
	Stride  int
	Columns int
	Rows    int
}

// ByteSize returns the number of meaningful bytes the type carries (Size lanes of 4 bytes).
// It is the footprint the type occupies in a tightly packed layout.
func (t TypeInfo) ByteSize() int {
	return t.Size * 4
}

// IsMatrix reports whether the type is a matCxR type.
func (t TypeInfo) IsMatrix() bool {
	return t.Columns > 1
}

// registry maps every accepted spelling to its canonical TypeInfo. It is populated once in init and
// never mutated afterwards.
var registry = map[string]TypeInfo{}

func vecAlign(n int) int {
	if n == 2 {
		return 8
	}
	return 16
}

func init() {
	scalars := []struct {
		name string
		kind ScalarKind
	}{
		{"f32", KindFloat},
		{"i32", KindSint},
		{"u32", KindUint},
		{"bool", KindBool},
	}

	for _, s := range scalars {
		registry[s.name] = TypeInfo{Name: s.name, Kind: s.kind, Size: 1, Align: 4, Stride: 4, Columns: 1, Rows: 1}
		for n := 2; n <= 4; n++ {
			name := "vec" + strconv.Itoa(n) + "<" + s.name + ">"
			registry[name] = TypeInfo{Name: name, Kind: s.kind, Size: n, Align: vecAlign(n), Stride: vecAlign(n), Columns: 1, Rows: n}
		}
	}

	for c := 2; c <= 4; c++ {
		for r := 2; r <= 4; r++ {
			name := "mat" + strconv.Itoa(c) + "x" + strconv.Itoa(r) + "<f32>"
			registry[name] = TypeInfo{
				Name:    name,
				Kind:    KindFloat,
				Size:    c * r,
				Align:   vecAlign(r),
				Stride:  c * vecAlign(r),
				Columns: c,
				Rows:    r,
			}
		}
	}

	aliases := map[string]string{
		"float": "f32",
		"int":   "i32",
		"uint":  "u32",
		"vec2":  "vec2<f32>",
		"vec3":  "vec3<f32>",
		"vec4":  "vec4<f32>",
		"mat2":  "mat2x2<f32>",
		"mat3":  "mat3x3<f32>",
		"mat4":  "mat4x4<f32>",
	}
	for n := 2; n <= 4; n++ {
		v := "vec" + strconv.Itoa(n)
		aliases[v+"f"] = v + "<f32>"
		aliases[v+"i"] = v + "<i32>"
		aliases[v+"u"] = v + "<u32>"
	}
	for c := 2; c <= 4; c++ {
		for r := 2; r <= 4; r++ {
			m := "mat" + strconv.Itoa(c) + "x" + strconv.Itoa(r)
			aliases[m] = m + "<f32>"
			aliases[m+"f"] = m + "<f32>"
		}
	}
	for alias, canonical := range aliases {
		registry[alias] = registry[canonical]
	}
}

// normalizeTypeName strips whitespace so that "vec3< f32 >" and "vec3<f32>" resolve identically.
func normalizeTypeName(name string) string {
	return strings.Join(strings.Fields(name), "")
}

// Lookup returns the TypeInfo registered for the given type name.
//
// Parameters:
//   - name: a WGSL type name or one of the accepted shorthand aliases
//
// Returns:
//   - TypeInfo: the canonical layout facts for the type
//   - bool: false if the name is not part of the vocabulary
func Lookup(name string) (TypeInfo, bool) {
	t, ok := registry[normalizeTypeName(name)]
	return t, ok
}

// Resolve is like Lookup but returns ErrInvalidType for unknown names.
//
// Parameters:
//   - name: the type name to resolve
//
// Returns:
//   - TypeInfo: the canonical layout facts for the type
//   - error: ErrInvalidType if the name is not registered
func Resolve(name string) (TypeInfo, error) {
	t, ok := Lookup(name)
	if !ok {
		return TypeInfo{}, fmt.Errorf("%w: %q", ErrInvalidType, name)
	}
	return t, nil
}

// IsValidType reports whether name belongs to the registered vocabulary.
func IsValidType(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// ComponentCount returns the number of 32-bit lanes carried by the type.
func ComponentCount(name string) (int, error) {
	t, err := Resolve(name)
	return t.Size, err
}

// Alignment returns the byte alignment required by the type.
func Alignment(name string) (int, error) {
	t, err := Resolve(name)
	return t.Align, err
}

// Stride returns the padded byte footprint of the type.
func Stride(name string) (int, error) {
	t, err := Resolve(name)
	return t.Stride, err
}

// TypeNames returns every accepted type spelling, sorted.
func TypeNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
