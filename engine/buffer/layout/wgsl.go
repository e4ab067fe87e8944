package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// WGSLStruct renders a WGSL struct declaration whose natural layout matches l.
// A `_padN: u32` member is emitted after every field whose stride exceeds its WGSL size (vec3),
// so that shader-side offsets agree with the stride-based offsets used for packing. bool is not
// host-shareable in WGSL, so bool fields are declared as u32 holding 0 or 1.
//
// Parameters:
//   - name: the WGSL struct name
//   - l: an aligned layout
//
// Returns:
//   - string: the declaration source
//   - error: ErrUnalignedLayout for packed layouts, ErrEmptyLayout for a layout with no fields
func WGSLStruct(name string, l StructLayout) (string, error) {
	if l.Packed {
		return "", fmt.Errorf("%w: %s", ErrUnalignedLayout, name)
	}
	if len(l.Fields) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyLayout, name)
	}

	var sb strings.Builder
	sb.WriteString("struct ")
	sb.WriteString(name)
	sb.WriteString(" {\n")
	pad := 0
	for _, f := range l.Fields {
		sb.WriteString("    ")
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(wgslTypeName(f.Type))
		sb.WriteString(",\n")
		for gap := f.Type.Stride - wgslSize(f.Type); gap > 0; gap -= 4 {
			sb.WriteString("    _pad" + strconv.Itoa(pad) + ": u32,\n")
			pad++
		}
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

func wgslTypeName(t TypeInfo) string {
	if t.Kind == KindBool {
		return "u32"
	}
	return t.Name
}

// wgslSize is SizeOf(T) from the WGSL memory layout rules, which differs from the stride only
// for three-component vectors.
func wgslSize(t TypeInfo) int {
	if t.IsMatrix() {
		return t.Stride
	}
	return t.ByteSize()
}

// ReflectedStruct is the layout a shader compiler assigned to a WGSL struct.
type ReflectedStruct struct {
	Name    string
	Members []FieldOffset
	Size    int
}

// FieldOffset is one reflected struct member.
type FieldOffset struct {
	Name   string
	Offset int
}

// Offset returns the reflected offset of the named member.
func (r ReflectedStruct) Offset(name string) (int, bool) {
	for _, m := range r.Members {
		if m.Name == name {
			return m.Offset, true
		}
	}
	return 0, false
}

// ReflectWGSL compiles WGSL source with naga and returns the member offsets and size the
// compiler assigned to the named struct.
//
// Parameters:
//   - source: WGSL source declaring the struct
//   - structName: the struct to reflect
//
// Returns:
//   - ReflectedStruct: the compiler's view of the struct layout
//   - error: a parse or lowering error, or ErrUnknownField if the struct is not declared
func ReflectWGSL(source, structName string) (ReflectedStruct, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return ReflectedStruct{}, fmt.Errorf("reflect %s: %w", structName, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return ReflectedStruct{}, fmt.Errorf("reflect %s: %w", structName, err)
	}

	for _, typ := range module.Types {
		if typ.Name != structName {
			continue
		}
		st, ok := typ.Inner.(ir.StructType)
		if !ok {
			return ReflectedStruct{}, fmt.Errorf("reflect %s: %w: not a struct", structName, ErrInvalidType)
		}
		out := ReflectedStruct{Name: structName, Size: int(st.Span)}
		for _, m := range st.Members {
			out.Members = append(out.Members, FieldOffset{Name: m.Name, Offset: int(m.Offset)})
		}
		return out, nil
	}
	return ReflectedStruct{}, fmt.Errorf("%w: struct %q", ErrUnknownField, structName)
}
