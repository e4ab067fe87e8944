package layout

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
)

// Field declares one named member of a struct by its type name.
type Field struct {
	Name string
	Type string
}

// FieldLayout is a field resolved to its type and placed at a byte offset within a struct.
type FieldLayout struct {
	Name   string
	Type   TypeInfo
	Offset int
}

// End returns the first byte past the field's footprint in the layout it was computed for.
func (f FieldLayout) End(packed bool) int {
	if packed {
		return f.Offset + f.Type.ByteSize()
	}
	return f.Offset + f.Type.Stride
}

// StructLayout is an ordered set of placed fields plus the total size of one struct instance.
// Packed layouts place fields back to back with no alignment padding.
type StructLayout struct {
	Fields    []FieldLayout
	Size      int
	Alignment int
	Packed    bool
}

// Offset returns the byte offset of the named field.
//
// Parameters:
//   - name: the field name
//
// Returns:
//   - int: the field offset in bytes
//   - bool: false if no field has that name
func (l StructLayout) Offset(name string) (int, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f.Offset, true
		}
	}
	return 0, false
}

// Offsets returns the field name to byte offset mapping.
func (l StructLayout) Offsets() map[string]int {
	out := make(map[string]int, len(l.Fields))
	for _, f := range l.Fields {
		out[f.Name] = f.Offset
	}
	return out
}

func resolveFields(fields []Field) ([]TypeInfo, error) {
	seen := make(map[string]struct{}, len(fields))
	types := make([]TypeInfo, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidName, i)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q declared twice", ErrInvalidName, f.Name)
		}
		seen[f.Name] = struct{}{}

		t, err := Resolve(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		types[i] = t
	}
	return types, nil
}

// Compute lays out fields in declaration order following the WGSL alignment rules.
// Each field starts at the running offset rounded up to its alignment and advances it by the
// field's stride; the struct size is the final offset rounded up to the largest alignment seen.
//
// Parameters:
//   - fields: the ordered field declarations
//
// Returns:
//   - StructLayout: the placed fields and total size
//   - error: ErrInvalidName or ErrInvalidType for a bad declaration
func Compute(fields []Field) (StructLayout, error) {
	types, err := resolveFields(fields)
	if err != nil {
		return StructLayout{}, err
	}

	l := StructLayout{Fields: make([]FieldLayout, len(fields))}
	offset, maxAlign := 0, 1
	for i, t := range types {
		offset = common.AlignUp(offset, t.Align)
		l.Fields[i] = FieldLayout{Name: fields[i].Name, Type: t, Offset: offset}
		offset += t.Stride
		maxAlign = max(maxAlign, t.Align)
	}
	l.Alignment = maxAlign
	l.Size = common.AlignUp(offset, maxAlign)
	return l, nil
}

// ComputePacked lays out fields back to back in declaration order, each occupying only its
// meaningful bytes. This is the flattened layout used by unaligned storage buffers.
//
// Parameters:
//   - fields: the ordered field declarations
//
// Returns:
//   - StructLayout: the placed fields and total size
//   - error: ErrInvalidName or ErrInvalidType for a bad declaration
func ComputePacked(fields []Field) (StructLayout, error) {
	types, err := resolveFields(fields)
	if err != nil {
		return StructLayout{}, err
	}

	l := StructLayout{Fields: make([]FieldLayout, len(fields)), Alignment: 4, Packed: true}
	offset := 0
	for i, t := range types {
		l.Fields[i] = FieldLayout{Name: fields[i].Name, Type: t, Offset: offset}
		offset += t.ByteSize()
	}
	l.Size = offset
	return l, nil
}

// StructSize returns the padded size in bytes of a struct with the given fields.
func StructSize(fields []Field) (int, error) {
	l, err := Compute(fields)
	return l.Size, err
}

// FieldOffsets returns the byte offset of every field of a struct with the given fields.
func FieldOffsets(fields []Field) (map[string]int, error) {
	l, err := Compute(fields)
	if err != nil {
		return nil, err
	}
	return l.Offsets(), nil
}
