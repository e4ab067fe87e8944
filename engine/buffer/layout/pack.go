package layout

import "fmt"

// Entry is a named, typed value awaiting packing.
type Entry struct {
	Name  string
	Type  string
	Value Value
}

func entryFields(entries []Entry) []Field {
	fields := make([]Field, len(entries))
	for i, e := range entries {
		fields[i] = Field{Name: e.Name, Type: e.Type}
	}
	return fields
}

// Pack computes the aligned layout of entries and encodes every value at its offset.
//
// Parameters:
//   - entries: the ordered named values
//
// Returns:
//   - []byte: a region of exactly layout.Size bytes, zero in all padding
//   - StructLayout: the layout the bytes follow
//   - error: any layout or encoding error, ErrInvalidValue for a non-finite or f32-overflowing value
func Pack(entries []Entry) ([]byte, StructLayout, error) {
	l, err := Compute(entryFields(entries))
	if err != nil {
		return nil, StructLayout{}, err
	}
	data, err := encode(entries, l)
	return data, l, err
}

// PackUnaligned concatenates the flattened entries in order with no padding between them.
//
// Parameters:
//   - entries: the ordered named values
//
// Returns:
//   - []byte: a region of exactly layout.Size bytes
//   - StructLayout: the packed layout the bytes follow
//   - error: any layout or encoding error, ErrInvalidValue for a non-finite or f32-overflowing value
func PackUnaligned(entries []Entry) ([]byte, StructLayout, error) {
	l, err := ComputePacked(entryFields(entries))
	if err != nil {
		return nil, StructLayout{}, err
	}
	data, err := encode(entries, l)
	return data, l, err
}

func encode(entries []Entry, l StructLayout) ([]byte, error) {
	data := make([]byte, l.Size)
	for i, f := range l.Fields {
		if err := ValidateValue(entries[i].Value); err != nil {
			return nil, fmt.Errorf("pack %q: %w", f.Name, err)
		}
		if err := validateRange(entries[i].Value, f.Type); err != nil {
			return nil, fmt.Errorf("pack %q: %w", f.Name, err)
		}
		if err := writeLanes(data, f.Offset, entries[i].Value, f.Type, l.Packed); err != nil {
			return nil, fmt.Errorf("pack %q: %w", f.Name, err)
		}
	}
	return data, nil
}

// Read decodes the named field from a region produced with this layout.
//
// Parameters:
//   - data: the packed bytes
//   - name: the field to decode
//
// Returns:
//   - Value: the decoded value
//   - error: ErrUnknownField or ErrOutOfRange
func (l StructLayout) Read(data []byte, name string) (Value, error) {
	for _, f := range l.Fields {
		if f.Name == name {
			return readLanes(data, f.Offset, f.Type, l.Packed)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
}
