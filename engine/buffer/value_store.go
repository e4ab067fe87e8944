package buffer

import (
	"fmt"
	"slices"

	"cogentcore.org/core/base/ordmap"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
)

// storedValue is a validated value together with its resolved type.
type storedValue struct {
	value layout.Value
	typ   layout.TypeInfo
}

// valueStore is the insertion-ordered set of named values behind a buffer. The computed layout is
// cached until the next mutation.
type valueStore struct {
	values *ordmap.Map[string, storedValue]
	packed bool
	cached *layout.StructLayout
}

func newValueStore(packed bool) valueStore {
	return valueStore{values: ordmap.New[string, storedValue](), packed: packed}
}

func cloneValue(v layout.Value) layout.Value {
	if vec, ok := v.(layout.Vector); ok {
		return slices.Clone(vec)
	}
	return v
}

func validateEntry(name string, v layout.Value, typeName string) (storedValue, error) {
	if name == "" {
		return storedValue{}, fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	t, err := layout.Validate(v, typeName)
	if err != nil {
		return storedValue{}, fmt.Errorf("set %q: %w", name, err)
	}
	return storedValue{value: cloneValue(v), typ: t}, nil
}

func (s *valueStore) set(name string, v layout.Value, typeName string) error {
	sv, err := validateEntry(name, v, typeName)
	if err != nil {
		return err
	}
	s.values.Add(name, sv)
	s.cached = nil
	return nil
}

// setMany validates every entry before storing any of them.
func (s *valueStore) setMany(entries []layout.Entry) error {
	validated := make([]storedValue, len(entries))
	for i, e := range entries {
		sv, err := validateEntry(e.Name, e.Value, e.Type)
		if err != nil {
			return err
		}
		validated[i] = sv
	}
	for i, e := range entries {
		s.values.Add(e.Name, validated[i])
	}
	s.cached = nil
	return nil
}

func (s *valueStore) get(name string) (layout.Value, bool) {
	sv, ok := s.values.ValueByKeyTry(name)
	if !ok {
		return nil, false
	}
	return cloneValue(sv.value), true
}

func (s *valueStore) all() []layout.Entry {
	out := make([]layout.Entry, 0, s.values.Len())
	for _, kv := range s.values.Order {
		out = append(out, layout.Entry{Name: kv.Key, Type: kv.Value.typ.Name, Value: cloneValue(kv.Value.value)})
	}
	return out
}

func (s *valueStore) remove(name string) bool {
	if !s.values.DeleteKey(name) {
		return false
	}
	s.cached = nil
	return true
}

func (s *valueStore) clear() {
	s.values.Reset()
	s.cached = nil
}

func (s *valueStore) layout() (layout.StructLayout, error) {
	if s.cached != nil {
		return *s.cached, nil
	}

	fields := make([]layout.Field, 0, s.values.Len())
	for _, kv := range s.values.Order {
		fields = append(fields, layout.Field{Name: kv.Key, Type: kv.Value.typ.Name})
	}

	var l layout.StructLayout
	var err error
	if s.packed {
		l, err = layout.ComputePacked(fields)
	} else {
		l, err = layout.Compute(fields)
	}
	if err != nil {
		return layout.StructLayout{}, err
	}
	s.cached = &l
	return l, nil
}

// pack encodes the live values into a fresh byte region following the current layout.
func (s *valueStore) pack() ([]byte, error) {
	l, err := s.layout()
	if err != nil {
		return nil, err
	}

	data := make([]byte, l.Size)
	for i, f := range l.Fields {
		v := s.values.Order[i].Value.value
		if l.Packed {
			err = layout.WritePackedValue(data, f.Offset, v, f.Type)
		} else {
			err = layout.WriteValue(data, f.Offset, v, f.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("pack %q: %w", f.Name, err)
		}
	}
	return data, nil
}
