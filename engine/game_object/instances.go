package game_object

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
)

// InstanceField returns the storage buffer field name of the model matrix for instance i,
// e.g. "instances[3].model".
func InstanceField(i int) string {
	return "instances[" + strconv.Itoa(i) + "].model"
}

// InstanceEntries returns one mat4x4<f32> entry per enabled object, in order.
//
// Parameters:
//   - objects: the objects to write; disabled objects are skipped
//
// Returns:
//   - []layout.Entry: the entries in buffer order
func InstanceEntries(objects []GameObject) []layout.Entry {
	entries := make([]layout.Entry, 0, len(objects))
	for _, obj := range objects {
		if !obj.Enabled() {
			continue
		}
		m := obj.ModelMatrix()
		entries = append(entries, layout.Entry{
			Name:  InstanceField(len(entries)),
			Type:  "mat4x4<f32>",
			Value: layout.Float32s(m[:]),
		})
	}
	return entries
}

// MarshalInstances concatenates the GPUModelData records of the enabled objects.
//
// Parameters:
//   - objects: the objects to marshal; disabled objects are skipped
//
// Returns:
//   - []byte: 64 bytes per enabled object
func MarshalInstances(objects []GameObject) []byte {
	var buf []byte
	for _, obj := range objects {
		if !obj.Enabled() {
			continue
		}
		d := GPUModelData{Model: obj.ModelMatrix()}
		buf = append(buf, d.Marshal()...)
	}
	return buf
}

// WriteInstances replaces the contents of s with one model matrix per enabled object. If any
// matrix is invalid s is left unchanged.
//
// Parameters:
//   - s: the storage buffer to fill
//   - objects: the objects to write
//
// Returns:
//   - error: a validation error for a non-finite transform
func WriteInstances(s buffer.StorageBuffer, objects []GameObject) error {
	entries := InstanceEntries(objects)
	if _, _, err := layout.PackUnaligned(entries); err != nil {
		return err
	}
	s.Clear()
	return s.SetMany(entries)
}
