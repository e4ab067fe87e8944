package game_object

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUModelDataSource is the WGSL declaration of the ModelData struct, one per instance.
// Matches GPUModelData layout exactly (64 bytes).
const GPUModelDataSource = `struct ModelData {
    model: mat4x4<f32>,
}
`

// GPUModelData is the GPU-aligned representation of a single per-instance model matrix.
// Size: 64 bytes (mat4x4<f32>).
type GPUModelData struct {
	Model [16]float32 // offset 0: column-major model-to-world matrix
}

// Size returns the size of the GPUModelData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	return buf
}
