package geometry

import (
	"encoding/binary"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer"
	"github.com/cogentcore/webgpu/wgpu"
)

// MeshBuffers holds the GPU vertex and index buffers of an uploaded mesh.
type MeshBuffers struct {
	Label       string
	Vertex      buffer.Handle
	Index       buffer.Handle
	IndexCount  int
	VertexCount int
	Layout      wgpu.VertexBufferLayout
}

// UploadMesh creates a vertex buffer holding the interleaved records and, when indices are given,
// an index buffer of uint32 indices. Nothing is left allocated if any step fails.
//
// Parameters:
//   - device: the device to allocate on
//   - label: the debug label prefix
//   - vertices: the interleaved vertex data
//   - indices: triangle indices, or nil for non-indexed drawing
//
// Returns:
//   - *MeshBuffers: the uploaded buffers
//   - error: ErrNotReady for a missing device, or a device error
func UploadMesh(device buffer.Device, label string, vertices Interleaved, indices []uint32) (*MeshBuffers, error) {
	if device == nil {
		return nil, buffer.ErrNotReady
	}
	q := device.Queue()
	if q == nil {
		return nil, buffer.ErrInvalidDevice
	}

	m := &MeshBuffers{
		Label:       label,
		IndexCount:  len(indices),
		VertexCount: vertices.VertexCount,
		Layout:      vertices.VertexBufferLayout(),
	}

	if vertexData := vertices.Bytes(); len(vertexData) > 0 {
		buf, err := upload(device, q, label+" Vertex Buffer", wgpu.BufferUsageVertex, vertexData)
		if err != nil {
			return nil, err
		}
		m.Vertex = buf
	}

	if len(indices) > 0 {
		indexData := make([]byte, len(indices)*4)
		for i, idx := range indices {
			binary.LittleEndian.PutUint32(indexData[i*4:], idx)
		}
		buf, err := upload(device, q, label+" Index Buffer", wgpu.BufferUsageIndex, indexData)
		if err != nil {
			m.Release()
			return nil, err
		}
		m.Index = buf
	}

	buffer.Logger().Debug("mesh uploaded", "label", label, "vertices", m.VertexCount, "indices", m.IndexCount)
	return m, nil
}

func upload(device buffer.Device, q buffer.Queue, label string, usage wgpu.BufferUsage, data []byte) (buffer.Handle, error) {
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             uint64(len(data)),
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := q.WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}

// Release releases both buffers. Calling it again does nothing.
func (m *MeshBuffers) Release() {
	if m.Vertex != nil {
		m.Vertex.Release()
		m.Vertex = nil
	}
	if m.Index != nil {
		m.Index.Release()
		m.Index = nil
	}
}
