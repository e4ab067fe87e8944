package geometry

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// ComponentData holds one flat float array per component, plus optional triangle indices.
// Each array holds Size() floats per vertex.
type ComponentData struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Colors    []float32
	Indices   []uint32
}

func (d *ComponentData) slice(c VertexComponent) []float32 {
	switch c {
	case ComponentPosition:
		return d.Positions
	case ComponentNormal:
		return d.Normals
	case ComponentUV:
		return d.UVs
	case ComponentColor:
		return d.Colors
	}
	return nil
}

// Interleaved is vertex data with the requested components packed side by side, one record per
// vertex and no padding between components.
type Interleaved struct {
	// Data is the flat float buffer, VertexCount*Stride long.
	Data []float32
	// Stride is the number of floats in one vertex record.
	Stride int
	// Offsets maps each component to its byte offset within a record.
	Offsets map[VertexComponent]int
	// Order is the component order the records follow.
	Order []VertexComponent
	// VertexCount is the number of records.
	VertexCount int
}

// BuildInterleaved packs vertexCount vertices from data in the given component order.
// Normals are computed from positions and indices when the order asks for them and none are
// supplied; every other requested component must carry exactly vertexCount entries.
//
// Parameters:
//   - vertexCount: the number of vertices
//   - data: the per-component source arrays
//   - order: the components to include, in record order
//
// Returns:
//   - Interleaved: the packed vertex data
//   - error: ErrDuplicateComponent, ErrUnknownComponent or ErrComponentCountMismatch
func BuildInterleaved(vertexCount int, data ComponentData, order ...VertexComponent) (Interleaved, error) {
	out := Interleaved{
		Offsets:     make(map[VertexComponent]int, len(order)),
		Order:       append([]VertexComponent(nil), order...),
		VertexCount: vertexCount,
	}

	for _, c := range order {
		if c.Size() == 0 {
			return Interleaved{}, fmt.Errorf("%w: %s", ErrUnknownComponent, c)
		}
		if _, dup := out.Offsets[c]; dup {
			return Interleaved{}, fmt.Errorf("%w: %s", ErrDuplicateComponent, c)
		}
		out.Offsets[c] = out.Stride * 4
		out.Stride += c.Size()
	}

	if _, ok := out.Offsets[ComponentNormal]; ok && len(data.Normals) == 0 && len(data.Positions) == vertexCount*3 {
		data.Normals = ComputeNormals(data.Positions, data.Indices)
	}

	sources := make([][]float32, len(order))
	for i, c := range order {
		src := data.slice(c)
		if len(src) != vertexCount*c.Size() {
			return Interleaved{}, fmt.Errorf("%w: %s has %d floats, want %d", ErrComponentCountMismatch, c, len(src), vertexCount*c.Size())
		}
		sources[i] = src
	}

	out.Data = make([]float32, vertexCount*out.Stride)
	for v := 0; v < vertexCount; v++ {
		base := v * out.Stride
		for i, c := range order {
			n := c.Size()
			copy(out.Data[base+out.Offsets[c]/4:], sources[i][v*n:(v+1)*n])
		}
	}
	return out, nil
}

// ByteStride returns the size of one vertex record in bytes.
func (in Interleaved) ByteStride() int {
	return in.Stride * 4
}

// Offset returns the byte offset of component c within a record.
//
// Parameters:
//   - c: the component
//
// Returns:
//   - int: the byte offset
//   - error: ErrUnknownComponent if c is not part of the order
func (in Interleaved) Offset(c VertexComponent) (int, error) {
	off, ok := in.Offsets[c]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownComponent, c)
	}
	return off, nil
}

// Vertex returns the floats of component c for vertex i.
//
// Parameters:
//   - i: the vertex index
//   - c: the component
//
// Returns:
//   - []float32: a view into Data holding c.Size() floats
//   - error: ErrUnknownComponent if c is not part of the order, ErrVertexOutOfRange if i is not
//     a vertex of in
func (in Interleaved) Vertex(i int, c VertexComponent) ([]float32, error) {
	off, err := in.Offset(c)
	if err != nil {
		return nil, err
	}
	start := i*in.Stride + off/4
	if i < 0 || i >= in.VertexCount || start+c.Size() > len(in.Data) {
		return nil, fmt.Errorf("%w: %d of %d", ErrVertexOutOfRange, i, in.VertexCount)
	}
	return in.Data[start : start+c.Size()], nil
}

// Bytes returns Data as little-endian float32 bytes ready for upload.
func (in Interleaved) Bytes() []byte {
	buf := make([]byte, len(in.Data)*4)
	for i, f := range in.Data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

var componentFormats = map[VertexComponent]wgpu.VertexFormat{
	ComponentPosition: wgpu.VertexFormatFloat32x3,
	ComponentNormal:   wgpu.VertexFormatFloat32x3,
	ComponentUV:       wgpu.VertexFormatFloat32x2,
	ComponentColor:    wgpu.VertexFormatFloat32x4,
}

// VertexBufferLayout describes the records to a render pipeline. Shader locations follow the
// component order starting at 0.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex buffer layout
func (in Interleaved) VertexBufferLayout() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 0, len(in.Order))
	for i, c := range in.Order {
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         componentFormats[c],
			Offset:         uint64(in.Offsets[c]),
			ShaderLocation: uint32(i),
		})
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(in.ByteStride()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}
