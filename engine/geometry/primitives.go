package geometry

// face is one quad of a primitive: four corners counter-clockwise seen from outside, and the
// outward normal.
type face struct {
	corners [4][3]float32
	normal  [3]float32
}

var quadUVs = [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

func appendQuads(faces []face, colors [][4]float32) ComponentData {
	var d ComponentData
	for fi, f := range faces {
		base := uint32(len(d.Positions) / 3)
		for ci, p := range f.corners {
			d.Positions = append(d.Positions, p[:]...)
			d.Normals = append(d.Normals, f.normal[:]...)
			d.UVs = append(d.UVs, quadUVs[ci][:]...)
			c := [4]float32{1, 1, 1, 1}
			if len(colors) > 0 {
				c = colors[fi%len(colors)]
			}
			d.Colors = append(d.Colors, c[:]...)
		}
		d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return d
}

// Box returns a box centred on the origin with 24 vertices (4 per face) and 36 indices.
// Faces are ordered +X, -X, +Y, -Y, +Z, -Z; colors, if given, are applied per face cyclically.
//
// Parameters:
//   - width: the extent along X
//   - height: the extent along Y
//   - depth: the extent along Z
//   - colors: optional per-face RGBA colors
//
// Returns:
//   - ComponentData: positions, normals, UVs, colors and indices
func Box(width, height, depth float32, colors ...[4]float32) ComponentData {
	x, y, z := width/2, height/2, depth/2
	return appendQuads([]face{
		{corners: [4][3]float32{{x, -y, z}, {x, -y, -z}, {x, y, -z}, {x, y, z}}, normal: [3]float32{1, 0, 0}},
		{corners: [4][3]float32{{-x, -y, -z}, {-x, -y, z}, {-x, y, z}, {-x, y, -z}}, normal: [3]float32{-1, 0, 0}},
		{corners: [4][3]float32{{-x, y, z}, {x, y, z}, {x, y, -z}, {-x, y, -z}}, normal: [3]float32{0, 1, 0}},
		{corners: [4][3]float32{{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}}, normal: [3]float32{0, -1, 0}},
		{corners: [4][3]float32{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}, normal: [3]float32{0, 0, 1}},
		{corners: [4][3]float32{{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}}, normal: [3]float32{0, 0, -1}},
	}, colors)
}

// Plane returns a single quad in the XZ plane facing +Y, centred on the origin.
//
// Parameters:
//   - width: the extent along X
//   - depth: the extent along Z
//
// Returns:
//   - ComponentData: 4 vertices and 6 indices
func Plane(width, depth float32) ComponentData {
	x, z := width/2, depth/2
	return appendQuads([]face{
		{corners: [4][3]float32{{-x, 0, z}, {x, 0, z}, {x, 0, -z}, {-x, 0, -z}}, normal: [3]float32{0, 1, 0}},
	}, nil)
}

// Triangle returns a single triangle in the XY plane facing +Z with no normals, so normals are
// derived when it is interleaved.
//
// Returns:
//   - ComponentData: 3 vertices with positions, UVs and colors
func Triangle() ComponentData {
	return ComponentData{
		Positions: []float32{-0.5, -0.5, 0, 0.5, -0.5, 0, 0, 0.5, 0},
		UVs:       []float32{0, 1, 1, 1, 0.5, 0},
		Colors:    []float32{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1},
		Indices:   []uint32{0, 1, 2},
	}
}

// VertexCount returns the number of vertices described by the positions.
func (d ComponentData) VertexCount() int {
	return len(d.Positions) / 3
}
