package geometry

import "cogentcore.org/core/math32"

// ComputeNormals returns one unit normal per vertex, the normalized sum of the normals of every
// triangle the vertex belongs to. With nil indices, positions are read as a plain triangle list.
// Triangles are counter-clockwise when seen from the side the normal points to.
//
// Parameters:
//   - positions: three floats per vertex
//   - indices: triangle indices into positions, or nil
//
// Returns:
//   - []float32: three floats per vertex
func ComputeNormals(positions []float32, indices []uint32) []float32 {
	vertexCount := len(positions) / 3
	if indices == nil {
		indices = make([]uint32, vertexCount-vertexCount%3)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	at := func(i uint32) math32.Vector3 {
		return math32.Vec3(positions[i*3], positions[i*3+1], positions[i*3+2])
	}

	sums := make([]math32.Vector3, vertexCount)
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		if int(a) >= vertexCount || int(b) >= vertexCount || int(c) >= vertexCount {
			continue
		}
		n := math32.Normal(at(a), at(b), at(c))
		sums[a] = sums[a].Add(n)
		sums[b] = sums[b].Add(n)
		sums[c] = sums[c].Add(n)
	}

	out := make([]float32, vertexCount*3)
	for i, s := range sums {
		if lenSq := s.LengthSquared(); lenSq > 0 {
			s = s.MulScalar(1 / math32.Sqrt(lenSq))
		}
		out[i*3], out[i*3+1], out[i*3+2] = s.X, s.Y, s.Z
	}
	return out
}
