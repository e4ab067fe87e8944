// Package geometry builds interleaved vertex data from per-component arrays and uploads meshes
// through the buffer package's Device capability.
package geometry

import (
	"errors"
	"strconv"
)

var (
	// ErrDuplicateComponent is returned when a component appears twice in a vertex order.
	ErrDuplicateComponent = errors.New("duplicate vertex component")

	// ErrComponentCountMismatch is returned when a component's data does not cover every vertex.
	ErrComponentCountMismatch = errors.New("vertex component count mismatch")

	// ErrUnknownComponent is returned for a component kind that is not part of the vertex order.
	ErrUnknownComponent = errors.New("unknown vertex component")

	// ErrVertexOutOfRange is returned for a vertex index outside the interleaved records.
	ErrVertexOutOfRange = errors.New("vertex index out of range")
)

// VertexComponent identifies one per-vertex attribute.
type VertexComponent int

const (
	// ComponentPosition is the model-space position, three floats.
	ComponentPosition VertexComponent = iota
	// ComponentNormal is the unit surface normal, three floats.
	ComponentNormal
	// ComponentUV is the texture coordinate, two floats.
	ComponentUV
	// ComponentColor is the RGBA vertex color, four floats.
	ComponentColor
)

func (c VertexComponent) String() string {
	switch c {
	case ComponentPosition:
		return "position"
	case ComponentNormal:
		return "normal"
	case ComponentUV:
		return "uv"
	case ComponentColor:
		return "color"
	}
	return "VertexComponent(" + strconv.Itoa(int(c)) + ")"
}

// Size returns the number of floats the component occupies per vertex, or 0 for an unknown kind.
func (c VertexComponent) Size() int {
	switch c {
	case ComponentPosition, ComponentNormal:
		return 3
	case ComponentUV:
		return 2
	case ComponentColor:
		return 4
	}
	return 0
}
