package game_object

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/buffertest"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
	"github.com/Carmen-Shannon/oxy-scene/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(n int) []GameObject {
	objs := make([]GameObject, n)
	for i := range objs {
		objs[i] = NewGameObject(
			WithID(uint64(i)),
			WithPosition(float32(i)*2, 0, 0),
			WithRotation(0, float32(i)*0.25, 0),
			WithScale(1, 1+float32(i), 1),
		)
	}
	return objs
}

func TestWriteInstancesMatchesMarshal(t *testing.T) {
	objs := row(4)
	objs[2].SetEnabled(false)

	s := buffer.NewStorageBuffer(buffer.WithStorageLabel("Instances"), buffer.WithInitialCapacity(64, 100))
	require.NoError(t, WriteInstances(s, objs))
	assert.Equal(t, 3, s.Len())

	data, err := s.Bytes()
	require.NoError(t, err)
	assert.Equal(t, MarshalInstances(objs), data)
	assert.Len(t, data, 3*(&GPUModelData{}).Size())

	off, err := s.Offset(InstanceField(2))
	require.NoError(t, err)
	assert.Equal(t, 128, off)

	dev := buffertest.NewDevice()
	require.NoError(t, s.Compile(dev))
	assert.Equal(t, uint64(6400), s.Capacity())
}

func TestWriteInstancesShrinksAndValidates(t *testing.T) {
	s := buffer.NewStorageBuffer()
	require.NoError(t, WriteInstances(s, row(5)))
	require.NoError(t, WriteInstances(s, row(2)))
	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, 128, size)

	bad := NewGameObject(WithScale(float32(math.NaN()), 1, 1))
	err = WriteInstances(s, []GameObject{bad})
	assert.ErrorIs(t, err, layout.ErrInvalidValue)
	assert.Equal(t, 2, s.Len())
}

func TestModelDataSourceMatchesLayout(t *testing.T) {
	r, err := layout.ReflectWGSL(GPUModelDataSource, "ModelData")
	require.NoError(t, err)
	assert.Equal(t, 64, r.Size)
}

func TestModelMatrixFollowsTransform(t *testing.T) {
	obj := NewGameObject(WithPosition(1, 2, 3))
	m := obj.ModelMatrix()
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{m[12], m[13], m[14]})
	assert.Equal(t, float32(1), m[0])

	obj.SetScale(2, 3, 4)
	m = obj.ModelMatrix()
	assert.Equal(t, float32(2), m[0])
	assert.Equal(t, float32(3), m[5])
	assert.Equal(t, float32(4), m[10])
}

func TestAdvanceAppliesRotationSpeed(t *testing.T) {
	obj := NewGameObject(WithRotationSpeed(0, 1, 0.5))
	obj.Advance(2)
	rx, ry, rz := obj.Rotation()
	assert.Equal(t, float32(0), rx)
	assert.Equal(t, float32(2), ry)
	assert.Equal(t, float32(1), rz)
}

func TestAttachedLightFollowsPosition(t *testing.T) {
	l := light.NewLight(light.LightTypePoint)
	obj := NewGameObject(WithPosition(1, 1, 1), WithLight(l))
	assert.Equal(t, [3]float32{1, 1, 1}, l.Position())

	obj.SetPosition(4, 5, 6)
	assert.Equal(t, [3]float32{4, 5, 6}, l.Position())

	other := light.NewLight(light.LightTypeSpot)
	obj.SetLight(other)
	assert.Equal(t, [3]float32{4, 5, 6}, other.Position())
	assert.Same(t, other, obj.Light())
}

func TestMeshAssignment(t *testing.T) {
	obj := NewGameObject()
	assert.Nil(t, obj.Mesh())
	assert.True(t, obj.Enabled())

	mesh := &geometry.MeshBuffers{Label: "Cube"}
	obj.SetMesh(mesh)
	assert.Same(t, mesh, obj.Mesh())
	assert.Same(t, mesh, NewGameObject(WithMesh(mesh)).Mesh())
}
