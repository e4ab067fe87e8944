package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/buffertest"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformBufferMatchesMarshal(t *testing.T) {
	c := NewCamera(WithPosition(3, 4, 5), WithTarget(0, 1, 0), WithAspect(16.0/9.0))

	u, err := c.NewUniformBuffer()
	require.NoError(t, err)
	size, err := u.Size()
	require.NoError(t, err)
	assert.Equal(t, 80, size)

	g := c.Uniform()
	assert.Equal(t, 80, g.Size())
	data, err := u.Bytes()
	require.NoError(t, err)
	assert.Equal(t, g.Marshal(), data)

	dev := buffertest.NewDevice()
	require.NoError(t, u.Compile(dev))
	assert.Equal(t, c.Label()+" Uniform Buffer", dev.Created()[0].Desc.Label)
	assert.Equal(t, g.Marshal(), dev.Created()[0].Data)
}

func TestUniformSourceMatchesBufferLayout(t *testing.T) {
	c := NewCamera()
	u, err := c.NewUniformBuffer()
	require.NoError(t, err)

	src, err := u.WGSL("CameraUniform")
	require.NoError(t, err)
	assert.Equal(t, GPUCameraUniformSource, src)

	r, err := layout.ReflectWGSL(GPUCameraUniformSource, "CameraUniform")
	require.NoError(t, err)
	assert.Equal(t, 80, r.Size)
	off, ok := r.Offset(FieldCameraPosition)
	require.True(t, ok)
	assert.Equal(t, 64, off)
}

func TestWriteUniformsFollowsCamera(t *testing.T) {
	c := NewCamera()
	u, err := c.NewUniformBuffer()
	require.NoError(t, err)
	dev := buffertest.NewDevice()
	require.NoError(t, u.Compile(dev))

	c.SetPosition(-2, 0, 1)
	require.NoError(t, c.WriteUniforms(u))
	require.NoError(t, u.Update(dev))

	assert.Equal(t, 1, dev.CreateCount())
	v, ok := u.Get(FieldCameraPosition)
	require.True(t, ok)
	assert.Equal(t, layout.Vec(-2, 0, 1), v)

	g := c.Uniform()
	assert.Equal(t, g.Marshal(), dev.Created()[0].Data)
}

func TestViewMatrixMapsPositionToOrigin(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3), WithTarget(0, 0, 0))
	v := c.ViewMatrix()

	x := v[0]*1 + v[4]*2 + v[8]*3 + v[12]
	y := v[1]*1 + v[5]*2 + v[9]*3 + v[13]
	z := v[2]*1 + v[6]*2 + v[10]*3 + v[14]
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 0, z, 1e-5)
}

func TestLabels(t *testing.T) {
	a := NewCamera()
	b := NewCamera()
	assert.NotEqual(t, a.Label(), b.Label())
	assert.Equal(t, "main", NewCamera(WithLabel("main")).Label())
}
