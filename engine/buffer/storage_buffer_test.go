package buffer_test

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/buffertest"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageConcatenatesValues(t *testing.T) {
	s := buffer.NewStorageBuffer()
	require.NoError(t, s.Set("position", layout.Vec(1, 2, 3), "vec3"))
	require.NoError(t, s.Set("range", layout.Scalar(10), "f32"))
	require.NoError(t, s.Set("color", layout.Vec(1, 1, 1), "vec3"))
	assert.False(t, s.Aligned())

	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, 28, size)
	off, err := s.Offset("color")
	require.NoError(t, err)
	assert.Equal(t, 16, off)

	data, err := s.Bytes()
	require.NoError(t, err)
	assert.Equal(t, float32(10), f32At(data, 12))
}

func TestStorageAlignedLayout(t *testing.T) {
	s := buffer.NewStorageBuffer(buffer.WithAlignedLayout())
	require.NoError(t, s.Set("position", layout.Vec(1, 2, 3), "vec3"))
	require.NoError(t, s.Set("range", layout.Scalar(10), "f32"))
	assert.True(t, s.Aligned())

	off, err := s.Offset("range")
	require.NoError(t, err)
	assert.Equal(t, 16, off)
}

func TestStorageInitialSizing(t *testing.T) {
	cases := []struct {
		name    string
		options []buffer.StorageBufferOption
		values  int
		want    uint64
	}{
		{name: "empty uses minimum", want: buffer.DefaultMinStorageSize},
		{name: "rounded to 256", values: 80, want: 512},
		{name: "custom minimum", options: []buffer.StorageBufferOption{buffer.WithMinBufferSize(1024)}, values: 2, want: 1024},
		{name: "capacity hint", options: []buffer.StorageBufferOption{buffer.WithInitialCapacity(64, 10)}, values: 2, want: 768},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := buffer.NewStorageBuffer(c.options...)
			for i := 0; i < c.values; i++ {
				require.NoError(t, s.Set(fmt.Sprintf("v%d", i), layout.Scalar(float64(i)), "f32"))
			}
			dev := buffertest.NewDevice()
			require.NoError(t, s.Compile(dev))
			require.Equal(t, 1, dev.CreateCount())
			assert.Equal(t, c.want, dev.Created()[0].Desc.Size)
		})
	}
}

func TestStorageGrowthIsMonotonic(t *testing.T) {
	const factor = 2.0
	s := buffer.NewStorageBuffer(buffer.WithGrowthFactor(factor), buffer.WithStorageUsage(wgpu.BufferUsageVertex))
	dev := buffertest.NewDevice()
	require.NoError(t, s.Compile(dev))

	prev := s.Capacity()
	grew := 0
	for i := 0; i < 200; i++ {
		require.NoError(t, s.Set(fmt.Sprintf("light%d", i), layout.Vec(1, 2, 3, 4), "vec4"))
		require.NoError(t, s.Update(dev))

		required, err := s.Size()
		require.NoError(t, err)
		capacity := s.Capacity()
		assert.GreaterOrEqual(t, capacity, prev)
		assert.GreaterOrEqual(t, capacity, uint64(required))
		if capacity != prev {
			grew++
			assert.GreaterOrEqual(t, float64(capacity), factor*float64(required))
		}
		prev = capacity
	}

	assert.Equal(t, grew+1, dev.CreateCount())
	assert.Len(t, dev.Live(), 1)
	assert.Less(t, grew, 10, "growth must be amortized")

	last := dev.Live()[0]
	assert.NotZero(t, last.Desc.Usage&wgpu.BufferUsageStorage)
	assert.NotZero(t, last.Desc.Usage&wgpu.BufferUsageVertex)
	assert.Equal(t, float32(4), f32At(last.Data, 199*16+12))
}

func TestStorageCreateFailureKeepsHandle(t *testing.T) {
	s := buffer.NewStorageBuffer()
	dev := buffertest.NewDevice()
	require.NoError(t, s.Compile(dev))
	before, err := s.Buffer()
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, s.Set(fmt.Sprintf("v%d", i), layout.Vec(0, 0, 0, 0), "vec4"))
	}
	dev.FailCreate = true
	assert.ErrorIs(t, s.Update(dev), buffertest.ErrCreateFailed)

	after, err := s.Buffer()
	require.NoError(t, err)
	assert.Same(t, before, after)
	assert.Zero(t, dev.ReleaseCount())
}

func TestStorageLifecycle(t *testing.T) {
	s := buffer.NewStorageBuffer(buffer.WithStorageLabel("Lights"))
	assert.Equal(t, "Lights", s.Label())
	assert.ErrorIs(t, s.Update(buffertest.NewDevice()), buffer.ErrNotCompiled)

	dev := buffertest.NewDevice()
	require.NoError(t, s.Set("count", layout.Scalar(3), "u32"))
	require.NoError(t, s.Compile(dev))
	require.NoError(t, s.Compile(dev))
	assert.Equal(t, 1, dev.CreateCount())

	s.Destroy()
	assert.False(t, s.IsCompiled())
	_, err := s.Buffer()
	assert.ErrorIs(t, err, buffer.ErrNotCompiled)
	v, ok := s.Get("count")
	require.True(t, ok)
	assert.Equal(t, layout.Scalar(3), v)
}
