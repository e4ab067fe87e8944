package buffer_test

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/buffertest"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchFlushCompilesThenUpdates(t *testing.T) {
	b := buffer.NewBatch(buffer.WithWorkers(4))
	defer b.Close()

	uniforms := make([]buffer.UniformBuffer, 16)
	for i := range uniforms {
		uniforms[i] = buffer.NewUniformBuffer(buffer.WithUniformLabel(fmt.Sprintf("Object %d", i)))
		require.NoError(t, uniforms[i].Set("index", layout.Scalar(float64(i)), "u32"))
		b.Add(uniforms[i])
	}
	lights := buffer.NewStorageBuffer()
	require.NoError(t, lights.Set("count", layout.Scalar(0), "u32"))
	b.Add(lights, nil)
	assert.Equal(t, 17, b.Len())

	dev := buffertest.NewDevice()
	require.NoError(t, b.Flush(dev))
	assert.Equal(t, 17, dev.CreateCount())
	for _, u := range uniforms {
		assert.True(t, u.IsCompiled())
	}

	require.NoError(t, uniforms[3].Set("index", layout.Scalar(42), "u32"))
	require.NoError(t, b.Flush(dev))
	assert.Equal(t, 17, dev.CreateCount(), "second flush updates in place")

	h, err := uniforms[3].Buffer()
	require.NoError(t, err)
	assert.Equal(t, byte(42), h.(*buffertest.Buffer).Data[0])
}

func TestBatchStageOrder(t *testing.T) {
	b := buffer.NewBatch(buffer.WithWorkers(2))
	defer b.Close()

	a := buffer.NewUniformBuffer()
	require.NoError(t, a.Set("x", layout.Scalar(1), "f32"))
	c := buffer.NewUniformBuffer()
	require.NoError(t, c.Set("x", layout.Vec(1, 2, 3, 4), "vec4"))
	b.Add(a, c)

	writes, err := b.Stage()
	require.NoError(t, err)
	require.Len(t, writes, 2)
	assert.Same(t, a, writes[0].Buffer)
	assert.Len(t, writes[0].Data, 4)
	assert.Len(t, writes[1].Data, 16)
	assert.False(t, a.IsCompiled(), "staging does not touch the device")

	assert.True(t, b.Remove(a))
	assert.False(t, b.Remove(a))
	assert.Equal(t, 1, b.Len())
}

func TestBatchFlushRequiresDevice(t *testing.T) {
	b := buffer.NewBatch()
	defer b.Close()
	b.Add(buffer.NewUniformBuffer())

	assert.ErrorIs(t, b.Flush(nil), buffer.ErrNotReady)
}

func TestBatchFlushReportsFailures(t *testing.T) {
	b := buffer.NewBatch(buffer.WithWorkers(1))
	defer b.Close()
	u := buffer.NewUniformBuffer()
	b.Add(u)

	dev := buffertest.NewDevice()
	dev.FailCreate = true
	assert.ErrorIs(t, b.Flush(dev), buffertest.ErrCreateFailed)
	assert.False(t, u.IsCompiled())
}

func TestBatchCommitHookSeesSuccessfulWrites(t *testing.T) {
	var labels []string
	var total int
	b := buffer.NewBatch(buffer.WithWorkers(2), buffer.WithCommitHook(func(w buffer.Write) {
		labels = append(labels, w.Buffer.Label())
		total += len(w.Data)
	}))
	defer b.Close()

	u := buffer.NewUniformBuffer(buffer.WithUniformLabel("Params"))
	require.NoError(t, u.Set("tint", layout.Vec(1, 0, 0, 1), "vec4"))
	s := buffer.NewStorageBuffer(buffer.WithStorageLabel("Weights"))
	require.NoError(t, s.Set("w", layout.Vec(0.5, 0.5), "vec2"))
	b.Add(u, s)

	require.NoError(t, b.Flush(buffertest.NewDevice()))
	assert.Equal(t, []string{"Params", "Weights"}, labels)
	assert.Equal(t, 24, total)

	labels = nil
	dev := buffertest.NewDevice()
	dev.FailCreate = true
	u2 := buffer.NewUniformBuffer()
	b.Remove(u)
	b.Remove(s)
	b.Add(u2)
	assert.Error(t, b.Flush(dev))
	assert.Empty(t, labels)
}
