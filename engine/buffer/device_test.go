package buffer_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/buffertest"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWGPUDeviceWithoutDevice(t *testing.T) {
	d := buffer.NewWGPUDevice(nil)
	assert.Nil(t, d.Queue())

	_, err := d.CreateBuffer(nil)
	assert.ErrorIs(t, err, buffer.ErrNotReady)

	u := buffer.NewUniformBuffer()
	assert.ErrorIs(t, u.Compile(d), buffer.ErrInvalidDevice)
}

func TestTypedNilDevicesAreNotReady(t *testing.T) {
	var wd *buffer.WGPUDevice
	var td *buffertest.Device
	for _, d := range []buffer.Device{wd, td} {
		assert.Nil(t, d.Queue())
		_, err := d.CreateBuffer(nil)
		assert.ErrorIs(t, err, buffer.ErrNotReady)

		u := buffer.NewUniformBuffer()
		assert.ErrorIs(t, u.Compile(d), buffer.ErrNotReady)
		s := buffer.NewStorageBuffer()
		assert.ErrorIs(t, s.Compile(d), buffer.ErrNotReady)
	}
	wd.Release()
}

func TestLoggerRecordsLifecycle(t *testing.T) {
	var out bytes.Buffer
	buffer.SetLogger(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer buffer.SetLogger(nil)

	u := buffer.NewUniformBuffer(buffer.WithUniformLabel("Logged"))
	require.NoError(t, u.Set("a", layout.Scalar(1), "f32"))
	dev := buffertest.NewDevice()
	require.NoError(t, u.Compile(dev))
	require.NoError(t, u.Set("b", make(layout.Vector, 16), "mat4"))
	require.NoError(t, u.Update(dev))
	u.Destroy()

	logged := out.String()
	assert.Contains(t, logged, "buffer created")
	assert.Contains(t, logged, "buffer grown")
	assert.Contains(t, logged, "buffer destroyed")
	assert.Contains(t, logged, "label=Logged")
}

func TestSetLoggerNilSilences(t *testing.T) {
	buffer.SetLogger(nil)
	assert.False(t, buffer.Logger().Enabled(t.Context(), slog.LevelError))
}
