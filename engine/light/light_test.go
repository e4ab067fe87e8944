package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/buffertest"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneLights() []Light {
	return []Light{
		NewLight(LightTypeDirectional, WithDirection(1, -1, 0), WithColor(1, 0.9, 0.8), WithCastsShadows(true)),
		NewLight(LightTypePoint, WithPosition(0, 3, 0), WithRange(25), WithEnabled(false)),
		NewLight(LightTypeSpot, WithPosition(2, 4, -1), WithDirection(0, -1, 0), WithSpotCone(15, 30), WithIntensity(4)),
	}
}

func u32At(data []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(data[off:])
}

func TestWriteStorageMatchesMarshal(t *testing.T) {
	lights := sceneLights()
	ambient := [3]float32{0.1, 0.1, 0.15}
	want := marshalLightBuffer(lights, ambient)
	require.Len(t, want, 16+2*64)

	s := buffer.NewStorageBuffer()
	require.NoError(t, WriteStorage(s, ambient, lights))
	data, err := s.Bytes()
	require.NoError(t, err)
	assert.Equal(t, want, data)

	off, err := s.Offset(FieldLightCount)
	require.NoError(t, err)
	assert.Equal(t, 12, off)
	off, err = s.Offset(LightField(1, "color"))
	require.NoError(t, err)
	assert.Equal(t, 16+64+16, off)
}

func TestWriteStorageRejectsAlignedBuffer(t *testing.T) {
	s := buffer.NewStorageBuffer(buffer.WithAlignedLayout())
	require.NoError(t, s.Set("stale", layout.Scalar(1), "f32"))

	err := WriteStorage(s, [3]float32{0.1, 0.1, 0.1}, []Light{NewLight(LightTypePoint)})
	assert.ErrorIs(t, err, ErrAlignedStorage)
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get(FieldLightCount)
	assert.False(t, ok)
}

func TestWriteStorageUploads(t *testing.T) {
	s := buffer.NewStorageBuffer(buffer.WithStorageLabel("Lights"))
	require.NoError(t, WriteStorage(s, [3]float32{}, sceneLights()))

	dev := buffertest.NewDevice()
	require.NoError(t, s.Compile(dev))
	assert.Equal(t, uint64(256), s.Capacity())

	created := dev.Created()[0]
	assert.Equal(t, "Lights", created.Desc.Label)
	assert.Equal(t, uint32(2), u32At(created.Data, 12))
	assert.Equal(t, uint32(1), u32At(created.Data, 16+56))
	assert.Equal(t, uint32(LightTypeSpot), u32At(created.Data, 16+64+12))
}

func TestWriteStorageReplacesPreviousLights(t *testing.T) {
	s := buffer.NewStorageBuffer()
	lights := sceneLights()
	require.NoError(t, WriteStorage(s, [3]float32{}, lights))
	assert.Equal(t, 2+2*10, s.Len())

	require.NoError(t, WriteStorage(s, [3]float32{}, lights[:1]))
	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, 80, size)
	_, ok := s.Get(LightField(1, "position"))
	assert.False(t, ok)
}

func TestWriteStorageRejectsNonFinite(t *testing.T) {
	s := buffer.NewStorageBuffer()
	require.NoError(t, WriteStorage(s, [3]float32{}, sceneLights()))
	before, err := s.Bytes()
	require.NoError(t, err)

	bad := NewLight(LightTypePoint, WithIntensity(float32(math.Inf(1))))
	err = WriteStorage(s, [3]float32{}, []Light{bad})
	assert.ErrorIs(t, err, layout.ErrInvalidValue)

	after, err := s.Bytes()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStorageEntriesCapsLights(t *testing.T) {
	lights := make([]Light, MaxGPULights+6)
	for i := range lights {
		lights[i] = NewLight(LightTypePoint, WithPosition(float32(i), 0, 0))
	}
	entries := StorageEntries([3]float32{}, lights)
	assert.Len(t, entries, 2+MaxGPULights*10)
	assert.Equal(t, layout.Scalar(MaxGPULights), entries[1].Value)

	data, _, err := layout.PackUnaligned(entries)
	require.NoError(t, err)
	assert.Equal(t, marshalLightBuffer(lights, [3]float32{}), data)
}

func TestSourcesMatchRecordSizes(t *testing.T) {
	cases := []struct {
		source  string
		name    string
		size    int
		field   string
		offset  int
		gpuSize int
	}{
		{GPULightSource, "Light", 64, "casts_shadows", 56, (&GPULight{}).Size()},
		{GPULightHeaderSource, "LightHeader", 16, "light_count", 12, (&GPULightHeader{}).Size()},
		{GPUShadowDataSource, "ShadowData", 80, "normal_bias", 76, (&GPUShadowData{}).Size()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := layout.ReflectWGSL(c.source, c.name)
			require.NoError(t, err)
			assert.Equal(t, c.size, r.Size)
			assert.Equal(t, c.size, c.gpuSize)
			off, ok := r.Offset(c.field)
			require.True(t, ok)
			assert.Equal(t, c.offset, off)
		})
	}
}

func TestShadowUniformsMatchMarshal(t *testing.T) {
	sun := NewLight(LightTypeDirectional, WithDirection(0.3, -1, 0.2))
	d := NewShadowData(sun, [3]float32{0, 1, 5})

	u := buffer.NewUniformBuffer(buffer.WithUniformLabel("Shadow Uniform Buffer"))
	require.NoError(t, WriteShadowUniforms(u, d))
	data, err := u.Bytes()
	require.NoError(t, err)
	assert.Equal(t, d.marshal(), data)

	src, err := u.WGSL("ShadowData")
	require.NoError(t, err)
	assert.Equal(t, GPUShadowDataSource, src)
}

func TestNewShadowDataDefaults(t *testing.T) {
	d := NewShadowData(NewLight(LightTypeDirectional), [3]float32{})
	assert.Equal(t, DefaultShadowBias, d.Bias)
	assert.InDelta(t, 1.0/ShadowMapResolution, d.TexelSize[0], 1e-9)
	assert.InDelta(t, 2*DefaultShadowHalfExtent/ShadowMapResolution*DefaultShadowNormalBiasScale, d.NormalBias, 1e-6)
	assert.NotEqual(t, [16]float32{}, d.LightVP)
}

func TestLightDefaultsAndSetters(t *testing.T) {
	l := NewLight(LightTypeSpot)
	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())
	assert.InDelta(t, 0.9063, l.InnerCone(), 1e-4)
	assert.InDelta(t, 0.8192, l.OuterCone(), 1e-4)
	assert.True(t, l.Enabled())

	l.SetDirection(0, 0, 2)
	assert.Equal(t, [3]float32{0, 0, 1}, l.Direction())
	l.SetDirection(0, 0, 0)
	assert.Equal(t, [3]float32{}, l.Direction())

	l.SetCastsShadows(true)
	assert.Equal(t, uint32(1), l.GPU().CastsShadows)
	assert.Equal(t, uint32(LightTypeSpot), l.GPU().LightType)
}

func TestLightTypeString(t *testing.T) {
	assert.Equal(t, "directional", LightTypeDirectional.String())
	assert.Equal(t, "point", LightTypePoint.String())
	assert.Equal(t, "spot", LightTypeSpot.String())
	assert.Equal(t, "LightType(9)", LightType(9).String())
}
