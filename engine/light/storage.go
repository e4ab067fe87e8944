package light

import (
	"errors"
	"strconv"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
)

// ErrAlignedStorage is returned by WriteStorage for a storage buffer using the aligned layout.
var ErrAlignedStorage = errors.New("light storage requires a packed buffer")

// Header field names written by WriteStorage.
const (
	FieldAmbientColor = "ambient_color"
	FieldLightCount   = "light_count"
)

// Shadow uniform field names written by WriteShadowUniforms, in declaration order.
const (
	FieldLightVP    = "light_vp"
	FieldTexelSize  = "texel_size"
	FieldBias       = "bias"
	FieldNormalBias = "normal_bias"
)

// LightField returns the storage buffer field name of member for the light at index i,
// e.g. "lights[2].color".
func LightField(i int, member string) string {
	return "lights[" + strconv.Itoa(i) + "]." + member
}

func lightEntries(i int, g GPULight) []layout.Entry {
	return []layout.Entry{
		{Name: LightField(i, "position"), Type: "vec3<f32>", Value: layout.Float32s(g.Position[:])},
		{Name: LightField(i, "light_type"), Type: "u32", Value: layout.Scalar(g.LightType)},
		{Name: LightField(i, "color"), Type: "vec3<f32>", Value: layout.Float32s(g.Color[:])},
		{Name: LightField(i, "intensity"), Type: "f32", Value: layout.Scalar(g.Intensity)},
		{Name: LightField(i, "direction"), Type: "vec3<f32>", Value: layout.Float32s(g.Direction[:])},
		{Name: LightField(i, "light_range"), Type: "f32", Value: layout.Scalar(g.LightRange)},
		{Name: LightField(i, "inner_cone"), Type: "f32", Value: layout.Scalar(g.InnerCone)},
		{Name: LightField(i, "outer_cone"), Type: "f32", Value: layout.Scalar(g.OuterCone)},
		{Name: LightField(i, "casts_shadows"), Type: "u32", Value: layout.Scalar(g.CastsShadows)},
		{Name: LightField(i, "_pad0"), Type: "u32", Value: layout.Scalar(0)},
	}
}

// StorageEntries returns the named entries of the light buffer: the LightHeader followed by one
// Light record per enabled light, capped at MaxGPULights.
//
// Parameters:
//   - ambient: the scene ambient color as RGB
//   - lights: the lights to write; disabled lights are skipped
//
// Returns:
//   - []layout.Entry: the entries in buffer order
func StorageEntries(ambient [3]float32, lights []Light) []layout.Entry {
	enabled := activeLights(lights)
	entries := make([]layout.Entry, 0, 2+len(enabled)*10)
	entries = append(entries,
		layout.Entry{Name: FieldAmbientColor, Type: "vec3<f32>", Value: layout.Float32s(ambient[:])},
		layout.Entry{Name: FieldLightCount, Type: "u32", Value: layout.Scalar(len(enabled))},
	)
	for i, l := range enabled {
		entries = append(entries, lightEntries(i, l.GPU())...)
	}
	return entries
}

// WriteStorage replaces the contents of s with the light buffer for ambient and lights. The
// WGSL structs pack a 4-byte member after every vec3, so only a packed buffer reproduces their
// offsets and s must not use the aligned layout. If any value is invalid s is left unchanged.
//
// Parameters:
//   - s: the storage buffer to fill
//   - ambient: the scene ambient color as RGB
//   - lights: the lights to write; disabled lights are skipped
//
// Returns:
//   - error: ErrAlignedStorage for an aligned buffer, or a validation error for a non-finite
//     light value
func WriteStorage(s buffer.StorageBuffer, ambient [3]float32, lights []Light) error {
	if s.Aligned() {
		return ErrAlignedStorage
	}
	entries := StorageEntries(ambient, lights)
	if _, _, err := layout.PackUnaligned(entries); err != nil {
		return err
	}
	s.Clear()
	return s.SetMany(entries)
}

// WriteShadowUniforms sets the ShadowData fields of u from d.
//
// Parameters:
//   - u: the uniform buffer to write into
//   - d: the shadow data to write
//
// Returns:
//   - error: any validation error from the buffer
func WriteShadowUniforms(u buffer.UniformBuffer, d GPUShadowData) error {
	return u.SetMany([]layout.Entry{
		{Name: FieldLightVP, Type: "mat4x4<f32>", Value: layout.Float32s(d.LightVP[:])},
		{Name: FieldTexelSize, Type: "vec2<f32>", Value: layout.Float32s(d.TexelSize[:])},
		{Name: FieldBias, Type: "f32", Value: layout.Scalar(d.Bias)},
		{Name: FieldNormalBias, Type: "f32", Value: layout.Scalar(d.NormalBias)},
	})
}
