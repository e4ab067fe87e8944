package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWGSLStructPadsVec3(t *testing.T) {
	l, err := Compute([]Field{{"position", "vec3"}, {"scale", "f32"}})
	require.NoError(t, err)

	src, err := WGSLStruct("Instance", l)
	require.NoError(t, err)
	assert.Equal(t, "struct Instance {\n    position: vec3<f32>,\n    _pad0: u32,\n    scale: f32,\n}\n", src)
}

func TestWGSLStructRejectsPacked(t *testing.T) {
	l, err := ComputePacked([]Field{{"a", "f32"}})
	require.NoError(t, err)
	_, err = WGSLStruct("A", l)
	assert.ErrorIs(t, err, ErrUnalignedLayout)
}

func TestWGSLStructDeclaresBoolAsU32(t *testing.T) {
	l, err := Compute([]Field{{"enabled", "bool"}, {"intensity", "f32"}})
	require.NoError(t, err)

	src, err := WGSLStruct("Flags", l)
	require.NoError(t, err)
	assert.Equal(t, "struct Flags {\n    enabled: u32,\n    intensity: f32,\n}\n", src)

	r, err := ReflectWGSL(src, "Flags")
	require.NoError(t, err)
	assert.Equal(t, l.Size, r.Size)
}

func TestWGSLStructRejectsEmpty(t *testing.T) {
	l, err := Compute(nil)
	require.NoError(t, err)
	_, err = WGSLStruct("Empty", l)
	assert.ErrorIs(t, err, ErrEmptyLayout)
}

// Offsets computed for packing must agree with what the shader compiler assigns.
func TestReflectWGSLAgreesWithCompute(t *testing.T) {
	cases := map[string][]Field{
		"Material": {{"color", "vec4<f32>"}, {"intensity", "f32"}},
		"Params":   {{"time", "f32"}, {"resolution", "vec2<u32>"}, {"brightness", "f32"}},
		"Object":   {{"color", "vec4"}, {"intensity", "f32"}, {"position", "vec3"}, {"scale", "f32"}, {"model", "mat4x4<f32>"}},
		"Shadow":   {{"light_vp", "mat4"}, {"texel_size", "vec2"}, {"bias", "f32"}, {"normal_bias", "f32"}},
		"Mixed":    {{"flags", "u32"}, {"offset", "vec2<i32>"}, {"tint", "vec3<f32>"}, {"uv_xform", "mat2x2<f32>"}},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			l, err := Compute(fields)
			require.NoError(t, err)
			src, err := WGSLStruct(name, l)
			require.NoError(t, err)

			r, err := ReflectWGSL(src, name)
			require.NoError(t, err, src)
			assert.Equal(t, l.Size, r.Size, src)
			for _, f := range l.Fields {
				off, ok := r.Offset(f.Name)
				require.True(t, ok, f.Name)
				assert.Equal(t, f.Offset, off, "%s in\n%s", f.Name, src)
			}
		})
	}
}

func TestReflectWGSLUnknownStruct(t *testing.T) {
	_, err := ReflectWGSL("struct A {\n    x: f32,\n}\n", "B")
	assert.ErrorIs(t, err, ErrUnknownField)
}
