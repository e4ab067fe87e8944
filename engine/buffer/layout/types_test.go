package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryInvariants(t *testing.T) {
	names := TypeNames()
	require.NotEmpty(t, names)
	for _, name := range names {
		ti, ok := Lookup(name)
		require.True(t, ok, name)
		assert.LessOrEqual(t, 4, ti.Align, name)
		assert.LessOrEqual(t, ti.Align, ti.Stride, name)
		assert.GreaterOrEqual(t, ti.Stride, ti.Size*4, name)
		assert.Zero(t, ti.Align&(ti.Align-1), "%s alignment must be a power of two", name)
	}
}

func TestTypeFacts(t *testing.T) {
	cases := []struct {
		name                 string
		size, align, stride int
	}{
		{"f32", 1, 4, 4},
		{"i32", 1, 4, 4},
		{"u32", 1, 4, 4},
		{"bool", 1, 4, 4},
		{"vec2<f32>", 2, 8, 8},
		{"vec3<f32>", 3, 16, 16},
		{"vec4<u32>", 4, 16, 16},
		{"vec3<bool>", 3, 16, 16},
		{"mat2x2<f32>", 4, 8, 16},
		{"mat3x3<f32>", 9, 16, 48},
		{"mat4x4<f32>", 16, 16, 64},
		{"mat2x3<f32>", 6, 16, 32},
		{"mat3x2<f32>", 6, 8, 24},
		{"mat4x2<f32>", 8, 8, 32},
		{"float", 1, 4, 4},
		{"uint", 1, 4, 4},
		{"vec3", 3, 16, 16},
		{"vec2f", 2, 8, 8},
		{"mat4", 16, 16, 64},
		{"mat3x3", 9, 16, 48},
		{"vec3< f32 >", 3, 16, 16},
	}
	for _, c := range cases {
		size, err := ComponentCount(c.name)
		require.NoError(t, err, c.name)
		align, _ := Alignment(c.name)
		stride, _ := Stride(c.name)
		assert.Equal(t, c.size, size, "%s size", c.name)
		assert.Equal(t, c.align, align, "%s align", c.name)
		assert.Equal(t, c.stride, stride, "%s stride", c.name)
		assert.True(t, IsValidType(c.name), c.name)
	}
}

func TestAliasesResolveToCanonical(t *testing.T) {
	ti, err := Resolve("vec4")
	require.NoError(t, err)
	assert.Equal(t, "vec4<f32>", ti.Name)
	assert.Equal(t, KindFloat, ti.Kind)

	ti, err = Resolve("vec3i")
	require.NoError(t, err)
	assert.Equal(t, "vec3<i32>", ti.Name)
	assert.Equal(t, KindSint, ti.Kind)
}

func TestInvalidTypes(t *testing.T) {
	for _, name := range []string{"", "f64", "vec5<f32>", "mat4x4<i32>", "vec3<f16>", "Vec3", "array<f32>"} {
		assert.False(t, IsValidType(name), name)
		_, err := ComponentCount(name)
		assert.ErrorIs(t, err, ErrInvalidType, name)
	}
}

func TestScalarKindString(t *testing.T) {
	assert.Equal(t, "u32", KindUint.String())
	assert.Equal(t, "ScalarKind(9)", ScalarKind(9).String())
}
