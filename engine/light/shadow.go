package light

// ShadowMapResolution is the default width and height in texels of the shadow depth texture.
const ShadowMapResolution = 2048

// DefaultShadowHalfExtent is the default orthographic half-extent, in world units, of a
// directional light's shadow frustum.
const DefaultShadowHalfExtent float32 = 40.0

// DefaultShadowNear is the default near plane of the shadow projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the default far plane of the shadow projection.
const DefaultShadowFar float32 = 200.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons.
const DefaultShadowBias float32 = 0.001

// DefaultShadowNormalBiasScale multiplies the world size of one shadow texel to get the
// normal-offset bias.
const DefaultShadowNormalBiasScale float32 = 3.0

// NewShadowData builds the shadow uniform for a directional light whose frustum is centered on
// center, using the default extent, planes, biases and ShadowMapResolution.
//
// Parameters:
//   - l: the shadow-casting light; its direction orients the frustum
//   - center: world-space center of the shadow frustum, usually the camera position
//
// Returns:
//   - GPUShadowData: the populated shadow uniform
func NewShadowData(l Light, center [3]float32) GPUShadowData {
	var s GPUShadowData
	s.ComputeDirectionalLightVP(l.Direction(), center[0], center[1], center[2],
		DefaultShadowHalfExtent, DefaultShadowNear, DefaultShadowFar)
	s.ComputeNormalBias(DefaultShadowHalfExtent, DefaultShadowNormalBiasScale, ShadowMapResolution)
	s.TexelSize = [2]float32{1.0 / ShadowMapResolution, 1.0 / ShadowMapResolution}
	s.Bias = DefaultShadowBias
	return s
}
