package buffer

import "github.com/cogentcore/webgpu/wgpu"

// UniformBufferOption is a functional option used to configure a UniformBuffer during construction.
type UniformBufferOption func(*uniformBuffer)

// WithUniformLabel sets the debug label of the GPU buffer.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - UniformBufferOption: a function that sets the label
func WithUniformLabel(label string) UniformBufferOption {
	return func(b *uniformBuffer) {
		b.alloc.label = label
	}
}

// WithUniformUsage adds usage flags to the GPU buffer. Uniform and CopyDst are always set.
//
// Parameters:
//   - usage: the extra usage flags
//
// Returns:
//   - UniformBufferOption: a function that adds the usage flags
func WithUniformUsage(usage wgpu.BufferUsage) UniformBufferOption {
	return func(b *uniformBuffer) {
		b.alloc.usage |= usage
	}
}

// WithUniformGrowthFactor sets the factor applied to the required size when the buffer has to grow.
// Factors of 1 or less are ignored. WithExactRefit covers exact sizing.
//
// Parameters:
//   - factor: the growth factor
//
// Returns:
//   - UniformBufferOption: a function that sets the growth factor
func WithUniformGrowthFactor(factor float64) UniformBufferOption {
	return func(b *uniformBuffer) {
		if factor > 1 {
			b.alloc.growthFactor = factor
		}
	}
}

// WithExactRefit makes the buffer reallocate to exactly the required size when it has to grow.
//
// Returns:
//   - UniformBufferOption: a function that enables exact refit
func WithExactRefit() UniformBufferOption {
	return func(b *uniformBuffer) {
		b.alloc.exactRefit = true
	}
}
