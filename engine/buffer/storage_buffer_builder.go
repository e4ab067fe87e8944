package buffer

import "github.com/cogentcore/webgpu/wgpu"

// StorageBufferOption is a functional option used to configure a StorageBuffer during construction.
type StorageBufferOption func(*storageBuffer)

// WithStorageLabel sets the debug label of the GPU buffer.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - StorageBufferOption: a function that sets the label
func WithStorageLabel(label string) StorageBufferOption {
	return func(b *storageBuffer) {
		b.alloc.label = label
	}
}

// WithStorageUsage adds usage flags to the GPU buffer. Storage and CopyDst are always set.
//
// Parameters:
//   - usage: the extra usage flags, e.g. wgpu.BufferUsageVertex for instance data
//
// Returns:
//   - StorageBufferOption: a function that adds the usage flags
func WithStorageUsage(usage wgpu.BufferUsage) StorageBufferOption {
	return func(b *storageBuffer) {
		b.alloc.usage |= usage
	}
}

// WithGrowthFactor sets the factor applied to the required size when the buffer has to grow.
// Factors of 1 or less are ignored.
//
// Parameters:
//   - factor: the growth factor
//
// Returns:
//   - StorageBufferOption: a function that sets the growth factor
func WithGrowthFactor(factor float64) StorageBufferOption {
	return func(b *storageBuffer) {
		if factor > 1 {
			b.alloc.growthFactor = factor
		}
	}
}

// WithMinBufferSize sets the smallest size the buffer is ever allocated with.
//
// Parameters:
//   - size: the minimum size in bytes
//
// Returns:
//   - StorageBufferOption: a function that sets the minimum size
func WithMinBufferSize(size uint64) StorageBufferOption {
	return func(b *storageBuffer) {
		b.alloc.floor = size
	}
}

// WithInitialCapacity reserves room for expectedLength records of elementSize bytes on the first
// Compile, so the buffer does not grow while it fills up to that length.
//
// Parameters:
//   - elementSize: the byte size of one record
//   - expectedLength: the expected number of records
//
// Returns:
//   - StorageBufferOption: a function that sets the initial capacity
func WithInitialCapacity(elementSize, expectedLength int) StorageBufferOption {
	return func(b *storageBuffer) {
		if elementSize > 0 && expectedLength > 0 {
			b.alloc.reserve = uint64(elementSize) * uint64(expectedLength)
		}
	}
}

// WithAlignedLayout packs values with the WGSL struct layout rules instead of concatenating them.
//
// Returns:
//   - StorageBufferOption: a function that enables aligned packing
func WithAlignedLayout() StorageBufferOption {
	return func(b *storageBuffer) {
		b.aligned = true
	}
}
