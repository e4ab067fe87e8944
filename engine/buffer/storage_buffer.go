package buffer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
	"github.com/cogentcore/webgpu/wgpu"
)

// storageBuffer is the unexported implementation of StorageBuffer.
type storageBuffer struct {
	*namedBuffer

	// aligned switches packing from concatenation to the WGSL struct layout rules.
	aligned bool
}

// StorageBuffer is a variable-length GPU array of records, such as per-light or per-instance data.
// By default values are concatenated in insertion order with no padding, so records mirror
// host structs marshalled field by field. Allocations are rounded up to 256 bytes and grow by a
// configurable factor so repeated growth does not reallocate every frame.
type StorageBuffer interface {
	GPUBuffer

	// Set validates value against typeName and stores it under name, replacing any previous value
	// with the same name in place. Nothing is stored if validation fails.
	//
	// Parameters:
	//   - name: the value name, non-empty
	//   - value: a Scalar or Vector; matrices are column-major Vectors
	//   - typeName: a WGSL type name such as "vec3<f32>" or an alias such as "vec3"
	//
	// Returns:
	//   - error: ErrInvalidName, ErrInvalidType, ErrInvalidValue or ErrSizeMismatch
	Set(name string, value layout.Value, typeName string) error

	// SetMany validates every entry, then stores them all in order. If any entry is invalid none
	// are stored.
	//
	// Parameters:
	//   - entries: the named values to store
	//
	// Returns:
	//   - error: the first validation error
	SetMany(entries []layout.Entry) error

	// Get returns a copy of the value stored under name.
	//
	// Parameters:
	//   - name: the value name
	//
	// Returns:
	//   - layout.Value: the stored value
	//   - bool: false if nothing is stored under name
	Get(name string) (layout.Value, bool)

	// All returns a copy of every stored entry in insertion order, with canonical type names.
	//
	// Returns:
	//   - []layout.Entry: the stored entries
	All() []layout.Entry

	// Remove deletes the value stored under name.
	//
	// Parameters:
	//   - name: the value name
	//
	// Returns:
	//   - bool: false if nothing was stored under name
	Remove(name string) bool

	// Clear removes every stored value.
	Clear()

	// Len returns the number of stored values.
	//
	// Returns:
	//   - int: the value count
	Len() int

	// Layout returns the layout of the stored values, packed unless WithAlignedLayout was given.
	//
	// Returns:
	//   - layout.StructLayout: the placed values and total size
	//   - error: any layout error
	Layout() (layout.StructLayout, error)

	// Offset returns the byte offset of a stored value.
	//
	// Parameters:
	//   - name: the value name
	//
	// Returns:
	//   - int: the offset in bytes
	//   - error: ErrUnknownField if nothing is stored under name
	Offset(name string) (int, error)

	// Size returns the packed payload size in bytes.
	//
	// Returns:
	//   - int: the payload size
	//   - error: any layout error
	Size() (int, error)

	// Bytes packs the stored values without touching the GPU.
	//
	// Returns:
	//   - []byte: the packed payload
	//   - error: any packing error
	Bytes() ([]byte, error)

	// Aligned reports whether values are packed with the WGSL struct layout rules.
	//
	// Returns:
	//   - bool: true if WithAlignedLayout was given
	Aligned() bool
}

var _ StorageBuffer = &storageBuffer{}

// NewStorageBuffer creates an empty storage buffer.
//
// Parameters:
//   - options: functional options such as WithGrowthFactor or WithInitialCapacity
//
// Returns:
//   - StorageBuffer: the new buffer, not yet compiled
func NewStorageBuffer(options ...StorageBufferOption) StorageBuffer {
	b := &storageBuffer{
		namedBuffer: &namedBuffer{
			mu: &sync.Mutex{},
			alloc: allocation{
				usage:        wgpu.BufferUsageStorage,
				growthFactor: DefaultGrowthFactor,
				floor:        DefaultMinStorageSize,
				roundTo:      StorageAlignment,
			},
		},
	}

	for _, option := range options {
		option(b)
	}
	b.alloc.label = common.Coalesce(b.alloc.label, "Storage Buffer")
	b.alloc.reserve = common.AlignUp(b.alloc.reserve, StorageAlignment)
	b.store = newValueStore(!b.aligned)

	return b
}

func (b *storageBuffer) Aligned() bool {
	return b.aligned
}
