package buffer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
	"github.com/cogentcore/webgpu/wgpu"
)

// uniformBuffer is the unexported implementation of UniformBuffer.
type uniformBuffer struct {
	*namedBuffer
}

// UniformBuffer is a small GPU struct, such as per-camera or per-material data, packed with the
// WGSL uniform layout rules: every field starts at a multiple of its alignment and the struct size
// is rounded up to its largest alignment. An empty buffer still allocates 16 bytes.
//
// Usage pattern:
//  1. Create with NewUniformBuffer and Set every field in shader declaration order
//  2. Compile against a Device and bind the handle returned by Buffer
//  3. Set changed values and call Update once per frame
//  4. Destroy when the owner is released
type UniformBuffer interface {
	GPUBuffer

	// Set validates value against typeName and stores it under name, replacing any previous value
	// with the same name in place. Nothing is stored if validation fails.
	//
	// Parameters:
	//   - name: the field name, non-empty
	//   - value: a Scalar or Vector; matrices are column-major Vectors
	//   - typeName: a WGSL type name such as "vec4<f32>" or an alias such as "vec4"
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
	//   - name: the field name
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
	//   - name: the field name
	//
	// Returns:
	//   - bool: false if nothing was stored under name
	Remove(name string) bool

	// Clear removes every stored value.
	Clear()

	// Len returns the number of stored values.
	//
	// Returns:
	//   - int: the field count
	Len() int

	// Layout returns the struct layout of the stored values.
	//
	// Returns:
	//   - layout.StructLayout: the placed fields and total size
	//   - error: any layout error
	Layout() (layout.StructLayout, error)

	// Offset returns the byte offset of a stored field.
	//
	// Parameters:
	//   - name: the field name
	//
	// Returns:
	//   - int: the offset in bytes
	//   - error: ErrUnknownField if nothing is stored under name
	Offset(name string) (int, error)

	// Size returns the packed struct size in bytes, before the allocation floor is applied.
	//
	// Returns:
	//   - int: the struct size
	//   - error: any layout error
	Size() (int, error)

	// Bytes packs the stored values without touching the GPU.
	//
	// Returns:
	//   - []byte: the packed struct
	//   - error: any packing error
	Bytes() ([]byte, error)

	// WGSL renders a WGSL struct declaration matching the packed layout.
	//
	// Parameters:
	//   - structName: the name of the WGSL struct
	//
	// Returns:
	//   - string: the struct declaration
	//   - error: any layout error
	WGSL(structName string) (string, error)
}

var _ UniformBuffer = &uniformBuffer{}

// NewUniformBuffer creates an empty uniform buffer.
//
// Parameters:
//   - options: functional options such as WithUniformLabel
//
// Returns:
//   - UniformBuffer: the new buffer, not yet compiled
func NewUniformBuffer(options ...UniformBufferOption) UniformBuffer {
	b := &uniformBuffer{
		namedBuffer: &namedBuffer{
			mu:    &sync.Mutex{},
			store: newValueStore(false),
			alloc: allocation{
				usage:        wgpu.BufferUsageUniform,
				growthFactor: DefaultGrowthFactor,
				floor:        UniformFloor,
				roundTo:      4,
			},
		},
	}

	for _, option := range options {
		option(b)
	}
	b.alloc.label = common.Coalesce(b.alloc.label, "Uniform Buffer")

	return b
}

func (b *uniformBuffer) WGSL(structName string) (string, error) {
	l, err := b.Layout()
	if err != nil {
		return "", err
	}
	return layout.WGSLStruct(structName, l)
}
