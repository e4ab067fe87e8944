// Package buffer manages GPU-resident uniform and storage buffers filled from named, typed CPU values.
//
// A buffer is created empty, populated with Set, then compiled against a Device. Compile allocates
// the GPU handle and uploads the packed bytes once; Update re-packs and either writes in place or,
// when the payload outgrew the handle, replaces the handle with a larger one. Destroy releases the
// handle but keeps the values so the buffer can be compiled again.
package buffer

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// UniformFloor is the smallest uniform allocation, used even when no values are set.
	UniformFloor = 16

	// StorageAlignment is the granularity initial storage allocations are rounded up to.
	StorageAlignment = 256

	// DefaultGrowthFactor is applied to the required size when a buffer has to grow.
	DefaultGrowthFactor = 1.5

	// DefaultMinStorageSize is the smallest storage allocation.
	DefaultMinStorageSize = 256
)

// GPUBuffer is the lifecycle shared by UniformBuffer and StorageBuffer.
type GPUBuffer interface {
	// Compile packs the current values and allocates the GPU buffer. It is a no-op if the buffer is
	// already compiled.
	//
	// Parameters:
	//   - device: the device to allocate on
	//
	// Returns:
	//   - error: ErrNotReady or ErrInvalidDevice for a missing or incomplete device, or a device error
	Compile(device Device) error

	// Update re-packs the current values and uploads them, replacing the GPU buffer with a larger
	// one when the payload no longer fits.
	//
	// Parameters:
	//   - device: the device the buffer was compiled on
	//
	// Returns:
	//   - error: ErrNotCompiled before Compile, ErrNotReady or ErrInvalidDevice, or a device error
	Update(device Device) error

	// Destroy releases the GPU buffer and resets the compiled state. Values are kept.
	// Calling Destroy on a buffer without a GPU handle does nothing.
	Destroy()

	// IsCompiled reports whether the buffer currently holds a GPU handle.
	//
	// Returns:
	//   - bool: true between a successful Compile and the next Destroy
	IsCompiled() bool

	// Buffer returns the live GPU handle for bind group construction.
	//
	// Returns:
	//   - Handle: the GPU buffer
	//   - error: ErrNotCompiled before Compile
	Buffer() (Handle, error)

	// Capacity returns the byte capacity of the live GPU handle, or 0 if not compiled.
	//
	// Returns:
	//   - uint64: the allocated capacity in bytes
	Capacity() uint64

	// Label returns the debug label used for the GPU buffer.
	//
	// Returns:
	//   - string: the label
	Label() string

	// stage packs the current values for a later commit.
	stage() ([]byte, error)

	// commit compiles or updates the buffer with bytes produced by stage.
	commit(device Device, data []byte) error
}

// allocation owns the GPU handle of one buffer and implements the sizing policy.
type allocation struct {
	label        string
	usage        wgpu.BufferUsage
	growthFactor float64
	exactRefit   bool

	// floor is the smallest size ever allocated, roundTo the granularity of the initial size and
	// reserve the initial capacity hint.
	floor   uint64
	roundTo uint64
	reserve uint64

	handle   Handle
	compiled bool
}

func (a *allocation) initialSize(n int) uint64 {
	size := common.AlignUp(uint64(n), max(a.roundTo, 4))
	return max(size, a.reserve, a.floor)
}

func (a *allocation) grownSize(required int) uint64 {
	if a.exactRefit {
		return max(common.AlignUp(uint64(required), 4), a.floor)
	}
	grown := uint64(math.Ceil(float64(required) * a.growthFactor))
	return max(common.AlignUp(grown, 4), a.floor)
}

func (a *allocation) create(device Device, size uint64) (Handle, error) {
	h, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            a.label,
		Size:             size,
		Usage:            a.usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", a.label, err)
	}
	Logger().Debug("buffer created", "label", a.label, "size", size, "usage", uint64(a.usage))
	return h, nil
}

func (a *allocation) compile(device Device, data []byte) error {
	q, err := checkDevice(device)
	if err != nil {
		return err
	}
	if a.compiled {
		return nil
	}

	h, err := a.create(device, a.initialSize(len(data)))
	if err != nil {
		return err
	}
	if len(data) > 0 {
		if err := q.WriteBuffer(h, 0, data); err != nil {
			h.Release()
			return fmt.Errorf("write %s: %w", a.label, err)
		}
	}
	a.handle = h
	a.compiled = true
	return nil
}

func (a *allocation) update(device Device, data []byte) error {
	if !a.compiled {
		return fmt.Errorf("update %s: %w", a.label, ErrNotCompiled)
	}
	q, err := checkDevice(device)
	if err != nil {
		return err
	}

	if capacity := a.handle.Size(); uint64(len(data)) > capacity {
		size := a.grownSize(len(data))
		h, err := a.create(device, size)
		if err != nil {
			return err
		}
		a.handle.Release()
		a.handle = h
		Logger().Debug("buffer grown", "label", a.label, "old", capacity, "required", len(data), "new", size)
	}

	if len(data) == 0 {
		return nil
	}
	if err := q.WriteBuffer(a.handle, 0, data); err != nil {
		return fmt.Errorf("write %s: %w", a.label, err)
	}
	return nil
}

func (a *allocation) destroy() {
	if a.handle == nil {
		return
	}
	a.handle.Release()
	a.handle = nil
	a.compiled = false
	Logger().Debug("buffer destroyed", "label", a.label)
}

func (a *allocation) buffer() (Handle, error) {
	if !a.compiled {
		return nil, fmt.Errorf("%s: %w", a.label, ErrNotCompiled)
	}
	return a.handle, nil
}

func (a *allocation) capacity() uint64 {
	if a.handle == nil {
		return 0
	}
	return a.handle.Size()
}
