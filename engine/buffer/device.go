package buffer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Handle is a live GPU buffer with a fixed byte capacity.
type Handle interface {
	// Size returns the allocated capacity in bytes.
	Size() uint64

	// Release frees the GPU-side resource. It must be called at most once.
	Release()
}

// Queue copies bytes into live buffers.
type Queue interface {
	// WriteBuffer copies data into h starting at offset. Callers guarantee offset+len(data) <= h.Size().
	//
	// Parameters:
	//   - h: the destination buffer
	//   - offset: the destination byte offset
	//   - data: the bytes to copy
	//
	// Returns:
	//   - error: any error reported by the device
	WriteBuffer(h Handle, offset uint64, data []byte) error
}

// Device is the capability the buffers need from a GPU device: allocation plus a write queue.
// WGPUDevice adapts a real *wgpu.Device; buffertest.Device records calls for tests.
type Device interface {
	// CreateBuffer allocates a GPU buffer of at least desc.Size bytes.
	//
	// Parameters:
	//   - desc: the buffer descriptor (label, size, usage)
	//
	// Returns:
	//   - Handle: the new buffer
	//   - error: any error reported by the device
	CreateBuffer(desc *wgpu.BufferDescriptor) (Handle, error)

	// Queue returns the queue used to write buffer contents, or nil if the device has none.
	//
	// Returns:
	//   - Queue: the device queue
	Queue() Queue
}

// checkDevice validates d before any buffer state is touched.
func checkDevice(d Device) (Queue, error) {
	if d == nil {
		return nil, ErrNotReady
	}
	q := d.Queue()
	if q == nil {
		return nil, fmt.Errorf("%w: device has no queue", ErrInvalidDevice)
	}
	return q, nil
}
