package buffer

import (
	"errors"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// WGPUDevice adapts a *wgpu.Device and its queue to the Device capability.
type WGPUDevice struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
}

var _ Device = &WGPUDevice{}

// NewWGPUDevice wraps an existing device. The queue is taken from the device.
//
// Parameters:
//   - device: a live wgpu device
//
// Returns:
//   - *WGPUDevice: the adapter, whose Queue is nil if device is nil
func NewWGPUDevice(device *wgpu.Device) *WGPUDevice {
	d := &WGPUDevice{mu: &sync.Mutex{}, device: device}
	if device != nil {
		d.queue = device.GetQueue()
	}
	return d
}

// NewHeadlessDevice creates an instance, adapter and device with no surface attached.
// It is meant for off-screen packing and tests against a real GPU.
//
// Parameters:
//   - forceFallbackAdapter: request the software fallback adapter
//
// Returns:
//   - *WGPUDevice: the adapter owning the created objects; call Release when done
//   - error: if no adapter or device could be acquired
func NewHeadlessDevice(forceFallbackAdapter bool) (*WGPUDevice, error) {
	instance := wgpu.CreateInstance(nil)

	a, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
	})
	if err != nil {
		instance.Release()
		return nil, err
	}

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Headless Device",
	})
	if err != nil {
		a.Release()
		instance.Release()
		return nil, err
	}

	w := NewWGPUDevice(d)
	w.instance = instance
	w.adapter = a
	return w, nil
}

// Raw returns the wrapped device.
func (d *WGPUDevice) Raw() *wgpu.Device {
	return d.device
}

func (d *WGPUDevice) CreateBuffer(desc *wgpu.BufferDescriptor) (Handle, error) {
	if d == nil {
		return nil, ErrNotReady
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.device == nil {
		return nil, ErrNotReady
	}
	buf, err := d.device.CreateBuffer(desc)
	if err != nil {
		return nil, err
	}
	return &WGPUBuffer{buffer: buf, size: desc.Size}, nil
}

func (d *WGPUDevice) Queue() Queue {
	if d == nil || d.queue == nil {
		return nil
	}
	return (*wgpuQueue)(d)
}

// Release releases the queue, device, adapter and instance this WGPUDevice owns.
func (d *WGPUDevice) Release() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

// wgpuQueue serializes queue writes through the owning device's mutex.
type wgpuQueue WGPUDevice

func (q *wgpuQueue) WriteBuffer(h Handle, offset uint64, data []byte) error {
	buf, ok := h.(*WGPUBuffer)
	if !ok {
		return errors.New("buffer was not created by a WGPUDevice")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.queue == nil {
		return ErrNotReady
	}
	return q.queue.WriteBuffer(buf.buffer, offset, data)
}

// WGPUBuffer is the Handle returned by WGPUDevice.
type WGPUBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
}

// Raw returns the wrapped buffer for bind group and draw call construction.
func (b *WGPUBuffer) Raw() *wgpu.Buffer {
	return b.buffer
}

func (b *WGPUBuffer) Size() uint64 {
	return b.size
}

func (b *WGPUBuffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}
