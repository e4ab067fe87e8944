// Package buffertest provides a recording Device for testing code that allocates GPU buffers.
package buffertest

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrCreateFailed is returned by CreateBuffer once FailCreate is set.
var ErrCreateFailed = errors.New("buffertest: create failed")

// Device records every allocation and write made through it. Buffer contents are kept in memory
// so tests can inspect exactly what reached the GPU.
type Device struct {
	mu sync.Mutex

	// FailCreate makes every following CreateBuffer call fail.
	FailCreate bool
	// NoQueue makes Queue return nil, as a device without a queue would.
	NoQueue bool

	created  []*Buffer
	writes   []WriteCall
	released int
}

// WriteCall is one recorded WriteBuffer call.
type WriteCall struct {
	Buffer *Buffer
	Offset uint64
	Data   []byte
}

// Buffer is the Handle returned by Device. Its Data slice has the allocated size.
type Buffer struct {
	Desc     wgpu.BufferDescriptor
	Data     []byte
	Released bool

	device *Device
}

var _ buffer.Device = &Device{}

// NewDevice returns an empty recording device.
func NewDevice() *Device {
	return &Device{}
}

func (d *Device) CreateBuffer(desc *wgpu.BufferDescriptor) (buffer.Handle, error) {
	if d == nil {
		return nil, buffer.ErrNotReady
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.FailCreate {
		return nil, ErrCreateFailed
	}
	b := &Buffer{Desc: *desc, Data: make([]byte, desc.Size), device: d}
	d.created = append(d.created, b)
	return b, nil
}

func (d *Device) Queue() buffer.Queue {
	if d == nil || d.NoQueue {
		return nil
	}
	return queue{d}
}

// Created returns every buffer allocated so far, in order.
func (d *Device) Created() []*Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Buffer(nil), d.created...)
}

// CreateCount returns how many buffers were allocated.
func (d *Device) CreateCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.created)
}

// Writes returns every recorded write, in order.
func (d *Device) Writes() []WriteCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]WriteCall(nil), d.writes...)
}

// ReleaseCount returns how many buffers were released.
func (d *Device) ReleaseCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}

// Live returns the buffers that have not been released.
func (d *Device) Live() []*Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	var live []*Buffer
	for _, b := range d.created {
		if !b.Released {
			live = append(live, b)
		}
	}
	return live
}

type queue struct {
	d *Device
}

func (q queue) WriteBuffer(h buffer.Handle, offset uint64, data []byte) error {
	b, ok := h.(*Buffer)
	if !ok {
		return errors.New("buffertest: foreign handle")
	}

	q.d.mu.Lock()
	defer q.d.mu.Unlock()

	if b.Released {
		return errors.New("buffertest: write to released buffer")
	}
	if offset+uint64(len(data)) > uint64(len(b.Data)) {
		return errors.New("buffertest: write past end of buffer")
	}
	copy(b.Data[offset:], data)
	q.d.writes = append(q.d.writes, WriteCall{Buffer: b, Offset: offset, Data: append([]byte(nil), data...)})
	return nil
}

func (b *Buffer) Size() uint64 {
	return uint64(len(b.Data))
}

func (b *Buffer) Release() {
	b.device.mu.Lock()
	defer b.device.mu.Unlock()

	if b.Released {
		return
	}
	b.Released = true
	b.device.released++
}
