package buffer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
)

// namedBuffer is the implementation shared by uniformBuffer and storageBuffer: a value store
// packed into one GPU allocation.
type namedBuffer struct {
	mu *sync.Mutex

	store valueStore
	alloc allocation
}

func (b *namedBuffer) Set(name string, value layout.Value, typeName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.set(name, value, typeName)
}

func (b *namedBuffer) SetMany(entries []layout.Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.setMany(entries)
}

func (b *namedBuffer) Get(name string) (layout.Value, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.get(name)
}

func (b *namedBuffer) All() []layout.Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.all()
}

func (b *namedBuffer) Remove(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.remove(name)
}

func (b *namedBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.store.clear()
}

func (b *namedBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.values.Len()
}

func (b *namedBuffer) Layout() (layout.StructLayout, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.layout()
}

func (b *namedBuffer) Offset(name string) (int, error) {
	l, err := b.Layout()
	if err != nil {
		return 0, err
	}
	off, ok := l.Offset(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return off, nil
}

func (b *namedBuffer) Size() (int, error) {
	l, err := b.Layout()
	return l.Size, err
}

func (b *namedBuffer) Bytes() ([]byte, error) {
	return b.stage()
}

func (b *namedBuffer) Compile(device Device) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := b.store.pack()
	if err != nil {
		return err
	}
	return b.alloc.compile(device, data)
}

func (b *namedBuffer) Update(device Device) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.alloc.compiled {
		return fmt.Errorf("update %s: %w", b.alloc.label, ErrNotCompiled)
	}
	data, err := b.store.pack()
	if err != nil {
		return err
	}
	return b.alloc.update(device, data)
}

func (b *namedBuffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alloc.destroy()
}

func (b *namedBuffer) IsCompiled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alloc.compiled
}

func (b *namedBuffer) Buffer() (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alloc.buffer()
}

func (b *namedBuffer) Capacity() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alloc.capacity()
}

func (b *namedBuffer) Label() string {
	return b.alloc.label
}

func (b *namedBuffer) stage() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.pack()
}

func (b *namedBuffer) commit(device Device, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.alloc.compiled {
		return b.alloc.update(device, data)
	}
	return b.alloc.compile(device, data)
}
