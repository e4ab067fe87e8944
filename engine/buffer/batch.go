package buffer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// batch is the unexported implementation of Batch.
type batch struct {
	mu *sync.Mutex

	workers  int
	onCommit func(Write)
	pool     worker.DynamicWorkerPool
	buffers  []GPUBuffer
}

// Batch uploads many independent buffers against one device. Packing fans out over a bounded
// worker pool; the resulting writes are then committed one after another so the device queue is
// only ever used from a single goroutine.
//
// Usage pattern:
//  1. Create with NewBatch and Add the buffers owned by a scene
//  2. Mutate buffer values as the frame requires
//  3. Call Flush once per frame; uncompiled buffers are compiled, the rest updated
//  4. Close when the scene is torn down
type Batch interface {
	// Add registers buffers to be flushed.
	//
	// Parameters:
	//   - buffers: the buffers to add
	Add(buffers ...GPUBuffer)

	// Remove unregisters a buffer. The buffer itself is not destroyed.
	//
	// Parameters:
	//   - b: the buffer to remove
	//
	// Returns:
	//   - bool: false if the buffer was not registered
	Remove(b GPUBuffer) bool

	// Len returns the number of registered buffers.
	//
	// Returns:
	//   - int: the buffer count
	Len() int

	// Stage packs every registered buffer in parallel without touching the device.
	//
	// Returns:
	//   - []Write: one staged write per buffer, in registration order
	//   - error: every packing error, joined
	Stage() ([]Write, error)

	// Flush stages every registered buffer and commits the writes to device in registration order.
	// A failed write is logged and does not stop the remaining writes.
	//
	// Parameters:
	//   - device: the device to upload to
	//
	// Returns:
	//   - error: every staging and commit error, joined
	Flush(device Device) error

	// Close stops the worker pool. The batch must not be used afterwards.
	Close()
}

var _ Batch = &batch{}

// NewBatch creates an empty batch with its worker pool.
//
// Parameters:
//   - options: functional options such as WithWorkers
//
// Returns:
//   - Batch: the new batch
func NewBatch(options ...BatchOption) Batch {
	b := &batch{
		mu:      &sync.Mutex{},
		workers: runtime.NumCPU(),
	}

	for _, option := range options {
		option(b)
	}
	b.pool = worker.NewDynamicWorkerPool(b.workers, 256, 1*time.Second)

	return b
}

func (b *batch) Add(buffers ...GPUBuffer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, buf := range buffers {
		if buf != nil {
			b.buffers = append(b.buffers, buf)
		}
	}
}

func (b *batch) Remove(target GPUBuffer) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, buf := range b.buffers {
		if buf == target {
			b.buffers = append(b.buffers[:i], b.buffers[i+1:]...)
			return true
		}
	}
	return false
}

func (b *batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buffers)
}

func (b *batch) Stage() ([]Write, error) {
	b.mu.Lock()
	buffers := append([]GPUBuffer(nil), b.buffers...)
	b.mu.Unlock()

	writes := make([]Write, len(buffers))
	errs := make([]error, len(buffers))

	// The pool's own Wait blocks until workers idle out, so a WaitGroup is the barrier.
	var wg sync.WaitGroup
	for i, buf := range buffers {
		wg.Add(1)
		idx, target := i, buf
		b.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()

				data, err := target.stage()
				if err != nil {
					errs[idx] = fmt.Errorf("stage %s: %w", target.Label(), err)
					return nil, err
				}
				writes[idx] = Write{Buffer: target, Data: data}
				return nil, nil
			},
		})
	}
	wg.Wait()

	staged := writes[:0]
	for i, w := range writes {
		if errs[i] == nil {
			staged = append(staged, w)
		}
	}
	return staged, errors.Join(errs...)
}

func (b *batch) Flush(device Device) error {
	if _, err := checkDevice(device); err != nil {
		return err
	}

	writes, stageErr := b.Stage()

	var errs []error
	for _, w := range writes {
		if err := w.Commit(device); err != nil {
			Logger().Warn("batch write failed", "label", w.Buffer.Label(), "err", err)
			errs = append(errs, err)
			continue
		}
		if b.onCommit != nil {
			b.onCommit(w)
		}
	}
	return errors.Join(stageErr, errors.Join(errs...))
}

func (b *batch) Close() {
	b.pool.Stop()
}
