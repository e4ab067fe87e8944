package buffer

// BatchOption is a functional option used to configure a Batch during construction.
type BatchOption func(*batch)

// WithWorkers sets the number of workers used to pack buffers. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - BatchOption: a function that sets the worker count
func WithWorkers(n int) BatchOption {
	return func(b *batch) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithCommitHook registers fn to be called after every successful write in Flush, for example to
// feed upload volume into a profiler.
//
// Parameters:
//   - fn: called with each committed write
//
// Returns:
//   - BatchOption: a function that sets the hook
func WithCommitHook(fn func(Write)) BatchOption {
	return func(b *batch) {
		b.onCommit = fn
	}
}
