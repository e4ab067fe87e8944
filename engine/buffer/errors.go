package buffer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/engine/buffer/layout"
)

var (
	// ErrNotCompiled is returned by Update and Buffer before a successful Compile.
	ErrNotCompiled = errors.New("buffer not compiled")

	// ErrNotReady is returned when Compile or Update is called without a device.
	ErrNotReady = errors.New("device not ready")

	// ErrInvalidDevice is returned when a device is present but lacks a queue. It wraps ErrNotReady.
	ErrInvalidDevice = fmt.Errorf("%w: invalid device", ErrNotReady)
)

// Validation errors raised by Set. They are the layout package's sentinels, re-exported so callers
// of this package can match them without importing layout.
var (
	ErrInvalidName  = layout.ErrInvalidName
	ErrInvalidType  = layout.ErrInvalidType
	ErrInvalidValue = layout.ErrInvalidValue
	ErrSizeMismatch = layout.ErrSizeMismatch
	ErrUnknownField = layout.ErrUnknownField
)
