//go:build !linux || !cgo

package gbm

import (
	"errors"
	"unsafe"
)

// Errors
var (
	ErrNotSupported = errors.New("gbm: not supported")
)

// DefaultBackend fails on builds without libgbm.
var DefaultBackend Backend = unsupported{}

type unsupported struct{}

func (unsupported) CreateDevice(int) (unsafe.Pointer, error) {
	return nil, ErrNotSupported
}

func (unsupported) DestroyDevice(unsafe.Pointer) {}
