// Package gbm wraps a DRM node in a generic buffer management (GBM) device.
//
// A [Device] is the unit of ownership for the node descriptor and the gbm_device created
// from it: the device is never valid without its descriptor, and both are released together
// by [Device.Close].
package gbm

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/BeatGlow/gbmdisplay/drm"
)

// Errors
var (
	ErrCreateDevice = errors.New("gbm: failed to create device")
	ErrClosed       = errors.New("gbm: device already closed")
)

// Backend creates and destroys native gbm_device objects.
type Backend interface {
	// CreateDevice creates a gbm_device on the descriptor. The descriptor stays owned by the caller.
	CreateDevice(fd int) (unsafe.Pointer, error)

	// DestroyDevice releases a device returned by CreateDevice.
	DestroyDevice(dev unsafe.Pointer)
}

// Device owns a DRM node and the gbm_device created from it.
type Device struct {
	node    *drm.Node
	dev     unsafe.Pointer
	backend Backend
}

// NewDevice creates a GBM device for node using backend, or DefaultBackend if nil.
//
// The device takes ownership of node: if creation fails the node is closed before returning.
func NewDevice(node *drm.Node, backend Backend) (*Device, error) {
	if backend == nil {
		backend = DefaultBackend
	}

	dev, err := backend.CreateDevice(node.Fd())
	if dev == nil {
		_ = node.Close()
		if err == nil {
			err = ErrCreateDevice
		}
		return nil, fmt.Errorf("gbm: create device for %s: %w", node.Path(), err)
	}

	return &Device{
		node:    node,
		dev:     dev,
		backend: backend,
	}, nil
}

// Node is the DRM node backing the device.
func (d *Device) Node() *drm.Node {
	return d.node
}

// Pointer to the native gbm_device, nil after Close.
func (d *Device) Pointer() unsafe.Pointer {
	return d.dev
}

func (d *Device) String() string {
	return fmt.Sprintf("GBM device on %s", d.node)
}

// Close destroys the gbm_device and then closes the node descriptor.
func (d *Device) Close() error {
	if d.dev == nil {
		return ErrClosed
	}
	d.backend.DestroyDevice(d.dev)
	d.dev = nil
	return d.node.Close()
}
