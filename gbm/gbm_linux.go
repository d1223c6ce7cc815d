//go:build linux && cgo

package gbm

/*
#cgo LDFLAGS: -lgbm
#include <gbm.h>
*/
import "C"

import "unsafe"

// DefaultBackend is backed by the system libgbm.
var DefaultBackend Backend = libgbm{}

type libgbm struct{}

func (libgbm) CreateDevice(fd int) (unsafe.Pointer, error) {
	dev, err := C.gbm_create_device(C.int(fd))
	if dev == nil {
		if err == nil {
			err = ErrCreateDevice
		}
		return nil, err
	}
	return unsafe.Pointer(dev), nil
}

func (libgbm) DestroyDevice(dev unsafe.Pointer) {
	C.gbm_device_destroy((*C.struct_gbm_device)(dev))
}
