package egl

import (
	"errors"
	"fmt"
	"strings"
)

// Fence sync entry points, from EGL_KHR_fence_sync / EGL_KHR_reusable_sync.
const (
	CreateSyncKHR     = "eglCreateSyncKHR"
	ClientWaitSyncKHR = "eglClientWaitSyncKHR"
	DestroySyncKHR    = "eglDestroySyncKHR"
)

// Errors
var (
	ErrMissingEntryPoint = errors.New("egl: missing entry point")
)

// FenceSync is the resolved fence sync function table.
type FenceSync struct {
	lib     Library
	create  Proc
	wait    Proc
	destroy Proc
}

// LoadFenceSync resolves the three fence entry points directly from the driver. All three must
// be present; a partial table is reported as ErrMissingEntryPoint.
func LoadFenceSync(lib Library) (*FenceSync, error) {
	f := &FenceSync{
		lib:     lib,
		create:  lib.GetProcAddress(CreateSyncKHR),
		wait:    lib.GetProcAddress(ClientWaitSyncKHR),
		destroy: lib.GetProcAddress(DestroySyncKHR),
	}

	var missing []string
	if f.create == 0 {
		missing = append(missing, CreateSyncKHR)
	}
	if f.wait == 0 {
		missing = append(missing, ClientWaitSyncKHR)
	}
	if f.destroy == 0 {
		missing = append(missing, DestroySyncKHR)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEntryPoint, strings.Join(missing, ", "))
	}
	return f, nil
}

// Create a sync object of type typ on dpy.
func (f *FenceSync) Create(dpy Display, typ Enum) Sync {
	return f.lib.CreateSync(f.create, dpy, typ)
}

// ClientWait blocks until sync is signaled or timeout expires.
func (f *FenceSync) ClientWait(dpy Display, sync Sync, flags Int, timeout Time) Int {
	return f.lib.ClientWaitSync(f.wait, dpy, sync, flags, timeout)
}

// Destroy releases sync.
func (f *FenceSync) Destroy(dpy Display, sync Sync) bool {
	return f.lib.DestroySync(f.destroy, dpy, sync)
}
