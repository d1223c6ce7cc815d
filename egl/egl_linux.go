//go:build linux && cgo

package egl

/*
#cgo LDFLAGS: -lEGL
#include <stdint.h>
#include <stdlib.h>
#include <EGL/egl.h>
#include <EGL/eglext.h>

static EGLDisplay gbmdisplayGetDisplay(uintptr_t id) {
	return eglGetDisplay((EGLNativeDisplayType)id);
}

static EGLDisplay gbmdisplayGetPlatformDisplayEXT(void *fn, EGLenum platform, void *native) {
	return ((PFNEGLGETPLATFORMDISPLAYEXTPROC)fn)(platform, native, NULL);
}

// eglGetPlatformDisplay is EGL 1.5 and may be absent from older headers and libraries.
typedef EGLDisplay (*gbmdisplayGetPlatformDisplayProc)(EGLenum platform, void *native, const intptr_t *attribs);

static EGLDisplay gbmdisplayGetPlatformDisplay(void *fn, EGLenum platform, void *native) {
	return ((gbmdisplayGetPlatformDisplayProc)fn)(platform, native, NULL);
}

static EGLSyncKHR gbmdisplayCreateSync(void *fn, EGLDisplay dpy, EGLenum type) {
	return ((PFNEGLCREATESYNCKHRPROC)fn)(dpy, type, NULL);
}

static EGLint gbmdisplayClientWaitSync(void *fn, EGLDisplay dpy, EGLSyncKHR sync, EGLint flags, EGLTimeKHR timeout) {
	return ((PFNEGLCLIENTWAITSYNCKHRPROC)fn)(dpy, sync, flags, timeout);
}

static EGLBoolean gbmdisplayDestroySync(void *fn, EGLDisplay dpy, EGLSyncKHR sync) {
	return ((PFNEGLDESTROYSYNCKHRPROC)fn)(dpy, sync);
}
*/
import "C"

import "unsafe"

// DefaultLibrary is backed by the system libEGL.
var DefaultLibrary Library = libEGL{}

type libEGL struct{}

func eglDisplay(dpy Display) C.EGLDisplay {
	return C.EGLDisplay(unsafe.Pointer(uintptr(dpy)))
}

func (libEGL) QueryString(dpy Display, name Enum) string {
	s := C.eglQueryString(eglDisplay(dpy), C.EGLint(name))
	if s == nil {
		// Client extensions are unsupported before EGL 1.5 and raise EGL_BAD_DISPLAY.
		_ = C.eglGetError()
		return ""
	}
	return C.GoString(s)
}

func (libEGL) GetDisplay(id NativeDisplay) Display {
	return Display(uintptr(unsafe.Pointer(C.gbmdisplayGetDisplay(C.uintptr_t(id)))))
}

func (libEGL) GetPlatformDisplayEXT(fn Proc, platform Enum, native unsafe.Pointer) Display {
	return Display(uintptr(unsafe.Pointer(C.gbmdisplayGetPlatformDisplayEXT(unsafe.Pointer(uintptr(fn)), C.EGLenum(platform), native))))
}

func (libEGL) GetPlatformDisplay(fn Proc, platform Enum, native unsafe.Pointer) Display {
	return Display(uintptr(unsafe.Pointer(C.gbmdisplayGetPlatformDisplay(unsafe.Pointer(uintptr(fn)), C.EGLenum(platform), native))))
}

func (libEGL) Initialize(dpy Display) (int, int, error) {
	var major, minor C.EGLint
	if C.eglInitialize(eglDisplay(dpy), &major, &minor) == 0 {
		return 0, 0, Error(C.eglGetError())
	}
	return int(major), int(minor), nil
}

func (libEGL) GetProcAddress(name string) Proc {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Proc(uintptr(unsafe.Pointer(C.eglGetProcAddress(cname))))
}

func (libEGL) CreateSync(fn Proc, dpy Display, typ Enum) Sync {
	return Sync(uintptr(unsafe.Pointer(C.gbmdisplayCreateSync(unsafe.Pointer(uintptr(fn)), eglDisplay(dpy), C.EGLenum(typ)))))
}

func (libEGL) ClientWaitSync(fn Proc, dpy Display, sync Sync, flags Int, timeout Time) Int {
	return Int(C.gbmdisplayClientWaitSync(unsafe.Pointer(uintptr(fn)), eglDisplay(dpy), C.EGLSyncKHR(unsafe.Pointer(uintptr(sync))), C.EGLint(flags), C.EGLTimeKHR(timeout)))
}

func (libEGL) DestroySync(fn Proc, dpy Display, sync Sync) bool {
	return C.gbmdisplayDestroySync(unsafe.Pointer(uintptr(fn)), eglDisplay(dpy), C.EGLSyncKHR(unsafe.Pointer(uintptr(sync)))) != 0
}
