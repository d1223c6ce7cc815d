// Package egl exposes the EGL entry points needed to bind a GBM device to an EGL display
// and to pace frames with fence syncs.
//
// Entry points that are not guaranteed to exist at build time are resolved at runtime by
// name through [Library.GetProcAddress] instead of being linked statically.
package egl

import (
	"errors"
	"fmt"
	"unsafe"
)

// Handles and scalar types, sized like their EGL counterparts.
type (
	// Display is an EGLDisplay.
	Display uintptr

	// Sync is an EGLSyncKHR.
	Sync uintptr

	// Proc is a driver entry point returned by eglGetProcAddress.
	Proc uintptr

	// NativeDisplay is an EGLNativeDisplayType.
	NativeDisplay uintptr

	// Enum is an EGLenum.
	Enum uint32

	// Int is an EGLint.
	Int int32

	// Time is an EGLTimeKHR in nanoseconds.
	Time uint64
)

// From <EGL/egl.h> and <EGL/eglext.h>
const (
	NoDisplay      Display       = 0
	NoSync         Sync          = 0
	DefaultDisplay NativeDisplay = 0

	Vendor     Enum = 0x3053
	Version    Enum = 0x3054
	Extensions Enum = 0x3055
	ClientAPIs Enum = 0x308D

	PlatformGBM Enum = 0x31D7 // EGL_PLATFORM_GBM_KHR

	SyncFence            Enum = 0x30F9 // EGL_SYNC_FENCE_KHR
	SyncFlushCommandsBit Int  = 0x0001 // EGL_SYNC_FLUSH_COMMANDS_BIT_KHR
	TimeoutExpired       Int  = 0x30F5 // EGL_TIMEOUT_EXPIRED_KHR
	ConditionSatisfied   Int  = 0x30F6 // EGL_CONDITION_SATISFIED_KHR
	Forever              Time = 0xFFFFFFFFFFFFFFFF
)

// Platform display extensions, in order of preference.
const (
	EXTPlatformBase = "EGL_EXT_platform_base"
	KHRPlatformBase = "EGL_KHR_platform_base"
)

// Errors
var (
	ErrNotSupported = errors.New("egl: not supported")
)

// Library is the set of EGL entry points used by this module.
type Library interface {
	// QueryString returns the string for name, or "" when the query fails. Use NoDisplay for
	// display-independent (client) strings.
	QueryString(dpy Display, name Enum) string

	// GetDisplay returns the display for a native display connection.
	GetDisplay(id NativeDisplay) Display

	// GetPlatformDisplayEXT calls the eglGetPlatformDisplayEXT entry point fn without attributes.
	GetPlatformDisplayEXT(fn Proc, platform Enum, native unsafe.Pointer) Display

	// GetPlatformDisplay calls the eglGetPlatformDisplay entry point fn without attributes.
	GetPlatformDisplay(fn Proc, platform Enum, native unsafe.Pointer) Display

	// Initialize calls eglInitialize and returns the EGL version.
	Initialize(dpy Display) (major, minor int, err error)

	// GetProcAddress resolves an entry point by name, 0 if the driver does not provide it.
	GetProcAddress(name string) Proc

	// CreateSync calls the eglCreateSyncKHR entry point fn without attributes.
	CreateSync(fn Proc, dpy Display, typ Enum) Sync

	// ClientWaitSync calls the eglClientWaitSyncKHR entry point fn.
	ClientWaitSync(fn Proc, dpy Display, sync Sync, flags Int, timeout Time) Int

	// DestroySync calls the eglDestroySyncKHR entry point fn.
	DestroySync(fn Proc, dpy Display, sync Sync) bool
}

// Error is an EGL error code as returned by eglGetError.
type Error Int

var errorNames = map[Error]string{
	0x3000: "EGL_SUCCESS",
	0x3001: "EGL_NOT_INITIALIZED",
	0x3002: "EGL_BAD_ACCESS",
	0x3003: "EGL_BAD_ALLOC",
	0x3004: "EGL_BAD_ATTRIBUTE",
	0x3005: "EGL_BAD_CONFIG",
	0x3006: "EGL_BAD_CONTEXT",
	0x3007: "EGL_BAD_CURRENT_SURFACE",
	0x3008: "EGL_BAD_DISPLAY",
	0x3009: "EGL_BAD_MATCH",
	0x300A: "EGL_BAD_NATIVE_PIXMAP",
	0x300B: "EGL_BAD_NATIVE_WINDOW",
	0x300C: "EGL_BAD_PARAMETER",
	0x300D: "EGL_BAD_SURFACE",
	0x300E: "EGL_CONTEXT_LOST",
}

func (e Error) Error() string {
	if name, ok := errorNames[e]; ok {
		return "egl: " + name
	}
	return fmt.Sprintf("egl: error %#04x", Int(e))
}
