// Package egltest provides an in-memory egl.Library for tests.
package egltest

import (
	"sync"
	"unsafe"

	"github.com/BeatGlow/gbmdisplay/egl"
)

// Displays returned by a default Library.
const (
	DefaultDisplay  egl.Display = 0x1000
	PlatformDisplay egl.Display = 0x2000
)

// Library records every entry point invoked on it. Fields may be changed before use.
type Library struct {
	// Extensions is the client extension string.
	Extensions string

	// Missing lists entry point names GetProcAddress does not resolve.
	Missing map[string]bool

	// Strings are returned by QueryString on a display.
	Strings map[egl.Enum]string

	// Default is returned by GetDisplay.
	Default egl.Display

	// Platform is returned by both platform display constructors.
	Platform egl.Display

	// WaitStatus is returned by ClientWaitSync.
	WaitStatus egl.Int

	// InitError is returned by Initialize.
	InitError error

	// Native and PlatformType are the arguments of the last platform display call.
	Native       unsafe.Pointer
	PlatformType egl.Enum

	// WaitFlags and WaitTimeout are the arguments of the last ClientWaitSync.
	WaitFlags   egl.Int
	WaitTimeout egl.Time

	mu      sync.Mutex
	calls   map[string]int
	live    map[egl.Sync]bool
	next    egl.Sync
	procs   map[egl.Proc]string
	created int
}

// New returns a Library exposing both platform extensions and all fence entry points.
func New() *Library {
	return &Library{
		Extensions: "EGL_EXT_device_base EGL_EXT_platform_base EGL_KHR_platform_base EGL_MESA_platform_gbm",
		Default:    DefaultDisplay,
		Platform:   PlatformDisplay,
		WaitStatus: egl.ConditionSatisfied,
	}
}

func (l *Library) record(name string) {
	if l.calls == nil {
		l.calls = make(map[string]int)
	}
	l.calls[name]++
}

// Calls returns how often the named entry point was invoked.
func (l *Library) Calls(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[name]
}

// Live returns the number of sync objects created and not yet destroyed.
func (l *Library) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}

// Created returns the total number of sync objects created.
func (l *Library) Created() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.created
}

func (l *Library) QueryString(dpy egl.Display, name egl.Enum) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("eglQueryString")
	if dpy == egl.NoDisplay {
		if name == egl.Extensions {
			return l.Extensions
		}
		return ""
	}
	return l.Strings[name]
}

func (l *Library) GetDisplay(id egl.NativeDisplay) egl.Display {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("eglGetDisplay")
	if id != egl.DefaultDisplay {
		return egl.NoDisplay
	}
	return l.Default
}

func (l *Library) GetPlatformDisplayEXT(fn egl.Proc, platform egl.Enum, native unsafe.Pointer) egl.Display {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkProc(fn, egl.GetPlatformDisplayEXT)
	l.record(egl.GetPlatformDisplayEXT)
	l.PlatformType, l.Native = platform, native
	return l.Platform
}

func (l *Library) GetPlatformDisplay(fn egl.Proc, platform egl.Enum, native unsafe.Pointer) egl.Display {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkProc(fn, egl.GetPlatformDisplay)
	l.record(egl.GetPlatformDisplay)
	l.PlatformType, l.Native = platform, native
	return l.Platform
}

func (l *Library) Initialize(dpy egl.Display) (int, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("eglInitialize")
	if l.InitError != nil {
		return 0, 0, l.InitError
	}
	if dpy == egl.NoDisplay {
		return 0, 0, egl.Error(0x3008)
	}
	return 1, 5, nil
}

func (l *Library) GetProcAddress(name string) egl.Proc {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("eglGetProcAddress")
	if l.Missing[name] {
		return 0
	}
	if l.procs == nil {
		l.procs = make(map[egl.Proc]string)
	}
	for p, n := range l.procs {
		if n == name {
			return p
		}
	}
	p := egl.Proc(0x100 + len(l.procs))
	l.procs[p] = name
	return p
}

func (l *Library) checkProc(fn egl.Proc, name string) {
	if l.procs[fn] != name {
		panic("egltest: " + name + " called through unresolved entry point")
	}
}

func (l *Library) CreateSync(fn egl.Proc, dpy egl.Display, typ egl.Enum) egl.Sync {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkProc(fn, egl.CreateSyncKHR)
	l.record(egl.CreateSyncKHR)
	if dpy == egl.NoDisplay || typ != egl.SyncFence {
		return egl.NoSync
	}
	if l.live == nil {
		l.live = make(map[egl.Sync]bool)
	}
	l.next++
	l.live[l.next] = true
	l.created++
	return l.next
}

func (l *Library) ClientWaitSync(fn egl.Proc, dpy egl.Display, sync egl.Sync, flags egl.Int, timeout egl.Time) egl.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkProc(fn, egl.ClientWaitSyncKHR)
	l.record(egl.ClientWaitSyncKHR)
	l.WaitFlags, l.WaitTimeout = flags, timeout
	if !l.live[sync] {
		return 0
	}
	return l.WaitStatus
}

func (l *Library) DestroySync(fn egl.Proc, dpy egl.Display, sync egl.Sync) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkProc(fn, egl.DestroySyncKHR)
	l.record(egl.DestroySyncKHR)
	if !l.live[sync] {
		return false
	}
	delete(l.live, sync)
	return true
}

var _ egl.Library = (*Library)(nil)
