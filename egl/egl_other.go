//go:build !linux || !cgo

package egl

import "unsafe"

// DefaultLibrary resolves nothing on builds without libEGL.
var DefaultLibrary Library = unsupported{}

type unsupported struct{}

func (unsupported) QueryString(Display, Enum) string { return "" }
func (unsupported) GetDisplay(NativeDisplay) Display { return NoDisplay }
func (unsupported) GetPlatformDisplayEXT(Proc, Enum, unsafe.Pointer) Display { return NoDisplay }
func (unsupported) GetPlatformDisplay(Proc, Enum, unsafe.Pointer) Display { return NoDisplay }
func (unsupported) Initialize(Display) (int, int, error) { return 0, 0, ErrNotSupported }
func (unsupported) GetProcAddress(string) Proc { return 0 }
func (unsupported) CreateSync(Proc, Display, Enum) Sync { return NoSync }
func (unsupported) ClientWaitSync(Proc, Display, Sync, Int, Time) Int { return 0 }
func (unsupported) DestroySync(Proc, Display, Sync) bool { return false }
