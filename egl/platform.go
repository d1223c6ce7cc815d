package egl

import "unsafe"

// Platform display entry points, from EGL_EXT_platform_base and EGL 1.5.
const (
	GetPlatformDisplayEXT = "eglGetPlatformDisplayEXT"
	GetPlatformDisplay    = "eglGetPlatformDisplay"
)

// PlatformDisplay resolves the platform display for native through the entry point that
// belongs to extension. It returns NoDisplay for an unknown extension or when the driver does
// not provide the entry point.
func PlatformDisplay(lib Library, extension string, platform Enum, native unsafe.Pointer) Display {
	var name string
	switch extension {
	case EXTPlatformBase:
		name = GetPlatformDisplayEXT
	case KHRPlatformBase:
		name = GetPlatformDisplay
	default:
		return NoDisplay
	}

	fn := lib.GetProcAddress(name)
	if fn == 0 {
		return NoDisplay
	}
	if name == GetPlatformDisplayEXT {
		return lib.GetPlatformDisplayEXT(fn, platform, native)
	}
	return lib.GetPlatformDisplay(fn, platform, native)
}
