package egl

import "strings"

// HasExtension reports whether name appears as a whole token in the space separated list.
func HasExtension(extensions, name string) bool {
	if name == "" || !strings.Contains(extensions, name) {
		return false
	}
	for _, ext := range strings.Fields(extensions) {
		if ext == name {
			return true
		}
	}
	return false
}

// PlatformBase returns the preferred platform display extension in extensions, or "".
func PlatformBase(extensions string) string {
	switch {
	case HasExtension(extensions, EXTPlatformBase):
		return EXTPlatformBase
	case HasExtension(extensions, KHRPlatformBase):
		return KHRPlatformBase
	default:
		return ""
	}
}
