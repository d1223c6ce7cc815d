// Package gbmdisplay acquires an EGL display on a DRM render node through GBM.
//
// [Open] opens the render node, creates a GBM device on it and resolves an EGL display for
// the GBM platform through EGL_EXT_platform_base or EGL_KHR_platform_base, whichever the EGL
// client extensions advertise. Frame pacing for such displays lives in the vblank package.
package gbmdisplay
