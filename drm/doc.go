// Package drm provides exclusive access to direct rendering manager (DRM) device nodes.
//
// A [Node] owns the descriptor of an opened device node, typically a render node such as
// /dev/dri/renderD128. The descriptor is opened read/write with close-on-exec and released
// exactly once by [Node.Close].
package drm
