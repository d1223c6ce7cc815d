package drm

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/BeatGlow/gbmdisplay/internal/ioctl"
)

// From <drm/drm.h>
const (
	drmIOCTLBase    = 'd'
	drmIOCTLVersion = 0x00
	drmIOCTLGetCap  = 0x0c
)

// Capabilities accepted by [Node.Cap] on render nodes.
const (
	CapPrime              uint64 = 0x05
	CapTimestampMonotonic uint64 = 0x06
	CapSyncObj            uint64 = 0x13
)

// Version describes the kernel driver bound to a node.
type Version struct {
	Major, Minor, Patch int
	Name                string
	Date                string
	Description         string
}

func (v Version) String() string {
	return fmt.Sprintf("%s %d.%d.%d (%s)", v.Name, v.Major, v.Minor, v.Patch, v.Description)
}

type drmVersion struct {
	major, minor, patch int32
	nameLen             uintptr
	name                uintptr
	dateLen             uintptr
	date                uintptr
	descLen             uintptr
	desc                uintptr
}

type drmGetCap struct {
	capability uint64
	value      uint64
}

// Version queries the driver name and version with DRM_IOCTL_VERSION.
func (n *Node) Version() (Version, error) {
	if n.fd < 0 {
		return Version{}, ErrClosed
	}

	var v drmVersion
	cmd := ioctl.Pointer(ioctl.ReadWrite, &v, drmIOCTLBase, drmIOCTLVersion)
	if err := ioctl.Do(uintptr(n.fd), cmd, &v); err != nil {
		return Version{}, err
	}

	name := make([]byte, v.nameLen+1)
	date := make([]byte, v.dateLen+1)
	desc := make([]byte, v.descLen+1)
	v.name = uintptr(unsafe.Pointer(&name[0]))
	v.date = uintptr(unsafe.Pointer(&date[0]))
	v.desc = uintptr(unsafe.Pointer(&desc[0]))
	err := ioctl.Do(uintptr(n.fd), cmd, &v)
	runtime.KeepAlive(name)
	runtime.KeepAlive(date)
	runtime.KeepAlive(desc)
	if err != nil {
		return Version{}, err
	}

	return Version{
		Major:       int(v.major),
		Minor:       int(v.minor),
		Patch:       int(v.patch),
		Name:        cString(name, v.nameLen),
		Date:        cString(date, v.dateLen),
		Description: cString(desc, v.descLen),
	}, nil
}

// Cap queries a driver capability with DRM_IOCTL_GET_CAP.
func (n *Node) Cap(capability uint64) (uint64, error) {
	if n.fd < 0 {
		return 0, ErrClosed
	}

	c := drmGetCap{capability: capability}
	if err := ioctl.Do(uintptr(n.fd), ioctl.Pointer(ioctl.ReadWrite, &c, drmIOCTLBase, drmIOCTLGetCap), &c); err != nil {
		return 0, err
	}
	return c.value, nil
}

func cString(b []byte, n uintptr) string {
	if n > uintptr(len(b)-1) {
		n = uintptr(len(b) - 1)
	}
	return string(b[:n])
}
