package drm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Errors
var (
	ErrClosed = errors.New("drm: node already closed")
)

// RenderNodeDir is where the kernel exposes DRM device nodes.
var RenderNodeDir = "/dev/dri"

const renderNodePrefix = "renderD"

// Node is an exclusively owned DRM device node descriptor.
type Node struct {
	path string
	fd   int
}

// Open a DRM device node by path. The path is not validated beyond opening it.
func Open(path string) (*Node, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return &Node{path: path, fd: fd}, nil
}

// Path the node was opened from.
func (n *Node) Path() string {
	return n.path
}

// Fd returns the descriptor, or -1 after Close. Ownership stays with the node.
func (n *Node) Fd() int {
	return n.fd
}

func (n *Node) String() string {
	return fmt.Sprintf("DRM node %s (fd %d)", n.path, n.fd)
}

// Close releases the descriptor. Only the first call closes it.
func (n *Node) Close() error {
	if n.fd < 0 {
		return ErrClosed
	}
	fd := n.fd
	n.fd = -1
	if err := unix.Close(fd); err != nil {
		return os.NewSyscallError("close", err)
	}
	return nil
}

// RenderNodes lists the render nodes in RenderNodeDir ordered by minor number.
func RenderNodes() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(RenderNodeDir, renderNodePrefix+"*"))
	if err != nil {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool {
		return renderMinor(matches[i]) < renderMinor(matches[j])
	})
	return matches, nil
}

func renderMinor(path string) int {
	minor, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(path), renderNodePrefix))
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return minor
}
