package gbm

import (
	"errors"
	"os"
	"syscall"
	"testing"
	"unsafe"

	"github.com/BeatGlow/gbmdisplay/drm"
)

type fakeBackend struct {
	fail      bool
	err       error
	created   int
	destroyed int
	fds       []int
	device    byte
}

func (b *fakeBackend) CreateDevice(fd int) (unsafe.Pointer, error) {
	b.fds = append(b.fds, fd)
	if b.fail {
		return nil, b.err
	}
	b.created++
	return unsafe.Pointer(&b.device), nil
}

func (b *fakeBackend) DestroyDevice(dev unsafe.Pointer) {
	if dev != unsafe.Pointer(&b.device) {
		panic("destroying unknown device")
	}
	b.destroyed++
}

func openDescriptors(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skipf("cannot inspect descriptor table: %v", err)
	}
	return len(entries)
}

func TestNewDevice(t *testing.T) {
	before := openDescriptors(t)

	node, err := drm.Open("/dev/null")
	if err != nil {
		t.Fatal(err)
	}
	fd := node.Fd()

	backend := new(fakeBackend)
	dev, err := NewDevice(node, backend)
	if err != nil {
		t.Fatalf("NewDevice() error: %v", err)
	}
	if len(backend.fds) != 1 || backend.fds[0] != fd {
		t.Errorf("expected device created on fd %d, got %v", fd, backend.fds)
	}
	if dev.Pointer() == nil {
		t.Fatal("expected a device pointer")
	}
	if dev.Node() != node {
		t.Error("expected device to own the node")
	}

	if err = dev.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if backend.destroyed != 1 {
		t.Errorf("expected 1 destroy, got %d", backend.destroyed)
	}
	if got := openDescriptors(t); got != before {
		t.Errorf("expected %d descriptors after close, got %d", before, got)
	}

	if err = dev.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if backend.destroyed != 1 {
		t.Errorf("expected destroy exactly once, got %d", backend.destroyed)
	}
	if got := openDescriptors(t); got != before {
		t.Errorf("expected %d descriptors after second close, got %d", before, got)
	}
}

func TestNewDeviceFailureReleasesNode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"errno", syscall.ENOMEM, syscall.ENOMEM},
		{"no errno", nil, ErrCreateDevice},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			before := openDescriptors(t)

			node, err := drm.Open("/dev/null")
			if err != nil {
				t.Fatal(err)
			}

			backend := &fakeBackend{fail: true, err: test.err}
			if _, err = NewDevice(node, backend); !errors.Is(err, test.want) {
				t.Errorf("expected %v, got %v", test.want, err)
			}
			if node.Fd() != -1 {
				t.Error("expected node to be closed")
			}
			if got := openDescriptors(t); got != before {
				t.Errorf("expected %d descriptors, got %d", before, got)
			}
			if backend.destroyed != 0 {
				t.Errorf("expected no destroy, got %d", backend.destroyed)
			}
		})
	}
}
