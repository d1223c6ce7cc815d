// Package ioctl encodes Linux ioctl requests and issues them on raw descriptors.
package ioctl

import (
	"fmt"
	"reflect"

	"golang.org/x/sys/unix"
)

// Mode is the IOCTL direction.
type Mode uint8

// Modes
const (
	None Mode = iota
	Write
	Read
	ReadWrite = Write | Read
)

// Command to be sent over ioctl.
type Command uintptr

func (c Command) String() string {
	var (
		mode = Mode(c >> 30 & 0x03)
		size = c >> 16 & 0x3fff
		typ  = c >> 8 & 0xff
		nr   = c & 0xff
		str  string
	)
	if mode&Write > 0 {
		str += " write"
	}
	if mode&Read > 0 {
		str += " read"
	}
	return fmt.Sprintf("ioctl%s (%d bytes) %q 0x%02x", str, size, rune(typ), uintptr(nr))
}

// Do executes the ioctl call with a pointer argument.
func Do(fd uintptr, command Command, ptr interface{}) error {
	var p uintptr

	if ptr != nil {
		v := reflect.ValueOf(ptr)
		p = v.Pointer()
	}

	return Call(fd, uintptr(command), p)
}

// Call does a plain ioctl system call, restarting on EINTR like libdrm does.
func Call(fd, command, arg uintptr) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, command, arg)
		switch errno {
		case 0:
			return nil
		case unix.EINTR, unix.EAGAIN:
			continue
		default:
			return fmt.Errorf("%s failed: %w", Command(command), errno)
		}
	}
}

// Encode an ioctl command from its direction, argument size, type byte and number.
func Encode(mode Mode, size uint16, typ byte, nr uint8) Command {
	return Command(mode)<<30 | Command(size&0x3fff)<<16 | Command(typ)<<8 | Command(nr)
}

// Pointer encodes a command whose argument is the value ref points to.
func Pointer(mode Mode, ref interface{}, typ byte, nr uint8) Command {
	size := uint16(reflect.TypeOf(ref).Elem().Size())
	return Encode(mode, size, typ, nr)
}
