//go:build linux

package hidraw

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/Alia5/joymux/transport"
)

const (
	iocRead  = 2
	iocWrite = 1

	hidMaxDescriptorSize = 4096
)

func ioc(dir, nr uintptr, size int) uintptr {
	return dir<<30 | uintptr(size)<<16 | 'H'<<8 | nr
}

var (
	hidiocGRDescSize = ioc(iocRead, 0x01, 4)
	hidiocGRDesc     = ioc(iocRead, 0x02, 4+hidMaxDescriptorSize)
)

func setRequest(kind transport.ReportKind, size int) (uintptr, error) {
	switch kind {
	case transport.ReportFeature:
		return ioc(iocRead|iocWrite, 0x06, size), nil
	case transport.ReportInput:
		return ioc(iocRead|iocWrite, 0x09, size), nil
	case transport.ReportOutput:
		return ioc(iocRead|iocWrite, 0x0B, size), nil
	}
	return 0, fmt.Errorf("set %s report: %w", kind, transport.ErrUnsupported)
}

func getRequest(kind transport.ReportKind, size int) (uintptr, error) {
	switch kind {
	case transport.ReportFeature:
		return ioc(iocRead|iocWrite, 0x07, size), nil
	case transport.ReportInput:
		return ioc(iocRead|iocWrite, 0x0A, size), nil
	case transport.ReportOutput:
		return ioc(iocRead|iocWrite, 0x0C, size), nil
	}
	return 0, fmt.Errorf("get %s report: %w", kind, transport.ErrUnsupported)
}

func ioctl(f *os.File, req uintptr, buf []byte) (int, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return 0, err
	}
	var n uintptr
	var errno unix.Errno
	if err := rc.Control(func(fd uintptr) {
		n, _, errno = unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(unsafe.Pointer(&buf[0])))
	}); err != nil {
		return 0, err
	}
	if errno != 0 {
		return 0, errno
	}
	return int(n), nil
}

func reportDescriptor(f *os.File) ([]byte, error) {
	sizeBuf := make([]byte, 4)
	if _, err := ioctl(f, hidiocGRDescSize, sizeBuf); err != nil {
		return nil, fmt.Errorf("HIDIOCGRDESCSIZE: %w", err)
	}
	size := binary.NativeEndian.Uint32(sizeBuf)
	if size > hidMaxDescriptorSize {
		return nil, fmt.Errorf("report descriptor too large: %d", size)
	}

	desc := make([]byte, 4+hidMaxDescriptorSize)
	binary.NativeEndian.PutUint32(desc, size)
	if _, err := ioctl(f, hidiocGRDesc, desc); err != nil {
		return nil, fmt.Errorf("HIDIOCGRDESC: %w", err)
	}
	return desc[4 : 4+size], nil
}

func statusOf(err error) transport.Status {
	if err == nil {
		return 0
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return transport.Status(errno)
	}
	return transport.Status(unix.EIO)
}
