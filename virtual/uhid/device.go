package uhid

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Opener returns a fresh handle on the uhid character device. Every handle
// carries exactly one kernel device.
type Opener func() (io.ReadWriteCloser, error)

// OpenPath is the default Opener.
func OpenPath() (io.ReadWriteCloser, error) {
	f, err := os.OpenFile(Path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", Path, err)
	}
	return f, nil
}

// Device is one kernel HID device.
type Device struct {
	mu     sync.Mutex
	rw     io.ReadWriteCloser
	closed bool
}

// Create registers a new kernel device on rw.
func Create(rw io.ReadWriteCloser, p CreateParams) (*Device, error) {
	b, err := encodeCreate2(p)
	if err != nil {
		return nil, err
	}
	if _, err := rw.Write(b); err != nil {
		return nil, fmt.Errorf("uhid create2: %w", err)
	}
	return &Device{rw: rw}, nil
}

func (d *Device) write(b []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return os.ErrClosed
	}
	_, err := d.rw.Write(b)
	return err
}

// Input injects one input report.
func (d *Device) Input(report []byte) error {
	b, err := encodeInput2(report)
	if err != nil {
		return err
	}
	if err := d.write(b); err != nil {
		return fmt.Errorf("uhid input2: %w", err)
	}
	return nil
}

// ReplyGetReport answers an EventGetReport. A non-zero errno fails the
// request in the kernel.
func (d *Device) ReplyGetReport(id uint32, errno uint16, report []byte) error {
	return d.write(encodeGetReportReply(id, errno, report))
}

func (d *Device) ReplySetReport(id uint32, errno uint16) error {
	return d.write(encodeSetReportReply(id, errno))
}

// Events reads kernel events until ctx ends or the device is destroyed.
// fn runs on the reading goroutine.
func (d *Device) Events(ctx context.Context, fn func(Event)) error {
	stop := context.AfterFunc(ctx, func() { _ = d.Destroy() })
	defer stop()

	buf := make([]byte, eventSize)
	for {
		ev, err := readEvent(d.rw, buf)
		if err != nil {
			if ctx.Err() != nil || d.isClosed() {
				return nil
			}
			if err == ErrShortEvent {
				continue
			}
			return fmt.Errorf("uhid read: %w", err)
		}
		fn(ev)
	}
}

func (d *Device) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Destroy removes the kernel device and closes the handle. It is safe to call
// more than once.
func (d *Device) Destroy() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	_, werr := d.rw.Write(newEvent(EventDestroy))
	cerr := d.rw.Close()
	if werr != nil {
		return fmt.Errorf("uhid destroy: %w", werr)
	}
	return cerr
}
