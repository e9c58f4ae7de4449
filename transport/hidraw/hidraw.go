// Package hidraw runs a transport over a Linux hidraw node.
//
// Data reports are read in a loop. hidraw answers set and get report
// ioctls synchronously, so completions are handed to the Handler from a
// separate goroutine to keep the asynchronous contract of the boundary.
package hidraw

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/Alia5/joymux/transport"
)

const maxReport = 4096

// Device is an open hidraw node.
type Device struct {
	f      *os.File
	logger *slog.Logger

	mu      sync.Mutex
	handler transport.Handler
	wg      sync.WaitGroup
}

// Open opens path read/write.
func Open(path string, logger *slog.Logger) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open hidraw: %w", err)
	}
	return &Device{f: f, logger: logger}, nil
}

// Serve delivers inbound data reports to h until ctx ends or the device
// fails. The handler also receives set/get report completions.
func (d *Device) Serve(ctx context.Context, h transport.Handler) error {
	d.mu.Lock()
	d.handler = h
	d.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { _ = d.f.Close() })
	defer stop()

	buf := make([]byte, maxReport)
	for {
		n, err := d.f.Read(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, os.ErrClosed) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read hidraw: %w", err)
		}
		if n == 0 {
			continue
		}
		h.OnDataReport(buf[:n])
	}
}

func (d *Device) SendData(report []byte) error {
	if _, err := d.f.Write(report); err != nil {
		return fmt.Errorf("write hidraw: %w", err)
	}
	return nil
}

func (d *Device) SendSetReport(kind transport.ReportKind, report []byte) error {
	req, err := setRequest(kind, len(report))
	if err != nil {
		return err
	}
	buf := append([]byte(nil), report...)
	d.complete(func(h transport.Handler) {
		_, ierr := ioctl(d.f, req, buf)
		h.OnSetReportResult(statusOf(ierr))
	})
	return nil
}

func (d *Device) SendGetReport(id byte, kind transport.ReportKind) error {
	req, err := getRequest(kind, maxReport)
	if err != nil {
		return err
	}
	d.complete(func(h transport.Handler) {
		buf := make([]byte, maxReport)
		buf[0] = id
		n, ierr := ioctl(d.f, req, buf)
		if ierr != nil {
			h.OnGetReportResult(statusOf(ierr), nil)
			return
		}
		h.OnGetReportResult(0, buf[:n])
	})
	return nil
}

// ReportDescriptor returns the device's HID report descriptor.
func (d *Device) ReportDescriptor() ([]byte, error) {
	return reportDescriptor(d.f)
}

func (d *Device) complete(fn func(h transport.Handler)) {
	d.mu.Lock()
	h := d.handler
	d.mu.Unlock()
	if h == nil {
		d.logger.Warn("hidraw completion dropped, no handler")
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		fn(h)
	}()
}

// Close closes the node and waits for in-flight completions.
func (d *Device) Close() error {
	err := d.f.Close()
	d.wg.Wait()
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
