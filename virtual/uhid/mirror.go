package uhid

import (
	"context"
	"errors"
	"log/slog"
	"syscall"

	"github.com/Alia5/joymux/transport"
)

// Host is the controller side the mirror relays host requests to.
type Host interface {
	HandleOutputReport(report []byte) error
	SetReport(ctx context.Context, kind transport.ReportKind, report []byte) error
	GetReport(ctx context.Context, id byte, kind transport.ReportKind) ([]byte, error)
}

// Mirror exposes the physical controller to the local host as a uhid device
// carrying the controller's own report descriptor. Translated input reports
// are injected into it, and the host's output and get/set report requests
// travel back to the controller.
type Mirror struct {
	dev    *Device
	logger *slog.Logger
}

func NewMirror(dev *Device, logger *slog.Logger) *Mirror {
	return &Mirror{dev: dev, logger: logger}
}

func (m *Mirror) Forward(report []byte) error {
	return m.dev.Input(report)
}

// ForwardSetReport drops the result; the mirror answers the kernel from its
// own requests.
func (m *Mirror) ForwardSetReport(status transport.Status) error {
	m.logger.Debug("unsolicited set report result", "status", uint32(status))
	return nil
}

func (m *Mirror) ForwardGetReport(status transport.Status, report []byte) error {
	m.logger.Debug("unsolicited get report result", "status", uint32(status), "len", len(report))
	return nil
}

// Serve relays host requests to host until ctx ends, then destroys the
// device.
func (m *Mirror) Serve(ctx context.Context, host Host) error {
	return m.dev.Events(ctx, func(ev Event) {
		switch ev.Type {
		case EventOutput:
			if err := host.HandleOutputReport(ev.Data); err != nil {
				m.logger.Warn("mirror output report", "error", err)
			}
		case EventGetReport:
			go m.getReport(ctx, host, ev)
		case EventSetReport:
			go m.setReport(ctx, host, ev)
		default:
			m.logger.Debug("mirror event", "type", ev.Type)
		}
	})
}

func (m *Mirror) getReport(ctx context.Context, host Host, ev Event) {
	report, err := host.GetReport(ctx, ev.ReportNum, reportKind(ev.ReportType))
	if rerr := m.dev.ReplyGetReport(ev.ID, errnoOf(err), report); rerr != nil {
		m.logger.Warn("mirror get report reply", "error", rerr)
	}
}

func (m *Mirror) setReport(ctx context.Context, host Host, ev Event) {
	err := host.SetReport(ctx, reportKind(ev.ReportType), ev.Data)
	if rerr := m.dev.ReplySetReport(ev.ID, errnoOf(err)); rerr != nil {
		m.logger.Warn("mirror set report reply", "error", rerr)
	}
}

func reportKind(rtype uint8) transport.ReportKind {
	switch rtype {
	case ReportTypeInput:
		return transport.ReportInput
	case ReportTypeOutput:
		return transport.ReportOutput
	}
	return transport.ReportFeature
}

func errnoOf(err error) uint16 {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint16(errno)
	}
	return uint16(syscall.EIO)
}
