// Package transport defines the HID transport boundary between a physical
// controller connection and a session.
package transport

import (
	"errors"
	"fmt"
)

var ErrUnsupported = errors.New("operation not supported by transport")

// ReportKind selects the report type of a set/get report exchange.
type ReportKind uint8

const (
	ReportInput ReportKind = iota + 1
	ReportOutput
	ReportFeature
)

func (k ReportKind) String() string {
	switch k {
	case ReportInput:
		return "input"
	case ReportOutput:
		return "output"
	case ReportFeature:
		return "feature"
	default:
		return fmt.Sprintf("report_kind(%d)", uint8(k))
	}
}

// Status is the completion status of a set or get report. Zero is success.
type Status uint32

// Err returns nil for success.
func (s Status) Err() error {
	if s == 0 {
		return nil
	}
	return fmt.Errorf("hid report status %#x", uint32(s))
}

// Handler receives inbound events. Calls may arrive from any goroutine.
type Handler interface {
	OnDataReport(report []byte)
	OnSetReportResult(status Status)
	OnGetReportResult(status Status, report []byte)
}

// Transport sends outbound requests. Set and get report completions are
// delivered later through the Handler.
type Transport interface {
	SendData(report []byte) error
	SendSetReport(kind ReportKind, report []byte) error
	SendGetReport(id byte, kind ReportKind) error
}
