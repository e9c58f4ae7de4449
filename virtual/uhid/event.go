// Package uhid creates HID devices in the kernel through /dev/uhid. It backs
// both the virtual slot driver and the mirror consumer.
package uhid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Path is the uhid character device.
const Path = "/dev/uhid"

// EventType is the uhid_event type field.
type EventType uint32

const (
	EventDestroy        EventType = 1
	EventStart          EventType = 2
	EventStop           EventType = 3
	EventOpen           EventType = 4
	EventClose          EventType = 5
	EventOutput         EventType = 6
	EventGetReport      EventType = 9
	EventGetReportReply EventType = 10
	EventCreate2        EventType = 11
	EventInput2         EventType = 12
	EventSetReport      EventType = 13
	EventSetReportReply EventType = 14
)

func (t EventType) String() string {
	switch t {
	case EventDestroy:
		return "destroy"
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventOutput:
		return "output"
	case EventGetReport:
		return "get_report"
	case EventGetReportReply:
		return "get_report_reply"
	case EventCreate2:
		return "create2"
	case EventInput2:
		return "input2"
	case EventSetReport:
		return "set_report"
	case EventSetReportReply:
		return "set_report_reply"
	}
	return fmt.Sprintf("event(%d)", uint32(t))
}

// Report types used by get/set report requests.
const (
	ReportTypeFeature uint8 = 0
	ReportTypeOutput  uint8 = 1
	ReportTypeInput   uint8 = 2
)

const (
	dataMax   = 4096
	nameLen   = 128
	physLen   = 64
	uniqLen   = 64
	eventSize = 4 + nameLen + physLen + uniqLen + 2 + 2 + 4*4 + dataMax
)

// Bus types from linux/input.h.
const (
	BusBluetooth uint16 = 0x05
	BusVirtual   uint16 = 0x06
)

// IDs of a real Pro Controller. Only a device that speaks its protocol may
// carry them, since hid-nintendo binds to them and runs its handshake.
const (
	VendorNintendo       uint32 = 0x057E
	ProductProController uint32 = 0x2009
)

var ErrShortEvent = errors.New("short uhid event")

// CreateParams describes the device handed to the kernel.
type CreateParams struct {
	Name       string
	Phys       string
	Uniq       string
	Bus        uint16
	Vendor     uint32
	Product    uint32
	Version    uint32
	Country    uint32
	Descriptor []byte
}

// Event is a decoded kernel to user event.
type Event struct {
	Type EventType
	// ID correlates get/set report requests with their replies.
	ID         uint32
	ReportNum  uint8
	ReportType uint8
	Data       []byte
}

func newEvent(t EventType) []byte {
	b := make([]byte, eventSize)
	binary.NativeEndian.PutUint32(b, uint32(t))
	return b
}

func putString(b []byte, s string) {
	copy(b[:len(b)-1], s)
}

func encodeCreate2(p CreateParams) ([]byte, error) {
	if len(p.Descriptor) == 0 || len(p.Descriptor) > dataMax {
		return nil, fmt.Errorf("report descriptor size %d out of range", len(p.Descriptor))
	}
	b := newEvent(EventCreate2)
	o := 4
	putString(b[o:o+nameLen], p.Name)
	o += nameLen
	putString(b[o:o+physLen], p.Phys)
	o += physLen
	putString(b[o:o+uniqLen], p.Uniq)
	o += uniqLen
	binary.NativeEndian.PutUint16(b[o:], uint16(len(p.Descriptor)))
	binary.NativeEndian.PutUint16(b[o+2:], p.Bus)
	binary.NativeEndian.PutUint32(b[o+4:], p.Vendor)
	binary.NativeEndian.PutUint32(b[o+8:], p.Product)
	binary.NativeEndian.PutUint32(b[o+12:], p.Version)
	binary.NativeEndian.PutUint32(b[o+16:], p.Country)
	copy(b[o+20:], p.Descriptor)
	return b, nil
}

func encodeInput2(report []byte) ([]byte, error) {
	if len(report) > dataMax {
		return nil, fmt.Errorf("input report size %d out of range", len(report))
	}
	b := newEvent(EventInput2)
	binary.NativeEndian.PutUint16(b[4:], uint16(len(report)))
	copy(b[6:], report)
	return b, nil
}

func encodeGetReportReply(id uint32, errno uint16, report []byte) []byte {
	b := newEvent(EventGetReportReply)
	binary.NativeEndian.PutUint32(b[4:], id)
	binary.NativeEndian.PutUint16(b[8:], errno)
	n := copy(b[12:], report)
	binary.NativeEndian.PutUint16(b[10:], uint16(n))
	return b
}

func encodeSetReportReply(id uint32, errno uint16) []byte {
	b := newEvent(EventSetReportReply)
	binary.NativeEndian.PutUint32(b[4:], id)
	binary.NativeEndian.PutUint16(b[8:], errno)
	return b
}

func decodeEvent(b []byte) (Event, error) {
	if len(b) < 4 {
		return Event{}, ErrShortEvent
	}
	ev := Event{Type: EventType(binary.NativeEndian.Uint32(b))}
	p := b[4:]
	switch ev.Type {
	case EventOutput:
		// data[4096], size u16, rtype u8
		if len(p) < dataMax+3 {
			return ev, ErrShortEvent
		}
		size := min(int(binary.NativeEndian.Uint16(p[dataMax:])), dataMax)
		ev.Data = append([]byte(nil), p[:size]...)
		ev.ReportType = p[dataMax+2]
	case EventGetReport:
		if len(p) < 6 {
			return ev, ErrShortEvent
		}
		ev.ID = binary.NativeEndian.Uint32(p)
		ev.ReportNum = p[4]
		ev.ReportType = p[5]
	case EventSetReport:
		if len(p) < 8 {
			return ev, ErrShortEvent
		}
		ev.ID = binary.NativeEndian.Uint32(p)
		ev.ReportNum = p[4]
		ev.ReportType = p[5]
		size := min(int(binary.NativeEndian.Uint16(p[6:])), len(p)-8)
		ev.Data = append([]byte(nil), p[8:8+size]...)
	}
	return ev, nil
}

func readEvent(r io.Reader, buf []byte) (Event, error) {
	n, err := r.Read(buf)
	if err != nil {
		return Event{}, err
	}
	return decodeEvent(buf[:n])
}
