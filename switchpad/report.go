// Package switchpad models the Bluetooth HID reports of a Switch Pro
// Controller: the button block, the packed 12-bit sticks, SPI flash stick
// calibration, player LED patterns and the subcommand framing used to talk
// to the controller.
package switchpad

import (
	"encoding/binary"

	"github.com/Alia5/joymux/usb/hid"
)

// ReportCapacity bounds a single HID report.
const ReportCapacity = 362

// Input report ids.
const (
	ReportIDSubcommandReply byte = 0x21
	ReportIDStandardFull    byte = 0x30
	ReportIDNFCIR           byte = 0x31
	ReportIDSimpleHID       byte = 0x3F
)

// Output report ids.
const (
	ReportIDRumbleSubcommand byte = 0x01
	ReportIDRumbleOnly       byte = 0x10
)

// Offsets within a standard input report (0x21 and 0x30).
const (
	offButtons    = 3
	offLeftStick  = 6
	offRightStick = 9
	offAck        = 13
	offSubcmdID   = 14
	offSPIAddr    = 15
	offSPISize    = 19
	offSPIData    = 20
)

// Report holds the most recent inbound report of one connection. It is
// overwritten in place; bytes past Size keep whatever an earlier, longer
// report left there.
type Report struct {
	Data [ReportCapacity]byte
	Size int
}

// Set copies b into the report, truncating to ReportCapacity.
func (r *Report) Set(b []byte) {
	r.Size = copy(r.Data[:], b)
}

// Bytes returns the valid part of the report.
func (r *Report) Bytes() []byte { return r.Data[:r.Size] }

// ID is the report id, the first byte.
func (r *Report) ID() byte { return r.Data[0] }

// Buttons reads the 24-bit button field.
func (r *Report) Buttons() Buttons {
	return Buttons(hid.Extract(r.Data[offButtons:], 0, 24))
}

// SetButtons overwrites the button field; bits above 23 are dropped.
func (r *Report) SetButtons(b Buttons) {
	r.Data[offButtons] = byte(b)
	r.Data[offButtons+1] = byte(b >> 8)
	r.Data[offButtons+2] = byte(b >> 16)
}

func (r *Report) LeftStick() Stick  { return readStick(r.Data[offLeftStick:]) }
func (r *Report) RightStick() Stick { return readStick(r.Data[offRightStick:]) }

func (r *Report) SetLeftStick(s Stick)  { s.put(r.Data[offLeftStick:]) }
func (r *Report) SetRightStick(s Stick) { s.put(r.Data[offRightStick:]) }

// SubcommandReply returns the subcommand id a 0x21 report answers.
func (r *Report) SubcommandReply() (Subcommand, bool) {
	if r.ID() != ReportIDSubcommandReply {
		return 0, false
	}
	return Subcommand(r.Data[offSubcmdID]), true
}

// SPIFlashRead decodes the reply to an SPI flash read. data runs to the end
// of the buffer; size is the length the controller declared.
func (r *Report) SPIFlashRead() (addr uint32, size byte, data []byte, ok bool) {
	if id, ok := r.SubcommandReply(); !ok || id != SubcommandSPIFlashRead {
		return 0, 0, nil, false
	}
	addr = binary.LittleEndian.Uint32(r.Data[offSPIAddr:])
	return addr, r.Data[offSPISize], r.Data[offSPIData:], true
}
