package uhid

import (
	"encoding/binary"
	"io"

	"github.com/Alia5/joymux/usb/hid"
	"github.com/Alia5/joymux/virtual"
)

// GamepadReportSize is the length of a gamepad input report: a 16-bit
// button mask followed by four signed 16-bit axes.
const GamepadReportSize = 10

// GamepadDescriptor describes the report built by GamepadReport.
var GamepadDescriptor = hid.Report{Items: []hid.Item{
	hid.UsagePage{Page: hid.UsagePageGenericDesktop},
	hid.Usage{Usage: hid.UsageGamePad},
	hid.Collection{Kind: hid.CollectionApplication, Items: []hid.Item{
		hid.UsagePage{Page: hid.UsagePageButton},
		hid.UsageMinimum{Min: 1},
		hid.UsageMaximum{Max: 16},
		hid.LogicalMinimum{Min: 0},
		hid.LogicalMaximum{Max: 1},
		hid.ReportSize{Bits: 1},
		hid.ReportCount{Count: 16},
		hid.Input{Flags: hid.MainData | hid.MainVar | hid.MainAbs},

		hid.UsagePage{Page: hid.UsagePageGenericDesktop},
		hid.Collection{Kind: hid.CollectionPhysical, Items: []hid.Item{
			hid.Usage{Usage: hid.UsageX},
			hid.Usage{Usage: hid.UsageY},
			hid.Usage{Usage: hid.UsageRx},
			hid.Usage{Usage: hid.UsageRy},
			hid.LogicalMinimum{Min: -32767},
			hid.LogicalMaximum{Max: 32767},
			hid.ReportSize{Bits: 16},
			hid.ReportCount{Count: 4},
			hid.Input{Flags: hid.MainData | hid.MainVar | hid.MainAbs},
		}},
	}},
}}

// GamepadReport is the wire form of a virtual.State.
// Layout:
//
//	Buttons: 2 bytes (LE uint16, virtual.Button bit order)
//	LX, LY:  2 bytes each (LE int16)
//	RX, RY:  2 bytes each (LE int16)
//
// HID axes grow downwards, so Y is negated.
type GamepadReport struct {
	Buttons uint16
	LX, LY  int16
	RX, RY  int16
}

func NewGamepadReport(st virtual.State) GamepadReport {
	return GamepadReport{
		Buttons: uint16(st.Buttons),
		LX:      int16(st.StickL.X),
		LY:      int16(-st.StickL.Y),
		RX:      int16(st.StickR.X),
		RY:      int16(-st.StickR.Y),
	}
}

func (g *GamepadReport) MarshalBinary() ([]byte, error) {
	b := make([]byte, GamepadReportSize)
	binary.LittleEndian.PutUint16(b[0:2], g.Buttons)
	binary.LittleEndian.PutUint16(b[2:4], uint16(g.LX))
	binary.LittleEndian.PutUint16(b[4:6], uint16(g.LY))
	binary.LittleEndian.PutUint16(b[6:8], uint16(g.RX))
	binary.LittleEndian.PutUint16(b[8:10], uint16(g.RY))
	return b, nil
}

func (g *GamepadReport) UnmarshalBinary(data []byte) error {
	if len(data) < GamepadReportSize {
		return io.ErrUnexpectedEOF
	}
	g.Buttons = binary.LittleEndian.Uint16(data[0:2])
	g.LX = int16(binary.LittleEndian.Uint16(data[2:4]))
	g.LY = int16(binary.LittleEndian.Uint16(data[4:6]))
	g.RX = int16(binary.LittleEndian.Uint16(data[6:8]))
	g.RY = int16(binary.LittleEndian.Uint16(data[8:10]))
	return nil
}
