package viiper

import (
	"encoding/binary"
	"io"

	"github.com/Alia5/joymux/virtual"
)

// XInput button bits of a VIIPER xbox360 device.
const (
	XButtonDPadUp    uint32 = 0x0001
	XButtonDPadDown  uint32 = 0x0002
	XButtonDPadLeft  uint32 = 0x0004
	XButtonDPadRight uint32 = 0x0008
	XButtonStart     uint32 = 0x0010
	XButtonBack      uint32 = 0x0020
	XButtonLThumb    uint32 = 0x0040
	XButtonRThumb    uint32 = 0x0080
	XButtonLShoulder uint32 = 0x0100
	XButtonRShoulder uint32 = 0x0200
	XButtonA         uint32 = 0x1000
	XButtonB         uint32 = 0x2000
	XButtonX         uint32 = 0x4000
	XButtonY         uint32 = 0x8000
)

// XInputStateSize is the fixed frame length on a device stream.
const XInputStateSize = 14

// Face buttons map by position, so the Nintendo A (east) becomes XInput B.
var xinputButtons = []struct {
	from virtual.Button
	to   uint32
}{
	{virtual.ButtonA, XButtonB},
	{virtual.ButtonB, XButtonA},
	{virtual.ButtonX, XButtonY},
	{virtual.ButtonY, XButtonX},
	{virtual.ButtonStickL, XButtonLThumb},
	{virtual.ButtonStickR, XButtonRThumb},
	{virtual.ButtonL, XButtonLShoulder},
	{virtual.ButtonR, XButtonRShoulder},
	{virtual.ButtonPlus, XButtonStart},
	{virtual.ButtonMinus, XButtonBack},
	{virtual.ButtonLeft, XButtonDPadLeft},
	{virtual.ButtonUp, XButtonDPadUp},
	{virtual.ButtonRight, XButtonDPadRight},
	{virtual.ButtonDown, XButtonDPadDown},
}

// XInputState is the frame written to an xbox360 device stream.
// Layout:
//
//	Buttons: 4 bytes (LE uint32)
//	LT: 1 byte
//	RT: 1 byte
//	LX: 2 bytes (LE int16)
//	LY: 2 bytes (LE int16)
//	RX: 2 bytes (LE int16)
//	RY: 2 bytes (LE int16)
type XInputState struct {
	Buttons uint32
	LT, RT  uint8
	LX, LY  int16
	RX, RY  int16
}

// NewXInputState converts a slot state. ZL and ZR are digital, so they pull
// the triggers all the way.
func NewXInputState(st virtual.State) XInputState {
	var x XInputState
	for _, m := range xinputButtons {
		if st.Buttons&m.from != 0 {
			x.Buttons |= m.to
		}
	}
	if st.Buttons&virtual.ButtonZL != 0 {
		x.LT = 0xFF
	}
	if st.Buttons&virtual.ButtonZR != 0 {
		x.RT = 0xFF
	}
	x.LX, x.LY = int16(st.StickL.X), int16(st.StickL.Y)
	x.RX, x.RY = int16(st.StickR.X), int16(st.StickR.Y)
	return x
}

func (x *XInputState) MarshalBinary() ([]byte, error) {
	b := make([]byte, XInputStateSize)
	binary.LittleEndian.PutUint32(b[0:4], x.Buttons)
	b[4] = x.LT
	b[5] = x.RT
	binary.LittleEndian.PutUint16(b[6:8], uint16(x.LX))
	binary.LittleEndian.PutUint16(b[8:10], uint16(x.LY))
	binary.LittleEndian.PutUint16(b[10:12], uint16(x.RX))
	binary.LittleEndian.PutUint16(b[12:14], uint16(x.RY))
	return b, nil
}

func (x *XInputState) UnmarshalBinary(data []byte) error {
	if len(data) < XInputStateSize {
		return io.ErrUnexpectedEOF
	}
	x.Buttons = binary.LittleEndian.Uint32(data[0:4])
	x.LT = data[4]
	x.RT = data[5]
	x.LX = int16(binary.LittleEndian.Uint16(data[6:8]))
	x.LY = int16(binary.LittleEndian.Uint16(data[8:10]))
	x.RX = int16(binary.LittleEndian.Uint16(data[10:12]))
	x.RY = int16(binary.LittleEndian.Uint16(data[12:14]))
	return nil
}
