package switchpad

import "github.com/Alia5/joymux/usb/hid"

// StickCenter is the raw reading of a resting 12-bit stick axis.
const StickCenter = 0x800

// Stick is a raw 12-bit stick reading packed as x(12) | y(12) in three bytes.
type Stick struct {
	X, Y uint16
}

// CenteredStick is the neutral raw reading.
var CenteredStick = Stick{X: StickCenter, Y: StickCenter}

func readStick(b []byte) Stick {
	return Stick{
		X: uint16(hid.Extract(b, 0, 12)),
		Y: uint16(hid.Extract(b, 12, 12)),
	}
}

func (s Stick) put(b []byte) {
	b[0] = byte(s.X)
	b[1] = byte(s.X>>8)&0x0F | byte(s.Y<<4)
	b[2] = byte(s.Y >> 4)
}
