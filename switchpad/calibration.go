package switchpad

import "github.com/Alia5/joymux/usb/hid"

// SPI flash addresses of the calibration blocks.
const (
	AddrFactoryStickLeft  uint32 = 0x603D
	AddrFactoryStickRight uint32 = 0x6046
	AddrUserMagicLeft     uint32 = 0x8010
	AddrUserStickLeft     uint32 = 0x8012
	AddrUserMagicRight    uint32 = 0x801B
	AddrUserStickRight    uint32 = 0x801D
)

// StickCalibrationSize is the length of a packed stick calibration blob.
const StickCalibrationSize = 9

// UserCalibrationMagicSize is the length of the user calibration marker.
const UserCalibrationMagicSize = 2

var userCalibrationMagic = [UserCalibrationMagicSize]byte{0xB2, 0xA1}

// AxisCalibration holds the raw readings of one stick axis at its extremes
// and at rest.
type AxisCalibration struct {
	Min    int32 `json:"min" yaml:"min" toml:"min"`
	Center int32 `json:"center" yaml:"center" toml:"center"`
	Max    int32 `json:"max" yaml:"max" toml:"max"`
}

// StickCalibration is the calibration of both axes of one stick.
type StickCalibration struct {
	X AxisCalibration `json:"x" yaml:"x" toml:"x"`
	Y AxisCalibration `json:"y" yaml:"y" toml:"y"`
}

// ParseStickCalibration decodes a 9-byte blob of six 12-bit fields. The left
// and right stick blobs store the same fields in a different order: left is
// max-above, center, min-below; right is center, min-below, max-above.
func ParseStickCalibration(raw []byte, left bool) StickCalibration {
	field := func(byteOff int, bitOff uint) int32 {
		return int32(hid.Extract(raw[byteOff:], bitOff, 12))
	}

	var xAbove, xBelow, yAbove, yBelow int32
	var c StickCalibration
	if left {
		xAbove, yAbove = field(0, 0), field(1, 4)
		c.X.Center, c.Y.Center = field(3, 0), field(4, 4)
		xBelow, yBelow = field(6, 0), field(7, 4)
	} else {
		c.X.Center, c.Y.Center = field(0, 0), field(1, 4)
		xBelow, yBelow = field(3, 0), field(4, 4)
		xAbove, yAbove = field(6, 0), field(7, 4)
	}

	c.X.Max = c.X.Center + xAbove
	c.X.Min = c.X.Center - xBelow
	c.Y.Max = c.Y.Center + yAbove
	c.Y.Min = c.Y.Center - yBelow
	return c
}

// HasUserCalibrationMagic compares the two marker bytes that precede a user
// calibration block. It returns true when the bytes are NOT the B2 A1 marker.
//
// The result is used as "user calibration present", which reads inverted;
// the comparison is kept literal.
func HasUserCalibrationMagic(raw []byte) bool {
	return raw[0] != userCalibrationMagic[0] || raw[1] != userCalibrationMagic[1]
}

// CalibrationSet is the per-controller calibration state. It starts zeroed
// and fills in as SPI flash read replies arrive, in any order.
type CalibrationSet struct {
	FactoryLeft  StickCalibration `json:"factoryLeft" yaml:"factoryLeft" toml:"factoryLeft"`
	FactoryRight StickCalibration `json:"factoryRight" yaml:"factoryRight" toml:"factoryRight"`
	UserLeft     StickCalibration `json:"userLeft" yaml:"userLeft" toml:"userLeft"`
	UserRight    StickCalibration `json:"userRight" yaml:"userRight" toml:"userRight"`
	HasUserLeft  bool             `json:"hasUserLeft" yaml:"hasUserLeft" toml:"hasUserLeft"`
	HasUserRight bool             `json:"hasUserRight" yaml:"hasUserRight" toml:"hasUserRight"`
}

// Apply routes the payload of an SPI flash read reply into the set. It
// returns false for addresses that carry no stick calibration.
func (c *CalibrationSet) Apply(addr uint32, data []byte) bool {
	switch addr {
	case AddrUserMagicLeft:
		c.HasUserLeft = HasUserCalibrationMagic(data)
	case AddrUserMagicRight:
		c.HasUserRight = HasUserCalibrationMagic(data)
	case AddrFactoryStickLeft:
		c.FactoryLeft = ParseStickCalibration(data, true)
	case AddrFactoryStickRight:
		c.FactoryRight = ParseStickCalibration(data, false)
	case AddrUserStickLeft:
		c.UserLeft = ParseStickCalibration(data, true)
	case AddrUserStickRight:
		c.UserRight = ParseStickCalibration(data, false)
	default:
		return false
	}
	return true
}

// Left returns the calibration in effect for the left stick.
func (c CalibrationSet) Left() StickCalibration {
	if c.HasUserLeft {
		return c.UserLeft
	}
	return c.FactoryLeft
}

// Right returns the calibration in effect for the right stick.
func (c CalibrationSet) Right() StickCalibration {
	if c.HasUserRight {
		return c.UserRight
	}
	return c.FactoryRight
}

// CalibrationReads lists the SPI reads that populate a CalibrationSet.
var CalibrationReads = []struct {
	Addr uint32
	Size byte
}{
	{AddrFactoryStickLeft, StickCalibrationSize},
	{AddrFactoryStickRight, StickCalibrationSize},
	{AddrUserMagicLeft, UserCalibrationMagicSize},
	{AddrUserStickLeft, StickCalibrationSize},
	{AddrUserMagicRight, UserCalibrationMagicSize},
	{AddrUserStickRight, StickCalibrationSize},
}
