package switchpad

import "strings"

// Buttons is the three-byte button block of an input report read as a
// little-endian 24-bit value. Byte 0 carries the right-hand buttons, byte 1
// the shared ones and byte 2 the left-hand buttons.
type Buttons uint32

// Byte 0.
const (
	ButtonY Buttons = 1 << iota
	ButtonX
	ButtonB
	ButtonA
	ButtonRightSR
	ButtonRightSL
	ButtonR
	ButtonZR
)

// Byte 1.
const (
	ButtonMinus Buttons = 1 << (iota + 8)
	ButtonPlus
	ButtonRStick
	ButtonLStick
	ButtonHome
	ButtonCapture
	_
	ButtonChargingGrip
)

// Byte 2.
const (
	ButtonDown Buttons = 1 << (iota + 16)
	ButtonUp
	ButtonRight
	ButtonLeft
	ButtonLeftSR
	ButtonLeftSL
	ButtonL
	ButtonZL
)

// Has reports whether every bit of mask is set.
func (b Buttons) Has(mask Buttons) bool { return b&mask == mask }

var buttonNames = []struct {
	b    Buttons
	name string
}{
	{ButtonY, "Y"}, {ButtonX, "X"}, {ButtonB, "B"}, {ButtonA, "A"},
	{ButtonRightSR, "SR(R)"}, {ButtonRightSL, "SL(R)"}, {ButtonR, "R"}, {ButtonZR, "ZR"},
	{ButtonMinus, "Minus"}, {ButtonPlus, "Plus"}, {ButtonRStick, "RStick"}, {ButtonLStick, "LStick"},
	{ButtonHome, "Home"}, {ButtonCapture, "Capture"}, {ButtonChargingGrip, "Grip"},
	{ButtonDown, "Down"}, {ButtonUp, "Up"}, {ButtonRight, "Right"}, {ButtonLeft, "Left"},
	{ButtonLeftSR, "SR(L)"}, {ButtonLeftSL, "SL(L)"}, {ButtonL, "L"}, {ButtonZL, "ZL"},
}

func (b Buttons) String() string {
	var parts []string
	for _, n := range buttonNames {
		if b&n.b != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}
