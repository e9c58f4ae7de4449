package switchpad

// ApplyButtonCombos rewrites the chords that stand in for buttons the
// controller is missing in pass-through use: Minus+Down is Home, Minus+Up is
// Capture. Both chords are tested against the buttons as they were on entry.
func ApplyButtonCombos(b Buttons) Buttons {
	out := b
	if b.Has(ButtonMinus | ButtonDown) {
		out |= ButtonHome
		out &^= ButtonMinus | ButtonDown
	}
	if b.Has(ButtonMinus | ButtonUp) {
		out |= ButtonCapture
		out &^= ButtonMinus | ButtonUp
	}
	return out
}
