package switchpad

import "golang.org/x/exp/constraints"

// JoystickMax is the magnitude of a fully deflected calibrated axis.
const JoystickMax = 32767

// MapAxis converts a raw axis reading to [-JoystickMax, JoystickMax] using
// the linear segment between center and the matching extreme. A degenerate
// calibration whose segment has zero length maps to 0.
func MapAxis(cal AxisCalibration, raw int32) int32 {
	center := int64(cal.Center)
	v := int64(raw)

	var out int64
	if v > center {
		if span := int64(cal.Max) - center; span != 0 {
			out = (v - center) * JoystickMax / span
		}
	} else {
		if span := center - int64(cal.Min); span != 0 {
			out = (center - v) * -JoystickMax / span
		}
	}
	return int32(clamp(out, -JoystickMax, JoystickMax))
}

func clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
