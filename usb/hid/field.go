package hid

// Extract reads an unsigned field of width bits (1-32) starting at bit offset
// off of report. Bits are numbered LSB-first within each byte, and fields may
// span byte boundaries. The caller guarantees report covers the field.
func Extract(report []byte, off uint, width uint) uint32 {
	if width == 0 {
		return 0
	}
	if width > 32 {
		width = 32
	}

	idx := off / 8
	shift := off % 8
	var v uint64
	var got uint
	for n := int(width); n > 0; {
		v |= uint64(report[idx]>>shift) << got
		take := 8 - shift
		n -= int(take)
		got += take
		shift = 0
		idx++
	}
	return uint32(v & (uint64(1)<<width - 1))
}
