package hid

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

// extractSlow reads bit by bit; used as the reference for Extract.
func extractSlow(b []byte, off, width uint) uint32 {
	var v uint32
	for i := uint(0); i < width; i++ {
		bit := off + i
		if b[bit/8]&(1<<(bit%8)) != 0 {
			v |= 1 << i
		}
	}
	return v
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		report []byte
		off    uint
		width  uint
		want   uint32
	}{
		{name: "aligned byte", report: []byte{0xAB, 0xCD}, off: 0, width: 8, want: 0xAB},
		{name: "aligned 12 bits", report: []byte{0x34, 0x12}, off: 0, width: 12, want: 0x234},
		{name: "upper nibble 12 bits", report: []byte{0x34, 0x12, 0x56}, off: 4, width: 12, want: 0x123},
		{name: "second byte", report: []byte{0x00, 0x7F}, off: 8, width: 7, want: 0x7F},
		{name: "single bit", report: []byte{0x04}, off: 2, width: 1, want: 1},
		{name: "full 32 aligned", report: []byte{0x78, 0x56, 0x34, 0x12}, off: 0, width: 32, want: 0x12345678},
		{name: "full 32 unaligned", report: []byte{0x80, 0x67, 0x45, 0x23, 0x01}, off: 4, width: 32, want: 0x12345678},
		{name: "zero width", report: []byte{0xFF}, off: 0, width: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.report, tt.off, tt.width))
		})
	}
}

func TestExtractMatchesBitwiseRead(t *testing.T) {
	report := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x23, 0x45, 0x67, 0x89}
	for off := uint(0); off < 8; off++ {
		for width := uint(1); width <= 32; width++ {
			got := Extract(report, off, width)
			assert.Equal(t, extractSlow(report, off, width), got, "off=%d width=%d", off, width)
		}
	}
}

func TestExtractAgainstBigInt(t *testing.T) {
	report := []byte{0x5A, 0xC3, 0x0F, 0xF0, 0x99, 0x66}
	// Little-endian byte order makes the whole report one LSB-first integer.
	be := make([]byte, len(report))
	for i := range report {
		be[len(report)-1-i] = report[i]
	}
	n := new(big.Int).SetBytes(be)

	for off := uint(0); off < 8; off++ {
		for width := uint(1); width <= 32; width++ {
			want := new(big.Int).Rsh(n, off)
			want.And(want, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), width), big.NewInt(1)))
			assert.Equal(t, uint32(want.Uint64()), Extract(report, off, width), "off=%d width=%d", off, width)
		}
	}
}
