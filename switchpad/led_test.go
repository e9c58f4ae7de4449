package switchpad

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeLEDs(t *testing.T) {
	tests := []struct {
		mask    uint8
		want    PlayerNumber
		wantErr bool
	}{
		{mask: 0b0000, wantErr: true},
		{mask: 0b0001, want: PlayerOne},
		{mask: 0b0010, wantErr: true},
		{mask: 0b0011, want: PlayerTwo},
		{mask: 0b0100, wantErr: true},
		{mask: 0b0101, want: PlayerSix},
		{mask: 0b0110, want: PlayerEight},
		{mask: 0b0111, want: PlayerThree},
		{mask: 0b1000, want: PlayerOne},
		{mask: 0b1001, want: PlayerFive},
		{mask: 0b1010, want: PlayerSix},
		{mask: 0b1011, want: PlayerSeven},
		{mask: 0b1100, want: PlayerTwo},
		{mask: 0b1101, want: PlayerSeven},
		{mask: 0b1110, want: PlayerThree},
		{mask: 0b1111, want: PlayerFour},
		// flashing nibble is folded into the solid one
		{mask: 0x10, want: PlayerOne},
		{mask: 0x12, want: PlayerTwo},
		{mask: 0xF0, want: PlayerFour},
		{mask: 0x20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%08b", tt.mask), func(t *testing.T) {
			got, err := DecodeLEDs(tt.mask)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownLEDPattern)
				assert.Equal(t, PlayerUnknown, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got, "mask %04b", tt.mask)
		})
	}
}
