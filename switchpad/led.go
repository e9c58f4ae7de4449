package switchpad

import (
	"errors"
	"fmt"
)

// PlayerNumber is the player slot shown by the four player LEDs.
type PlayerNumber uint8

const (
	PlayerUnknown PlayerNumber = iota
	PlayerOne
	PlayerTwo
	PlayerThree
	PlayerFour
	PlayerFive
	PlayerSix
	PlayerSeven
	PlayerEight
)

// ErrUnknownLEDPattern is returned by DecodeLEDs for masks with no player.
var ErrUnknownLEDPattern = errors.New("unknown player LED pattern")

var ledPlayers = [16]PlayerNumber{
	PlayerUnknown, // 0000
	PlayerOne,     // 0001
	PlayerUnknown, // 0010
	PlayerTwo,     // 0011
	PlayerUnknown, // 0100
	PlayerSix,     // 0101
	PlayerEight,   // 0110
	PlayerThree,   // 0111
	PlayerOne,     // 1000
	PlayerFive,    // 1001
	PlayerSix,     // 1010
	PlayerSeven,   // 1011
	PlayerTwo,     // 1100
	PlayerSeven,   // 1101
	PlayerThree,   // 1110
	PlayerFour,    // 1111
}

// DecodeLEDs maps a set-player-lights argument to a player number. The low
// nibble (solid) and high nibble (flashing) are OR-combined first.
func DecodeLEDs(mask uint8) (PlayerNumber, error) {
	p := ledPlayers[(mask&0x0F)|(mask>>4)]
	if p == PlayerUnknown {
		return PlayerUnknown, fmt.Errorf("%w: %#02x", ErrUnknownLEDPattern, mask)
	}
	return p, nil
}

func (p PlayerNumber) String() string {
	if p == PlayerUnknown || p > PlayerEight {
		return "unknown"
	}
	return fmt.Sprintf("player %d", uint8(p))
}
