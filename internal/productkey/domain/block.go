package domain

import "fmt"

// Key layout constants.
const (
	RetailKeyLength = 11
	OemKeyLength    = 23

	// OemMarker sits between block B and block D of an OEM key.
	OemMarker = "-OEM-"
	// Separator joins the blocks of a key.
	Separator = "-"
)

// BlockKind identifies a block of a product key. Each kind has its own width, value
// domain and acceptance rule.
type BlockKind uint8

const (
	// BlockA is the first retail block: 3 digits, repeated-digit values 333..999 rejected.
	BlockA BlockKind = iota + 1
	// BlockB is the first OEM block: 3 digits in [0,366] followed by 2 digits in [4,93].
	BlockB
	// BlockC is the second retail block: 7 digits, no 9, digit sum divisible by 7.
	BlockC
	// BlockD is the second OEM block: 7 digits, digit sum divisible by 7.
	BlockD
	// BlockE is the third OEM block: any 5 digits.
	BlockE
)

// Width returns the number of digits in the block.
func (b BlockKind) Width() int {
	switch b {
	case BlockA:
		return 3
	case BlockB, BlockE:
		return 5
	case BlockC, BlockD:
		return 7
	default:
		return 0
	}
}

// Max returns the largest value drawn for the block during generation.
func (b BlockKind) Max() int {
	switch b {
	case BlockA:
		return 998
	case BlockB:
		return 36693
	case BlockC:
		return 8_888_888
	case BlockD:
		return 9_999_999
	case BlockE:
		return 99_999
	default:
		return 0
	}
}

// Format zero-pads v to the block width.
func (b BlockKind) Format(v int) string {
	return fmt.Sprintf("%0*d", b.Width(), v)
}

// String returns the block letter.
func (b BlockKind) String() string {
	switch b {
	case BlockA:
		return "A"
	case BlockB:
		return "B"
	case BlockC:
		return "C"
	case BlockD:
		return "D"
	case BlockE:
		return "E"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint8(b))
	}
}
