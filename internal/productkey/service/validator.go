package service

import (
	"strings"

	apperrors "github.com/nandolawson/keyforge95/internal/errors"
	"github.com/nandolawson/keyforge95/internal/productkey/domain"
)

type validator struct{}

// NewValidator returns the product key validator.
func NewValidator() Validator {
	return &validator{}
}

// Validate checks the key format first, then the checksum of every checked block.
// Returns domain.ErrInvalidFormat for a wrong layout and domain.ErrInvalidKey for a
// well-formed key that fails a checksum.
func (v *validator) Validate(key string) (domain.KeyType, error) {
	return Validate(key)
}

// blockSlice locates a checked block inside a key.
type blockSlice struct {
	kind       domain.BlockKind
	start, end int
}

var (
	retailBlocks = []blockSlice{
		{kind: domain.BlockA, start: 0, end: 3},
		{kind: domain.BlockC, start: 4, end: 11},
	}
	// Block E is never checksum-validated.
	oemBlocks = []blockSlice{
		{kind: domain.BlockB, start: 0, end: 5},
		{kind: domain.BlockD, start: 10, end: 17},
	}
)

// Validate is the package-level form of Validator.Validate.
func Validate(key string) (domain.KeyType, error) {
	if !IsWellFormed(key) {
		return 0, domain.ErrInvalidFormat
	}

	keyType := domain.Retail
	blocks := retailBlocks
	if len(key) == domain.OemKeyLength {
		keyType = domain.Oem
		blocks = oemBlocks
	}

	for _, b := range blocks {
		ok, err := CheckBlock(b.kind, key[b.start:b.end])
		if err != nil {
			return 0, apperrors.Wrapf(err, "%s key passed the format check", keyType)
		}
		if !ok {
			return 0, domain.ErrInvalidKey
		}
	}

	return keyType, nil
}

// IsValid reports whether key is a valid retail or OEM key.
func IsValid(key string) bool {
	_, err := Validate(key)
	return err == nil
}

// IsWellFormed reports whether s has the retail or OEM layout. Block values are not
// checked.
func IsWellFormed(s string) bool {
	switch len(s) {
	case domain.RetailKeyLength:
		return allDigits(s[0:3]) &&
			s[3] == '-' &&
			allDigits(s[4:11])
	case domain.OemKeyLength:
		return allDigits(s[0:5]) &&
			s[5:10] == domain.OemMarker &&
			allDigits(s[10:17]) &&
			s[17] == '-' &&
			allDigits(s[18:23])
	default:
		return false
	}
}

// IsValidBlock checks a block whose kind is inferred from its length: 3 is block A,
// 5 is block B, 7 is block C and 8 is block D followed by its trailing hyphen.
// Any other length, or non-digit content, is rejected.
func IsValidBlock(block string) bool {
	var kind domain.BlockKind
	switch len(block) {
	case 3:
		kind = domain.BlockA
	case 5:
		kind = domain.BlockB
	case 7:
		kind = domain.BlockC
	case 8:
		kind = domain.BlockD
		block = block[:7]
	default:
		return false
	}

	ok, err := CheckBlock(kind, block)
	return err == nil && ok
}

// CheckBlock applies the acceptance rule of kind to block. A block of the wrong width is
// rejected; non-digit content returns domain.ErrMalformedBlock.
func CheckBlock(kind domain.BlockKind, block string) (bool, error) {
	if len(block) != kind.Width() {
		return false, nil
	}
	if !allDigits(block) {
		return false, apperrors.Wrapf(domain.ErrMalformedBlock, "block %s %q", kind, block)
	}

	switch kind {
	case domain.BlockA:
		v := atoi(block)
		// 333, 444, ..., 999 are excluded.
		return !(v%111 == 0 && v/111 >= 3 && v/111 <= 9), nil
	case domain.BlockB:
		head, tail := atoi(block[:3]), atoi(block[3:])
		return head <= 366 && tail >= 4 && tail <= 93, nil
	case domain.BlockC:
		return !strings.ContainsRune(block, '9') && digitSum(block)%7 == 0, nil
	case domain.BlockD:
		return digitSum(block)%7 == 0, nil
	case domain.BlockE:
		return true, nil
	default:
		return false, nil
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// atoi converts a string of ASCII digits. Callers check allDigits first.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

func digitSum(s string) int {
	sum := 0
	for i := 0; i < len(s); i++ {
		sum += int(s[i] - '0')
	}
	return sum
}
