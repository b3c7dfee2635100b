// Package domain defines the product key model: the two key shapes, their blocks and the
// error taxonomy shared by generation and validation.
package domain

import (
	"fmt"
)

// KeyType selects the shape of a product key. The zero value is not a valid key type.
type KeyType uint8

const (
	// Retail keys look like AAA-CCCCCCC.
	Retail KeyType = iota + 1
	// Oem keys look like BBBBB-OEM-DDDDDDD-EEEEE.
	Oem
)

// KeyTypes lists every valid key type in a stable order.
var KeyTypes = []KeyType{Retail, Oem}

// Validate checks if the key type is one of the declared shapes.
func (k KeyType) Validate() error {
	switch k {
	case Retail, Oem:
		return nil
	default:
		return ErrInvalidKeyType
	}
}

// String returns the lowercase name used on the CLI and in JSON.
func (k KeyType) String() string {
	switch k {
	case Retail:
		return "retail"
	case Oem:
		return "oem"
	default:
		return fmt.Sprintf("KeyType(%d)", uint8(k))
	}
}

// Length returns the total length of a key of this type, or 0 for an invalid type.
func (k KeyType) Length() int {
	switch k {
	case Retail:
		return RetailKeyLength
	case Oem:
		return OemKeyLength
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k KeyType) MarshalText() ([]byte, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *KeyType) UnmarshalText(text []byte) error {
	parsed, err := ParseKeyType(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKeyType converts "retail" or "oem" to a KeyType.
func ParseKeyType(s string) (KeyType, error) {
	switch s {
	case "retail":
		return Retail, nil
	case "oem":
		return Oem, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid options: retail, oem)", ErrInvalidKeyType, s)
	}
}
