package domain

import (
	"github.com/nandolawson/keyforge95/internal/errors"
)

var (
	// ErrInvalidFormat indicates the input matches neither the retail nor the OEM layout.
	ErrInvalidFormat = errors.Wrap(errors.ErrInvalidInput, "invalid format")

	// ErrInvalidKey indicates a well-formed key whose blocks fail their checksum rules.
	ErrInvalidKey = errors.Wrap(errors.ErrInvalidInput, "invalid key")

	// ErrInvalidKeyType indicates a key type other than retail or oem.
	ErrInvalidKeyType = errors.Wrap(errors.ErrInvalidInput, "invalid key type")

	// ErrInvalidBatchSize indicates a batch size outside the configured bounds.
	ErrInvalidBatchSize = errors.Wrap(errors.ErrInvalidInput, "invalid batch size")

	// ErrGenerationDisabled indicates key generation is switched off.
	ErrGenerationDisabled = errors.Wrap(errors.ErrForbidden, "key generation is disabled")

	// ErrMalformedBlock indicates non-digit content reached the block checksum after the
	// format check accepted it.
	ErrMalformedBlock = errors.Wrap(errors.ErrInternal, "malformed block")

	// ErrAttemptsExhausted indicates the random source never produced an acceptable block.
	ErrAttemptsExhausted = errors.Wrap(errors.ErrInternal, "block generation attempts exhausted")
)

// Rejection reports the machine code and short reason of a validation rejection. ok is
// false for errors that are not rejections, such as internal faults.
func Rejection(err error) (code, reason string, ok bool) {
	switch {
	case errors.Is(err, ErrInvalidFormat):
		return "invalid_format", "invalid format", true
	case errors.Is(err, ErrInvalidKey):
		return "invalid_key", "invalid key", true
	default:
		return "", "", false
	}
}
