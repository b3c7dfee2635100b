// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/nandolawson/keyforge95/internal/validation"
)

// GenerateRequest contains the parameters for generating product keys.
type GenerateRequest struct {
	KeyType string `json:"key_type"`        // "retail" or "oem"
	Count   *int   `json:"count,omitempty"` // Defaults to 1; the upper bound is enforced by the use case
}

// Validate checks if the generate request is valid.
func (r *GenerateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.KeyType,
			validation.Required,
			customValidation.NotBlank,
			customValidation.KeyTypeName,
		),
		validation.Field(&r.Count,
			validation.NilOrNotEmpty,
			validation.Min(1),
		),
	)
}

// GetCount returns the requested count, or 1 when none was given.
func (r *GenerateRequest) GetCount() int {
	if r.Count == nil {
		return 1
	}
	return *r.Count
}

// ValidateRequest contains the key to validate.
type ValidateRequest struct {
	Key string `json:"key"`
}

// Validate checks if the validate request is valid. The key layout itself is not checked
// here: a malformed key is a regular "invalid_format" answer, not a request error.
func (r *ValidateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Key,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 64),
		),
	)
}
