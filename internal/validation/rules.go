// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/nandolawson/keyforge95/internal/errors"
	"github.com/nandolawson/keyforge95/internal/productkey/domain"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// KeyTypeName validates that a string names a product key type ("retail" or "oem").
var KeyTypeName = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := domain.ParseKeyType(s)
		return err == nil
	},
	validation.NewError("validation_key_type", "must be one of: retail, oem"),
)
