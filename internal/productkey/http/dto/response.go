package dto

import (
	"github.com/nandolawson/keyforge95/internal/productkey/domain"
)

// GenerateResponse represents the generated product keys.
type GenerateResponse struct {
	KeyType string   `json:"key_type"`
	Keys    []string `json:"keys"`
}

// MapProductKeysToGenerateResponse converts generated keys to an API response.
func MapProductKeysToGenerateResponse(keyType domain.KeyType, keys []*domain.ProductKey) GenerateResponse {
	values := make([]string, 0, len(keys))
	for _, key := range keys {
		values = append(values, key.Value)
	}
	return GenerateResponse{
		KeyType: keyType.String(),
		Keys:    values,
	}
}

// ValidateResponse represents the verdict on a product key.
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	KeyType string `json:"key_type,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// MapKeyTypeToValidateResponse builds the response for an accepted key.
func MapKeyTypeToValidateResponse(keyType domain.KeyType) ValidateResponse {
	return ValidateResponse{
		Valid:   true,
		KeyType: keyType.String(),
	}
}

// MapRejectionToValidateResponse builds the response for a rejected key. ok is false when
// err is not a validation rejection.
func MapRejectionToValidateResponse(err error) (ValidateResponse, bool) {
	code, reason, ok := domain.Rejection(err)
	if !ok {
		return ValidateResponse{}, false
	}
	return ValidateResponse{
		Valid:   false,
		Error:   code,
		Message: reason,
	}, true
}
