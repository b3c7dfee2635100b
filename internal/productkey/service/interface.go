// Package service implements the product key algorithm: the format grammar, the block
// checksum predicates and the rejection-sampling generator built on top of them.
// Generation and validation share CheckBlock, so every generated key validates.
package service

import (
	"github.com/nandolawson/keyforge95/internal/productkey/domain"
)

// Generator produces product keys of a given shape.
type Generator interface {
	Generate(keyType domain.KeyType) (*domain.ProductKey, error)
}

// Validator decides whether a string is a valid product key and reports its shape.
type Validator interface {
	Validate(key string) (domain.KeyType, error)
}

// RandomSource draws uniformly distributed integers in [0, n).
// Implementations must be safe for concurrent use.
type RandomSource interface {
	IntN(n int) (int, error)
}
