package domain

// ProductKey is a generated key together with its shape.
type ProductKey struct {
	Value string
	Type  KeyType
	// Attempts is the number of random candidates drawn to build the key.
	Attempts int
}

// String returns the key literal.
func (p *ProductKey) String() string {
	return p.Value
}
