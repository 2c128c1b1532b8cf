package random

import (
	"crypto/rand"
	"math/big"
)

// Random provides random number generation that can be mocked for
// testing, so puzzle selection is assertable deterministically.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n).
// Panics if n <= 0, like math/rand.Intn.
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with n <= 0")
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand never fails on supported platforms; a constant
		// fallback would quietly break uniform selection
		panic("random: crypto/rand read failed: " + err.Error())
	}
	return int(result.Int64())
}
