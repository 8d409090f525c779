// Package match finds every occurrence of a pattern in a byte sequence.
//
// Two matchers share one contract, (text, pattern) → offsets: BruteForce
// compares the pattern at every offset, RabinKarp slides a modular
// polynomial hash over the text and verifies each hash hit literally. For
// any input both return the same offsets, whatever base and modulus the
// rolling hash is configured with.
//
// An empty pattern matches at every offset 0..len(text), including the one
// just past the last byte. Offsets are byte offsets.
package match

import (
	"errors"
	"fmt"

	"github.com/mhr3/substr/internal/bytealg"
)

// Sequence is the set of text and pattern types accepted by the matchers.
type Sequence interface {
	~string | ~[]byte
}

const (
	// DefaultBase covers the byte range.
	DefaultBase = 256
	// DefaultModulus is a prime near 10^8, small enough for the 64-bit
	// arithmetic path.
	DefaultModulus = 100000007
)

var (
	ErrInvalidBase    = errors.New("match: base must be positive")
	ErrInvalidModulus = errors.New("match: modulus must be positive")
)

// hashParams is a validated rolling hash configuration.
type hashParams struct {
	md   bytealg.Modulus
	base uint64 // reduced modulo md
	fold bool
}

func newHashParams(base, modulus int, fold bool) (hashParams, error) {
	if base <= 0 {
		return hashParams{}, fmt.Errorf("%w: got %d", ErrInvalidBase, base)
	}
	if modulus <= 0 {
		return hashParams{}, fmt.Errorf("%w: got %d", ErrInvalidModulus, modulus)
	}
	md := bytealg.NewModulus(uint64(modulus))
	return hashParams{md: md, base: md.Reduce(uint64(base)), fold: fold}, nil
}

var defaultParams = hashParams{
	md:   bytealg.NewModulus(DefaultModulus),
	base: DefaultBase,
}

// allOffsets is the match set of an empty pattern.
func allOffsets(n int) []int {
	offsets := make([]int, n+1)
	for i := range offsets {
		offsets[i] = i
	}
	return offsets
}
