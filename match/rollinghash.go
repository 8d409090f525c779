package match

import (
	segascii "github.com/segmentio/asm/ascii"

	"github.com/mhr3/substr/internal/bytealg"
)

// RabinKarp returns the offsets of every occurrence of pattern in text using
// a rolling hash with the given base and modulus.
//
// Every window whose hash equals the pattern's hash is compared literally
// before it is reported, so hash collisions cost time but never produce a
// false match. A small modulus only makes collisions, and therefore
// verifications, more frequent.
//
// It returns ErrInvalidBase or ErrInvalidModulus if either is not positive.
// Moduli up to bytealg.MaxFastModulus use plain 64-bit arithmetic; larger
// ones use 128-bit intermediate products and are equally exact.
func RabinKarp[T Sequence](text, pattern T, base, modulus int) ([]int, error) {
	p, err := newHashParams(base, modulus, false)
	if err != nil {
		return nil, err
	}
	return rabinKarp(text, pattern, p), nil
}

// RabinKarpDefault is RabinKarp with DefaultBase and DefaultModulus.
func RabinKarpDefault[T Sequence](text, pattern T) []int {
	return rabinKarp(text, pattern, defaultParams)
}

// RabinKarpFold is RabinKarp with ASCII case folding: letters are hashed as
// lowercase and hash hits are verified case-insensitively.
func RabinKarpFold[T Sequence](text, pattern T, base, modulus int) ([]int, error) {
	p, err := newHashParams(base, modulus, true)
	if err != nil {
		return nil, err
	}
	return rabinKarp(text, pattern, p), nil
}

func rabinKarp[T Sequence](text, pattern T, p hashParams) []int {
	n, m := len(text), len(pattern)
	if m == 0 {
		return allOffsets(n)
	}
	if m > n {
		return nil
	}

	power := p.md.Power(p.base, m-1)
	target := bytealg.HashPrefix(p.md, pattern, m, p.base, p.fold)
	return rollingScan(text, pattern, p, power, target, -1)
}

// rollingScan slides a window of len(pattern) over text, starting from the
// hash of text[:len(pattern)]. power is base^(len(pattern)-1) and target the
// pattern's hash. It stops after limit matches unless limit is negative.
// The caller handles empty patterns and len(pattern) > len(text).
func rollingScan[T Sequence](text, pattern T, p hashParams, power, target uint64, limit int) []int {
	n, m := len(text), len(pattern)

	verify := bytealg.EqualAt[T]
	if p.fold {
		verify = equalFoldWindow[T]
	}

	h := bytealg.HashPrefix(p.md, text, m, p.base, p.fold)

	var matches []int
	for i := 0; i <= n-m; i++ {
		if h == target && verify(text, i, pattern) {
			matches = append(matches, i)
			if len(matches) == limit {
				break
			}
		}
		if i < n-m {
			out := bytealg.Value(text[i], p.fold)
			in := bytealg.Value(text[i+m], p.fold)
			h = p.md.Slide(h, p.base, power, uint64(out), uint64(in))
		}
	}
	return matches
}

func equalFoldWindow[T Sequence](text T, i int, pattern T) bool {
	return segascii.EqualFoldString(string(text[i:i+len(pattern)]), string(pattern))
}
