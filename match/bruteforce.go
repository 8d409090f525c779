package match

import "github.com/mhr3/substr/internal/bytealg"

// BruteForce returns the offsets of every occurrence of pattern in text,
// comparing the pattern byte by byte at each candidate offset.
//
// Worst case O(len(text)*len(pattern)), e.g. a run of one byte searched for
// a near-full-length pattern that differs in its last byte.
func BruteForce[T Sequence](text, pattern T) []int {
	return bruteForce(text, pattern, bytealg.EqualAt[T])
}

// BruteForceFold is BruteForce with ASCII case folding.
func BruteForceFold[T Sequence](text, pattern T) []int {
	return bruteForce(text, pattern, bytealg.EqualFoldAt[T])
}

func bruteForce[T Sequence](text, pattern T, equalAt func(T, int, T) bool) []int {
	n, m := len(text), len(pattern)
	if m == 0 {
		return allOffsets(n)
	}
	if m > n {
		return nil
	}

	var matches []int
	for i := 0; i <= n-m; i++ {
		if equalAt(text, i, pattern) {
			matches = append(matches, i)
		}
	}
	return matches
}
