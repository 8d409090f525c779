package bytealg

// Bytes is the set of byte sequence types the matchers operate on.
type Bytes interface {
	~string | ~[]byte
}

// ToLower converts ASCII uppercase to lowercase.
func ToLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 0x20
	}
	return b
}

// EqualAt reports whether pattern occurs in text at offset i, comparing
// byte by byte and stopping at the first mismatch. The caller guarantees
// i+len(pattern) <= len(text).
func EqualAt[T Bytes](text T, i int, pattern T) bool {
	if len(pattern) == 0 {
		return true
	}
	window := text[i : i+len(pattern)]
	_ = window[len(pattern)-1] // bounds check hint
	for j := 0; j < len(pattern); j++ {
		if window[j] != pattern[j] {
			return false
		}
	}
	return true
}

// EqualFoldAt is EqualAt with ASCII case folding.
func EqualFoldAt[T Bytes](text T, i int, pattern T) bool {
	if len(pattern) == 0 {
		return true
	}
	window := text[i : i+len(pattern)]
	_ = window[len(pattern)-1] // bounds check hint
	for j := 0; j < len(pattern); j++ {
		a, b := window[j], pattern[j]
		if a != b && ToLower(a) != ToLower(b) {
			return false
		}
	}
	return true
}

// HashPrefix hashes the first n bytes of s with Horner's rule. When fold is
// set, ASCII letters are hashed as lowercase.
func HashPrefix[T Bytes](md Modulus, s T, n int, base uint64, fold bool) uint64 {
	var h uint64
	for i := 0; i < n; i++ {
		h = md.Horner(h, base, uint64(Value(s[i], fold)))
	}
	return h
}

// Value returns the hashed value of b.
func Value(b byte, fold bool) byte {
	if fold {
		return ToLower(b)
	}
	return b
}
