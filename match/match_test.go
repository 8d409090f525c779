package match

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mersenne61 exercises the 128-bit arithmetic path.
const mersenne61 = 1<<61 - 1

type matcher struct {
	name string
	fn   func(text, pattern string) []int
}

func rabinKarpWith(base, modulus int) func(text, pattern string) []int {
	return func(text, pattern string) []int {
		res, err := RabinKarp(text, pattern, base, modulus)
		if err != nil {
			panic(err)
		}
		return res
	}
}

func searcherWith(opts ...Option) func(text, pattern string) []int {
	return func(text, pattern string) []int {
		s, err := NewSearcher(pattern, opts...)
		if err != nil {
			panic(err)
		}
		return s.IndexAll(text)
	}
}

func bytesMatcher(text, pattern string) []int {
	return RabinKarpDefault([]byte(text), []byte(pattern))
}

var matchers = []matcher{
	{"BruteForce", BruteForce[string]},
	{"BruteForce/bytes", func(text, pattern string) []int { return BruteForce([]byte(text), []byte(pattern)) }},
	{"RabinKarpDefault", RabinKarpDefault[string]},
	{"RabinKarp/bytes", bytesMatcher},
	{"RabinKarp/mod=101", rabinKarpWith(DefaultBase, 101)},
	{"RabinKarp/mod=1", rabinKarpWith(DefaultBase, 1)},
	{"RabinKarp/base=1", rabinKarpWith(1, DefaultModulus)},
	{"RabinKarp/base>mod", rabinKarpWith(1000, 7)},
	{"RabinKarp/mod=2^61-1", rabinKarpWith(257, mersenne61)},
	{"Searcher", searcherWith()},
	{"Searcher/mod=101", searcherWith(WithModulus(101))},
}

var indexAllTests = []struct {
	text, pattern string
	want          []int
}{
	// empty pattern matches everywhere, one past the end included
	{"", "", []int{0}},
	{"abc", "", []int{0, 1, 2, 3}},
	{"", "a", nil},
	// pattern longer than text
	{"ab", "abcd", nil},
	{"abc", "abc", []int{0}},
	{"abc", "abd", nil},
	{"XYZABC", "ABC", []int{3}},
	{"abc", "a", []int{0}},
	{"abc", "b", []int{1}},
	{"abc", "c", []int{2}},
	{"abc", "d", nil},
	// overlapping
	{"abababab", "abab", []int{0, 2, 4}},
	{"abababababab", "ababab", []int{0, 2, 4, 6}},
	{"aaaa", "aa", []int{0, 1, 2}},
	{"aaaa", "a", []int{0, 1, 2, 3}},
	// partial match at the boundaries
	{"xx01x", "012", nil},
	{"012xxxx"[1:], "012", nil},
	{"xxxx012"[:6], "012", nil},
	{"0101x340123401234xxxx", "01234", []int{7, 12}},
	{strings.Repeat("a", 100) + "aab", "aab", []int{100}},
	// non-ASCII bytes
	{"\x80\xff\x80\xff", "\xff\x80", []int{1}},
	{"\x00\x00\x00", "\x00\x00", []int{0, 1}},
	{"日本語日本語", "本語", []int{3, 12}},
	// case is significant
	{"Hello hello", "hello", []int{6}},
}

func TestIndexAll(t *testing.T) {
	for _, m := range matchers {
		for _, tt := range indexAllTests {
			t.Run(fmt.Sprintf("%s/%q/%q", m.name, truncate(tt.text, 20), tt.pattern), func(t *testing.T) {
				assert.Equal(t, tt.want, m.fn(tt.text, tt.pattern))
			})
		}
	}
}

func TestNoMatchPathological(t *testing.T) {
	const n = 2000
	text := strings.Repeat("a", n)
	pattern := strings.Repeat("a", n/2) + "b"

	for _, m := range matchers {
		assert.Empty(t, m.fn(text, pattern), m.name)
	}
}

func TestCollisionRobustness(t *testing.T) {
	text := strings.Repeat("abababababababababab", 500)
	pattern := "ababab"

	want := BruteForce(text, pattern)
	require.Len(t, want, (len(text)-len(pattern))/2+1)

	for _, modulus := range []int{1, 2, 101, 257, DefaultModulus, mersenne61} {
		got, err := RabinKarp(text, pattern, DefaultBase, modulus)
		require.NoError(t, err)
		assert.Equal(t, want, got, "modulus=%d", modulus)
	}
}

func TestTinyModulusCollides(t *testing.T) {
	p, err := newHashParams(DefaultBase, 101, false)
	require.NoError(t, err)

	// 676 two-letter strings over 101 hash values: some pair must collide.
	var a, b string
	seen := map[uint64]string{}
	for x := byte('a'); x <= 'z' && a == ""; x++ {
		for y := byte('a'); y <= 'z'; y++ {
			s := string([]byte{x, y})
			h := p.md.Horner(p.md.Horner(0, p.base, uint64(x)), p.base, uint64(y))
			if prev, ok := seen[h]; ok {
				a, b = prev, s
				break
			}
			seen[h] = s
		}
	}
	require.NotEmpty(t, a, "no colliding pair found")

	text := a + b + a
	res, err := RabinKarp(text, b, DefaultBase, 101)
	require.NoError(t, err)
	assert.Equal(t, BruteForce(text, b), res)
	assert.Contains(t, res, 2)
	assert.NotContains(t, res, 0)
	assert.NotContains(t, res, 4)
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		base, modulus int
		want          error
	}{
		{0, DefaultModulus, ErrInvalidBase},
		{-1, DefaultModulus, ErrInvalidBase},
		{DefaultBase, 0, ErrInvalidModulus},
		{DefaultBase, -7, ErrInvalidModulus},
		{0, 0, ErrInvalidBase},
	}

	for _, tt := range tests {
		res, err := RabinKarp("abc", "b", tt.base, tt.modulus)
		assert.ErrorIs(t, err, tt.want, "base=%d modulus=%d", tt.base, tt.modulus)
		assert.Nil(t, res)

		_, err = RabinKarpFold("abc", "b", tt.base, tt.modulus)
		assert.ErrorIs(t, err, tt.want)

		_, err = NewSearcher("b", WithBase(tt.base), WithModulus(tt.modulus))
		assert.ErrorIs(t, err, tt.want)
	}

	// configuration is checked even when there is nothing to scan
	_, err := RabinKarp("", "", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidBase)
}

func TestSearcher(t *testing.T) {
	s, err := NewSearcher("abab")
	require.NoError(t, err)

	assert.Equal(t, "abab", s.Pattern())
	assert.False(t, s.Fold())
	assert.Equal(t, []int{0, 2, 4}, s.IndexAll("abababab"))
	assert.Equal(t, 3, s.Count("abababab"))
	assert.Equal(t, 0, s.Index("abababab"))
	assert.Equal(t, 3, s.Index("xxxabab"))
	assert.Equal(t, -1, s.Index("xxxaba"))
	assert.Equal(t, -1, s.Index("ab"))
	assert.Equal(t, 0, s.Count(""))

	empty, err := NewSearcher("")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Index("abc"))
	assert.Equal(t, 4, empty.Count("abc"))

	// one Searcher, many texts
	texts := []string{"", "a", "ab", "abab", "xabab", "ababab", strings.Repeat("ab", 1000)}
	for _, text := range texts {
		assert.Equal(t, BruteForce(text, "abab"), s.IndexAll(text), "text=%q", truncate(text, 20))
	}
}

func FuzzEquivalence(f *testing.F) {
	f.Add("abababab", "abab", 256, 101)
	f.Add("XYZABC", "ABC", 256, 100000007)
	f.Add("abc", "", 31, 7)
	f.Add("", "a", 2, 3)
	f.Add("aaaaaaaaaab", "aab", 1, 1)
	f.Add(strings.Repeat("\x80", 100)+"needle", "needle", 256, 2)
	f.Add("0101x340123401234xxxx", "01234", 1<<20, mersenne61)

	f.Fuzz(func(t *testing.T, text, pattern string, base, modulus int) {
		if base <= 0 || modulus <= 0 {
			_, err := RabinKarp(text, pattern, base, modulus)
			if err == nil {
				t.Fatalf("RabinKarp(base=%d, modulus=%d) accepted an invalid configuration", base, modulus)
			}
			return
		}

		want := bruteForceNaive(text, pattern)

		if got := BruteForce(text, pattern); !equalOffsets(got, want) {
			t.Fatalf("BruteForce(%q, %q) = %v; want %v", text, pattern, got, want)
		}
		got, err := RabinKarp(text, pattern, base, modulus)
		if err != nil {
			t.Fatalf("RabinKarp(%q, %q, %d, %d) error: %v", text, pattern, base, modulus, err)
		}
		if !equalOffsets(got, want) {
			t.Fatalf("RabinKarp(%q, %q, %d, %d) = %v; want %v", text, pattern, base, modulus, got, want)
		}
		if got := RabinKarpDefault([]byte(text), []byte(pattern)); !equalOffsets(got, want) {
			t.Fatalf("RabinKarpDefault(%q, %q) = %v; want %v", text, pattern, got, want)
		}
	})
}

// bruteForceNaive is the ground truth: strings.HasPrefix at every offset.
func bruteForceNaive(text, pattern string) []int {
	var res []int
	for i := 0; i <= len(text)-len(pattern); i++ {
		if strings.HasPrefix(text[i:], pattern) {
			res = append(res, i)
		}
	}
	return res
}

func equalOffsets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
