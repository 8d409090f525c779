package match

import "github.com/mhr3/substr/internal/bytealg"

// Searcher performs repeated rolling hash searches for one pattern.
// Construct once with NewSearcher, then call IndexAll on multiple texts.
// Amortizes the pattern hash and base^(m-1) across searches.
//
// A Searcher is immutable and safe for concurrent use.
type Searcher struct {
	pattern string
	params  hashParams
	power   uint64 // base^(len(pattern)-1) mod modulus
	target  uint64 // hash of pattern
}

type searcherConfig struct {
	base    int
	modulus int
	fold    bool
}

// Option configures a Searcher.
type Option func(*searcherConfig)

// WithBase sets the hash base. Defaults to DefaultBase.
func WithBase(base int) Option {
	return func(c *searcherConfig) { c.base = base }
}

// WithModulus sets the hash modulus. Defaults to DefaultModulus.
func WithModulus(modulus int) Option {
	return func(c *searcherConfig) { c.modulus = modulus }
}

// WithFold enables ASCII case-insensitive matching.
func WithFold(fold bool) Option {
	return func(c *searcherConfig) { c.fold = fold }
}

// NewSearcher creates a Searcher for pattern. It fails with ErrInvalidBase
// or ErrInvalidModulus on a non-positive base or modulus.
func NewSearcher(pattern string, opts ...Option) (*Searcher, error) {
	cfg := searcherConfig{base: DefaultBase, modulus: DefaultModulus}
	for _, opt := range opts {
		opt(&cfg)
	}
	p, err := newHashParams(cfg.base, cfg.modulus, cfg.fold)
	if err != nil {
		return nil, err
	}

	s := &Searcher{pattern: pattern, params: p}
	if m := len(pattern); m > 0 {
		s.power = p.md.Power(p.base, m-1)
		s.target = bytealg.HashPrefix(p.md, pattern, m, p.base, p.fold)
	}
	return s, nil
}

// Pattern returns the pattern the Searcher was built for.
func (s *Searcher) Pattern() string { return s.pattern }

// Fold reports whether the Searcher matches case-insensitively.
func (s *Searcher) Fold() bool { return s.params.fold }

// IndexAll returns the offsets of every occurrence of the pattern in text.
func (s *Searcher) IndexAll(text string) []int {
	n, m := len(text), len(s.pattern)
	if m == 0 {
		return allOffsets(n)
	}
	if m > n {
		return nil
	}
	return rollingScan(text, s.pattern, s.params, s.power, s.target, -1)
}

// Index returns the offset of the first occurrence of the pattern in text,
// or -1 if there is none.
func (s *Searcher) Index(text string) int {
	n, m := len(text), len(s.pattern)
	if m == 0 {
		return 0
	}
	if m > n {
		return -1
	}
	if matches := rollingScan(text, s.pattern, s.params, s.power, s.target, 1); len(matches) > 0 {
		return matches[0]
	}
	return -1
}

// Count returns the number of, possibly overlapping, occurrences of the
// pattern in text.
func (s *Searcher) Count(text string) int {
	return len(s.IndexAll(text))
}
