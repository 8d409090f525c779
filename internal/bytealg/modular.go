package bytealg

import "math/bits"

// MaxFastModulus is the largest modulus for which every intermediate value
// of the rolling hash, (modulus-1)*(modulus-1) + 255, fits in a uint64.
// Larger moduli are supported but go through a 128-bit product.
const MaxFastModulus = 1 << 32

// Modulus carries a reduction modulus and whether plain 64-bit products are
// safe under it.
type Modulus struct {
	m    uint64
	fast bool
}

// NewModulus returns a Modulus for m. m must be positive.
func NewModulus(m uint64) Modulus {
	return Modulus{m: m, fast: m <= MaxFastModulus}
}

// Value returns the modulus itself.
func (md Modulus) Value() uint64 { return md.m }

// Reduce returns x mod m.
func (md Modulus) Reduce(x uint64) uint64 {
	return x % md.m
}

// Mul returns a*b mod m. Both operands must already be reduced.
func (md Modulus) Mul(a, b uint64) uint64 {
	if md.fast {
		return a * b % md.m
	}
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, md.m)
}

// Add returns a+b mod m. Both operands must already be reduced.
func (md Modulus) Add(a, b uint64) uint64 {
	s := a + b
	// a, b < m, so the sum wraps at most once and only for m > 1<<63.
	if s >= md.m || s < a {
		s -= md.m
	}
	return s
}

// Sub returns a-b normalized into [0, m). Both operands must already be
// reduced.
func (md Modulus) Sub(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + (md.m - b)
}

// Horner returns (h*base + v) mod m, one step of Horner's rule.
func (md Modulus) Horner(h, base, v uint64) uint64 {
	return md.Add(md.Mul(h, base), md.Reduce(v))
}

// Power returns base^(n) mod m by iterative multiplication. The window
// lengths it is used for are small enough that square-and-multiply is not
// worth it.
func (md Modulus) Power(base uint64, n int) uint64 {
	p := md.Reduce(1)
	for i := 0; i < n; i++ {
		p = md.Mul(p, base)
	}
	return p
}

// Slide removes the contribution of out (weighted by power) from h, shifts
// the window by one position and appends in.
//
//	h' = ((h - out*power) * base + in) mod m
func (md Modulus) Slide(h, base, power, out, in uint64) uint64 {
	h = md.Sub(h, md.Mul(md.Reduce(out), power))
	return md.Horner(h, base, in)
}
