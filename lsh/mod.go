package lsh

// MaxModulus is the largest modulus MulMod reduces exactly.
// The quotient estimate is computed in float64 and stays within a few units
// of the true quotient only while operands fit in the 53-bit mantissa.
const MaxModulus = 1 << 53

// Mod returns a mod m in [0, m), also for negative a.
func Mod(a int64, m uint64) uint64 {
	r := a % int64(m)
	if r < 0 {
		r += int64(m)
	}
	return uint64(r)
}

// AddMod returns (a + b) mod m for a, b in [0, m) without overflowing.
func AddMod(a, b, m uint64) uint64 {
	if b == 0 {
		return a
	}
	b = m - b
	if a >= b {
		return a - b
	}
	return m - b + a
}

// MulMod returns (a * b) mod m for m <= MaxModulus.
// The high quotient a*b/m is estimated in floating point and the remainder is
// corrected with wrapping integer arithmetic.
func MulMod(a, b, m uint64) uint64 {
	if a >= m {
		a %= m
	}
	if b >= m {
		b %= m
	}
	c := uint64(float64(a) * float64(b) / float64(m))
	r := int64(a*b - c*m)
	sm := int64(m)
	for r < 0 {
		r += sm
	}
	for r >= sm {
		r -= sm
	}
	return uint64(r)
}

// PowMod returns a^e mod m by square and multiply.
func PowMod(a, e, m uint64) uint64 {
	var r uint64 = 1
	if m == 1 {
		r = 0
	}
	for e > 0 {
		if e&1 == 1 {
			r = MulMod(r, a, m)
		}
		e >>= 1
		a = MulMod(a, a, m)
	}
	return r
}
