package lsh

import (
	"math"
	"math/big"
	"math/rand"
	"testing"
)

func bigMod(a, b, m uint64, op func(z, x, y *big.Int) *big.Int) uint64 {
	x := new(big.Int).SetUint64(a)
	y := new(big.Int).SetUint64(b)
	z := op(new(big.Int), x, y)
	return z.Mod(z, new(big.Int).SetUint64(m)).Uint64()
}

func TestModNegative(t *testing.T) {
	tests := []struct {
		a    int64
		m    uint64
		want uint64
	}{
		{7, 5, 2},
		{-7, 5, 3},
		{-5, 5, 0},
		{0, 5, 0},
		{-1, math.MaxUint32 - 5, math.MaxUint32 - 6},
	}
	for _, tt := range tests {
		if got := Mod(tt.a, tt.m); got != tt.want {
			t.Errorf("Mod(%d, %d) = %d; want %d", tt.a, tt.m, got, tt.want)
		}
	}
}

func TestAddMulModAgainstBigInt(t *testing.T) {
	moduli := []uint64{
		2, 3, 97, 1 << 16,
		math.MaxUint32 - 5,
		math.MaxUint32,
		1<<40 + 15,
		MaxModulus - 1,
		MaxModulus,
	}
	rnd := rand.New(rand.NewSource(42))
	for _, m := range moduli {
		values := []uint64{0, 1, 2, m / 2, m - 2, m - 1}
		for i := 0; i < 50; i++ {
			values = append(values, uint64(rnd.Int63n(int64(m))))
		}
		for _, a := range values {
			if a >= m {
				continue
			}
			for _, b := range values {
				if b >= m {
					continue
				}
				if got, want := AddMod(a, b, m), bigMod(a, b, m, (*big.Int).Add); got != want {
					t.Fatalf("AddMod(%d, %d, %d) = %d; want %d", a, b, m, got, want)
				}
				if got, want := MulMod(a, b, m), bigMod(a, b, m, (*big.Int).Mul); got != want {
					t.Fatalf("MulMod(%d, %d, %d) = %d; want %d", a, b, m, got, want)
				}
			}
		}
	}
}

func TestMulModReducesLargeOperands(t *testing.T) {
	m := uint64(math.MaxUint32 - 5)
	a := uint64(math.MaxUint32)
	b := uint64(math.MaxUint32 - 1)
	if got, want := MulMod(a, b, m), bigMod(a, b, m, (*big.Int).Mul); got != want {
		t.Errorf("MulMod(%d, %d, %d) = %d; want %d", a, b, m, got, want)
	}
}

func TestPowMod(t *testing.T) {
	m := uint64(math.MaxUint32 - 5)
	for _, e := range []uint64{0, 1, 2, 7, 31, 1000} {
		want := new(big.Int).Exp(big.NewInt(DefaultBase), new(big.Int).SetUint64(e), new(big.Int).SetUint64(m)).Uint64()
		if got := PowMod(DefaultBase, e, m); got != want {
			t.Errorf("PowMod(%d, %d, %d) = %d; want %d", DefaultBase, e, m, got, want)
		}
	}
	if got := PowMod(5, 3, 1); got != 0 {
		t.Errorf("PowMod(5, 3, 1) = %d; want 0", got)
	}
}
