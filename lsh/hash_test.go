package lsh

import (
	"math/rand"
	"testing"
)

func TestWeights(t *testing.T) {
	weights := Weights(10, 1000, 5)
	want := []uint64{1, 10, 100, 0, 0}
	for i := range want {
		if weights[i] != want[i] {
			t.Errorf("weights[%d] = %d; want %d", i, weights[i], want[i])
		}
	}
}

func TestModularHashKnownValue(t *testing.T) {
	// a = floor((x - s) / w) = [2, -1, 0]; weights = [1, 10, 100].
	x := []float64{9, -1, 3.5}
	s := []float64{1, 0, 0.5}
	weights := Weights(10, 1000, 3)
	// 2*100 + (-1 mod 1000)*10 + 0*1 = 200 + 9990 = 10190 mod 1000 = 190
	if got := ModularHash(x, s, 4, 1000, weights); got != 190 {
		t.Errorf("ModularHash = %d; want 190", got)
	}
}

func TestModularHashDeterministic(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	dim := 16
	weights := Weights(DefaultBase, DefaultModulus, dim)
	family := newHashFamily(1, dim, DefaultW, rnd)
	for n := 0; n < 20; n++ {
		x := make([]float64, dim)
		for i := range x {
			x[i] = rnd.NormFloat64() * 1000
		}
		first := ModularHash(x, family.shifts[0], DefaultW, DefaultModulus, weights)
		second := ModularHash(x, family.shifts[0], DefaultW, DefaultModulus, weights)
		if first != second {
			t.Fatalf("ModularHash not deterministic: %d != %d", first, second)
		}
		if first >= DefaultModulus {
			t.Fatalf("ModularHash = %d not reduced below %d", first, uint64(DefaultModulus))
		}
	}
}

func TestPackSignatureInvertible(t *testing.T) {
	tests := []struct {
		bits   int
		hashes []uint64
	}{
		{8, []uint64{0x12, 0x34, 0x56, 0x78}},
		{8, []uint64{0x1ff, 0xabc, 0x0, 0xfff}},
		{32, []uint64{0xdeadbeef}},
		{10, []uint64{1023, 0, 512}},
		{5, []uint64{31, 1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		sig := PackSignature(tt.hashes, tt.bits)
		got := UnpackSignature(sig, len(tt.hashes), tt.bits)
		mask := uint64(1)<<uint(tt.bits) - 1
		for i, h := range tt.hashes {
			if got[i] != h&mask {
				t.Errorf("bits=%d slot %d: got %#x; want %#x", tt.bits, i, got[i], h&mask)
			}
		}
	}
}

func TestPackSignatureSlotOrder(t *testing.T) {
	sig := PackSignature([]uint64{0xAA, 0xBB, 0xCC, 0xDD}, 8)
	if sig != 0xAABBCCDD {
		t.Errorf("PackSignature = %#x; want 0xaabbccdd", sig)
	}
	sig = PackSignature([]uint64{0x3, 0x1}, 4)
	if sig != 0x31000000 {
		t.Errorf("PackSignature = %#x; want 0x31000000", sig)
	}
}

func TestNewHashFamilyRange(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	family := newHashFamily(3, 10, 4, rnd)
	if len(family.shifts) != 3 {
		t.Fatalf("expected 3 projection vectors, got %d", len(family.shifts))
	}
	for _, s := range family.shifts {
		if len(s) != 10 {
			t.Fatalf("expected dimension 10, got %d", len(s))
		}
		for _, v := range s {
			if v < 0 || v >= 4 {
				t.Errorf("projection component %v outside [0, 4)", v)
			}
		}
	}
}
