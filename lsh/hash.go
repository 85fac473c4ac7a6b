package lsh

import (
	"math"
	"math/rand"
)

// Weights returns the per-dimension weights base^j mod m for j in [0, dimension).
func Weights(base, m uint64, dimension int) []uint64 {
	weights := make([]uint64, dimension)
	for j := range weights {
		weights[j] = PowMod(base, uint64(j), m)
	}
	return weights
}

// ModularHash computes one primitive hash of x.
// Each coordinate is bucketed as a_i = floor((x_i - s_i) / w) and the buckets are
// combined as sum(a_i * weights[d-1-i]) mod m.
func ModularHash(x, s []float64, w float64, m uint64, weights []uint64) uint64 {
	d := len(x)
	var sum uint64
	for i := 0; i < d; i++ {
		a := int64(math.Floor((x[i] - s[i]) / w))
		term := MulMod(Mod(a, m), weights[d-1-i], m)
		sum = AddMod(term, sum, m)
	}
	return sum
}

// PackSignature packs k primitive hashes into one signature.
// Each hash keeps its low bits; hash 0 occupies the most significant slot.
func PackSignature(hashes []uint64, bits int) uint32 {
	mask := uint64(1)<<uint(bits) - 1
	var sig uint32
	for i, h := range hashes {
		sig |= uint32(h&mask) << uint(SignatureWidth-(i+1)*bits)
	}
	return sig
}

// UnpackSignature splits a signature back into its k slots of the given width.
func UnpackSignature(sig uint32, k, bits int) []uint64 {
	mask := uint64(1)<<uint(bits) - 1
	hashes := make([]uint64, k)
	for i := range hashes {
		hashes[i] = uint64(sig>>uint(SignatureWidth-(i+1)*bits)) & mask
	}
	return hashes
}

// hashFamily holds the k projection vectors of one table.
type hashFamily struct {
	shifts [][]float64
}

// newHashFamily draws k projection vectors with components uniform in [0, w).
func newHashFamily(k, dimension int, w float64, rnd *rand.Rand) hashFamily {
	shifts := make([][]float64, k)
	for i := range shifts {
		s := make([]float64, dimension)
		for j := range s {
			s[j] = rnd.Float64() * w
		}
		shifts[i] = s
	}
	return hashFamily{shifts: shifts}
}

// hasher holds the parameters shared by the families of one index.
type hasher struct {
	w       float64
	modulus uint64
	bits    int
	weights []uint64
}

func newHasher(cfg Config) hasher {
	return hasher{
		w:       cfg.W,
		modulus: cfg.Modulus,
		bits:    cfg.BitsPerHash,
		weights: Weights(cfg.Base, cfg.Modulus, cfg.Dimension),
	}
}

// signature computes the g-hash of x under family f.
func (h hasher) signature(x []float64, f hashFamily) uint32 {
	hashes := make([]uint64, len(f.shifts))
	for i, s := range f.shifts {
		hashes[i] = ModularHash(x, s, h.w, h.modulus, h.weights)
	}
	return PackSignature(hashes, h.bits)
}
