package lsh

import (
	"errors"
	"fmt"
	"math"
)

// SignatureWidth is the number of bits of a g-hash signature.
const SignatureWidth = 32

// Default parameters of an index.
const (
	DefaultL       = 5
	DefaultK       = 4
	DefaultW       = 100
	DefaultModulus = math.MaxUint32 - 5
	DefaultBase    = 1<<31 - 1
)

// ErrInvalidConfig is returned when an index is built with unusable parameters.
var ErrInvalidConfig = errors.New("invalid lsh configuration")

// Config holds the parameters of an LSH index.
type Config struct {
	L           int     // number of hash tables
	K           int     // number of primitive hashes amplified into one signature
	W           float64 // window width of the primitive hash
	Dimension   int     // dimension of indexed vectors
	Modulus     uint64  // modulus M of the primitive hash
	Base        uint64  // base of the per-dimension weights base^j mod M
	BitsPerHash int     // bits kept from each primitive hash, SignatureWidth/K when zero
	Seed        int64   // seed of the hash families, core.GetSeed() when zero
}

// DefaultConfig returns the default configuration for vectors of the given dimension.
func DefaultConfig(dimension int) Config {
	return Config{
		L:         DefaultL,
		K:         DefaultK,
		W:         DefaultW,
		Dimension: dimension,
	}
}

// DefaultSearchThreshold returns the candidate budget used when none is given.
func DefaultSearchThreshold(l int) int {
	return 10 * l
}

// withDefaults fills the zero-valued optional fields.
func (c Config) withDefaults() Config {
	if c.Modulus == 0 {
		c.Modulus = DefaultModulus
	}
	if c.Base == 0 {
		c.Base = DefaultBase
	}
	if c.BitsPerHash == 0 && c.K > 0 {
		c.BitsPerHash = SignatureWidth / c.K
	}
	return c
}

// Validate reports whether the configuration can build an index.
// Optional fields are checked with their defaults applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch {
	case c.L < 1:
		return fmt.Errorf("%w: L must be at least 1, got %d", ErrInvalidConfig, c.L)
	case c.K < 1:
		return fmt.Errorf("%w: k must be at least 1, got %d", ErrInvalidConfig, c.K)
	case !(c.W > 0) || math.IsInf(c.W, 1):
		return fmt.Errorf("%w: w must be positive, got %v", ErrInvalidConfig, c.W)
	case c.Dimension < 1:
		return fmt.Errorf("%w: dimension must be at least 1, got %d", ErrInvalidConfig, c.Dimension)
	case c.Modulus < 2 || c.Modulus > math.MaxUint32:
		return fmt.Errorf("%w: modulus must be in [2, 2^32-1], got %d", ErrInvalidConfig, c.Modulus)
	case c.Base < 2:
		return fmt.Errorf("%w: base must be at least 2, got %d", ErrInvalidConfig, c.Base)
	case c.BitsPerHash < 1:
		return fmt.Errorf("%w: bits per hash must be at least 1, got %d", ErrInvalidConfig, c.BitsPerHash)
	case c.K*c.BitsPerHash > SignatureWidth:
		return fmt.Errorf("%w: k*bits_per_hash = %d exceeds the %d-bit signature",
			ErrInvalidConfig, c.K*c.BitsPerHash, SignatureWidth)
	}
	return nil
}
