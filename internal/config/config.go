// Package config holds the validated configuration of one command line run.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/patrikhermansson/lshgrid/grid"
	"github.com/patrikhermansson/lshgrid/lsh"
)

// Output formats of the per-query report.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Defaults of the run parameters.
const (
	DefaultK       = lsh.DefaultK
	DefaultL       = lsh.DefaultL
	DefaultW       = lsh.DefaultW
	DefaultFormat  = FormatText
	DefaultThreads = 1
	DefaultDelta   = 1.0
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration of a vector or curve run.
type Config struct {
	Dataset    string     `mapstructure:"dataset"`
	Queries    string     `mapstructure:"queries"`
	Output     string     `mapstructure:"output"` // per-query report, stdout when empty
	K          int        `mapstructure:"k"`
	L          int        `mapstructure:"l"`
	W          float64    `mapstructure:"w"`
	Threshold  int        `mapstructure:"threshold"` // 0 means 10*L
	Radius     float64    `mapstructure:"radius"`    // range search radius, 0 disables range search
	Bits       int        `mapstructure:"bits"`      // bits per primitive hash, 0 means 32/k
	Seed       int64      `mapstructure:"seed"`      // 0 means LSHGRID_SEED or the current time
	Threads    int        `mapstructure:"threads"`
	Format     string     `mapstructure:"format"`
	MetricsOut string     `mapstructure:"metrics_out"`
	Progress   bool       `mapstructure:"progress"`
	Grid       GridConfig `mapstructure:"grid"`
}

// GridConfig holds the curve specific parameters.
type GridConfig struct {
	Delta     float64 `mapstructure:"delta"`
	Identical bool    `mapstructure:"identical"`
	Overflow  string  `mapstructure:"overflow"`
}

// Validate checks the parameters shared by vector and curve runs.
func (c *Config) Validate() error {
	switch {
	case c.Dataset == "":
		return fmt.Errorf("%w: missing dataset file (-d)", ErrInvalid)
	case c.Queries == "":
		return fmt.Errorf("%w: missing query file (-q)", ErrInvalid)
	case c.K < 1:
		return fmt.Errorf("%w: k must be at least 1, got %d", ErrInvalid, c.K)
	case c.L < 1:
		return fmt.Errorf("%w: L must be at least 1, got %d", ErrInvalid, c.L)
	case !(c.W > 0) || math.IsInf(c.W, 1):
		return fmt.Errorf("%w: w must be positive, got %v", ErrInvalid, c.W)
	case c.Threshold < 0:
		return fmt.Errorf("%w: search threshold must not be negative, got %d", ErrInvalid, c.Threshold)
	case c.Radius < 0:
		return fmt.Errorf("%w: radius must not be negative, got %v", ErrInvalid, c.Radius)
	case c.Bits < 0:
		return fmt.Errorf("%w: bits must not be negative, got %d", ErrInvalid, c.Bits)
	case c.Threads < 0:
		return fmt.Errorf("%w: threads must not be negative, got %d", ErrInvalid, c.Threads)
	case c.Format != FormatText && c.Format != FormatYAML:
		return fmt.Errorf("%w: unknown format %q", ErrInvalid, c.Format)
	}
	return nil
}

// ValidateCurve checks the parameters of a curve run.
func (c *Config) ValidateCurve() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !(c.Grid.Delta > 0) || math.IsInf(c.Grid.Delta, 1) {
		return fmt.Errorf("%w: delta must be positive, got %v", ErrInvalid, c.Grid.Delta)
	}
	if _, err := grid.ParseOverflow(c.Grid.Overflow); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// SearchThreshold returns the candidate budget of a query.
func (c *Config) SearchThreshold() int {
	if c.Threshold > 0 {
		return c.Threshold
	}
	return lsh.DefaultSearchThreshold(c.L)
}

// LSH returns the index configuration for vectors of the given dimension.
func (c *Config) LSH(dimension int) lsh.Config {
	return lsh.Config{
		L:           c.L,
		K:           c.K,
		W:           c.W,
		Dimension:   dimension,
		BitsPerHash: c.Bits,
		Seed:        c.Seed,
	}
}
