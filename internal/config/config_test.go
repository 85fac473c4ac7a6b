package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrikhermansson/lshgrid/internal/config"
	"github.com/patrikhermansson/lshgrid/lsh"
)

func validConfig() *config.Config {
	return &config.Config{
		Dataset: "data.txt",
		Queries: "queries.txt",
		K:       4,
		L:       5,
		W:       100,
		Format:  config.FormatText,
		Grid:    config.GridConfig{Delta: 1, Overflow: "reject"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultK, cfg.K)
	assert.Equal(t, config.DefaultL, cfg.L)
	assert.InDelta(t, float64(config.DefaultW), cfg.W, 1e-9)
	assert.Equal(t, config.DefaultFormat, cfg.Format)
	assert.Equal(t, config.DefaultThreads, cfg.Threads)
	assert.InDelta(t, config.DefaultDelta, cfg.Grid.Delta, 1e-9)
	assert.Equal(t, "reject", cfg.Grid.Overflow)
	assert.Equal(t, 10*config.DefaultL, cfg.SearchThreshold())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lshgrid.yaml")
	content := `dataset: input.txt
queries: query.txt
k: 2
l: 8
w: 12.5
threshold: 40
format: yaml
grid:
  delta: 0.5
  identical: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "input.txt", cfg.Dataset)
	assert.Equal(t, 2, cfg.K)
	assert.Equal(t, 8, cfg.L)
	assert.InDelta(t, 12.5, cfg.W, 1e-9)
	assert.Equal(t, 40, cfg.SearchThreshold())
	assert.Equal(t, config.FormatYAML, cfg.Format)
	assert.InDelta(t, 0.5, cfg.Grid.Delta, 1e-9)
	assert.True(t, cfg.Grid.Identical)
	require.NoError(t, cfg.ValidateCurve())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvAndFlags(t *testing.T) {
	t.Setenv("LSHGRID_W", "7")
	t.Setenv("LSHGRID_K", "3")

	cmd := &cobra.Command{}
	cmd.Flags().IntP("hashes", "k", config.DefaultK, "")
	cmd.Flags().Float64P("window", "w", config.DefaultW, "")
	cmd.Flags().Int("st", 0, "")
	require.NoError(t, cmd.Flags().Set("st", "25"))
	require.NoError(t, cmd.Flags().Set("hashes", "6"))

	cfg, err := config.Load("", cmd)
	require.NoError(t, err)

	assert.InDelta(t, 7.0, cfg.W, 1e-9, "unset flag must not override env")
	assert.Equal(t, 6, cfg.K, "set flag overrides env")
	assert.Equal(t, 25, cfg.Threshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		curve  bool
	}{
		{"missing dataset", func(c *config.Config) { c.Dataset = "" }, false},
		{"missing queries", func(c *config.Config) { c.Queries = "" }, false},
		{"zero k", func(c *config.Config) { c.K = 0 }, false},
		{"zero L", func(c *config.Config) { c.L = 0 }, false},
		{"negative w", func(c *config.Config) { c.W = -1 }, false},
		{"negative threshold", func(c *config.Config) { c.Threshold = -1 }, false},
		{"negative radius", func(c *config.Config) { c.Radius = -0.5 }, false},
		{"unknown format", func(c *config.Config) { c.Format = "json" }, false},
		{"zero delta", func(c *config.Config) { c.Grid.Delta = 0 }, true},
		{"unknown overflow", func(c *config.Config) { c.Grid.Overflow = "wrap" }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			var err error
			if tc.curve {
				err = cfg.ValidateCurve()
			} else {
				err = cfg.Validate()
			}
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}

	assert.NoError(t, validConfig().Validate())
	assert.NoError(t, validConfig().ValidateCurve())
}

func TestConfig_LSH(t *testing.T) {
	cfg := validConfig()
	cfg.Bits = 6
	cfg.Seed = 99
	got := cfg.LSH(12)
	assert.Equal(t, lsh.Config{L: 5, K: 4, W: 100, Dimension: 12, BitsPerHash: 6, Seed: 99}, got)
	require.NoError(t, got.Validate())
}
