package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding configuration keys,
// for example LSHGRID_W or LSHGRID_GRID_DELTA.
const EnvPrefix = "LSHGRID"

// configType is the config file format.
const configType = "yaml"

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"dataset":     "dataset",
	"queries":     "queries",
	"output":      "output",
	"hashes":      "k",
	"tables":      "l",
	"window":      "w",
	"st":          "threshold",
	"radius":      "radius",
	"bits":        "bits",
	"seed":        "seed",
	"threads":     "threads",
	"format":      "format",
	"metrics-out": "metrics_out",
	"progress":    "progress",
	"delta":       "grid.delta",
	"identical":   "grid.identical",
	"overflow":    "grid.overflow",
}

// Load reads the configuration from defaults, the optional YAML file at path,
// LSHGRID_* environment variables and the flags of cmd, in increasing order of
// precedence. Only flags set on the command line override the other sources.
// The result is not validated.
func Load(path string, cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if cmd != nil {
		for name, key := range flagKeys {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("dataset", "")
	v.SetDefault("queries", "")
	v.SetDefault("output", "")
	v.SetDefault("k", DefaultK)
	v.SetDefault("l", DefaultL)
	v.SetDefault("w", DefaultW)
	v.SetDefault("threshold", 0)
	v.SetDefault("radius", 0.0)
	v.SetDefault("bits", 0)
	v.SetDefault("seed", 0)
	v.SetDefault("threads", DefaultThreads)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("metrics_out", "")
	v.SetDefault("progress", false)

	v.SetDefault("grid.delta", DefaultDelta)
	v.SetDefault("grid.identical", false)
	v.SetDefault("grid.overflow", "reject")
}
