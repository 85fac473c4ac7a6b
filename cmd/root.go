// Package cmd implements the lshgrid command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/patrikhermansson/lshgrid/internal/config"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

// rootOptions are the flags shared by all commands.
type rootOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the lshgrid command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "lshgrid",
		Short: "Approximate nearest neighbor search for vectors and curves with LSH",
		Long: `lshgrid indexes a dataset with locality-sensitive hashing, answers the
nearest neighbor queries of a query file and compares every answer with an
exhaustive search.

Commands:
  vector    Manhattan LSH over numeric vectors
  curve     grid-snapped LSH over 2-D polygonal curves`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newVectorCommand(opts))
	root.AddCommand(newCurveCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the command line and exits with status 1 on error.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// addSearchFlags registers the flags shared by the vector and curve commands.
func addSearchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("dataset", "d", "", "input dataset file")
	f.StringP("queries", "q", "", "query file")
	f.StringP("output", "o", "", "per-query output file (default stdout)")
	f.IntP("hashes", "k", config.DefaultK, "primitive hashes per signature")
	f.IntP("tables", "L", config.DefaultL, "number of hash tables")
	f.Float64P("window", "w", config.DefaultW, "window width of the primitive hash")
	f.Int("st", 0, "search threshold in candidates (default 10*L)")
	f.Int("bits", 0, "bits kept from each primitive hash (default 32/k)")
	f.Int64("seed", 0, "random seed (default $LSHGRID_SEED or the current time)")
	f.Int("threads", config.DefaultThreads, "query workers, overridden by $LSHGRID_BENCH_NTRD")
	f.String("format", config.DefaultFormat, "per-query output format: text or yaml")
	f.String("metrics-out", "", "write prometheus metrics to this textfile")
	f.Bool("progress", false, "show progress bars")
}

// loadConfig merges the configuration sources of cmd.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	return config.Load(opts.configPath, cmd)
}

// logParameters reports the run parameters like the index builders do.
func logParameters(cfg *config.Config, dimension int) {
	log.Info().Msgf("L: %d, k: %d, w: %v, search threshold: %d, dimension: %d",
		cfg.L, cfg.K, cfg.W, cfg.SearchThreshold(), dimension)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lshgrid %s\n", Version)
		},
	}
}
