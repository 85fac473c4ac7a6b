package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/patrikhermansson/lshgrid/baseline"
	"github.com/patrikhermansson/lshgrid/curve"
	"github.com/patrikhermansson/lshgrid/dataset"
	"github.com/patrikhermansson/lshgrid/grid"
	"github.com/patrikhermansson/lshgrid/internal/config"
	"github.com/patrikhermansson/lshgrid/internal/report"
	"github.com/patrikhermansson/lshgrid/runner"
)

func newCurveCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Search 2-D curves with grid-snapped LSH",
		Long: `Snap the curves of the dataset file on a randomly shifted grid, index the
resulting vectors and search the nearest curve of every query curve.
Distances are reported as DTW between the query and the matched curve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCurve(cmd, opts)
		},
	}
	addSearchFlags(cmd)
	cmd.Flags().Float64("delta", config.DefaultDelta, "grid cell size")
	cmd.Flags().Bool("identical", false, "only match curves with the query's grid curve")
	cmd.Flags().String("overflow", "reject", "curves longer than the vector length: reject or truncate")
	return cmd
}

func runCurve(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if err := cfg.ValidateCurve(); err != nil {
		return err
	}
	overflow, err := grid.ParseOverflow(cfg.Grid.Overflow)
	if err != nil {
		return err
	}

	curves, maxLen, err := dataset.ReadCurves(cfg.Dataset)
	if err != nil {
		return err
	}
	queries, queryMaxLen, err := dataset.ReadCurves(cfg.Queries)
	if err != nil {
		return err
	}
	// Every dataset and query curve fits without truncation.
	dimension := 2 * max(maxLen, queryMaxLen, 1)
	log.Info().Msgf("delta: %v, identical grid: %t", cfg.Grid.Delta, cfg.Grid.Identical)
	logParameters(cfg, dimension)

	idx, err := curve.New(curve.Config{
		LSH:       cfg.LSH(dimension),
		Delta:     cfg.Grid.Delta,
		Identical: cfg.Grid.Identical,
		Overflow:  overflow,
	})
	if err != nil {
		return err
	}
	collector := newCollector(cfg)
	idx.Vectors().Metrics = collector
	if cfg.Progress {
		idx.Vectors().ProgressWriter = os.Stderr
	}

	start := time.Now()
	if err := idx.BulkInsert(curves); err != nil {
		return err
	}
	stats := idx.Stats()
	log.Info().Msgf("Indexed %d curves as %d-dimensional vectors in %v; %d buckets, largest %d",
		stats.Count, stats.Dimension, time.Since(start), stats.Buckets, stats.LargestBucket)

	threshold := cfg.SearchThreshold()
	records := make([]report.Record, len(queries))
	err = runner.Run(cmd.Context(), len(queries), runner.Options{
		Threads:     runner.Threads(cfg.Threads),
		Progress:    cfg.Progress,
		Description: "querying",
	}, func(_ context.Context, i int) error {
		q := queries[i]
		match, err := idx.Search(q, threshold)
		if err != nil {
			return fmt.Errorf("query %s: %w", q.Name, err)
		}
		approx := match.Result
		if approx.Found {
			if approx.Distance, err = baseline.DTW(match.Original.Points, q.Points); err != nil {
				return fmt.Errorf("query %s: %w", q.Name, err)
			}
		}
		truth, err := baseline.ExhaustiveCurveSearch(curves, q)
		if err != nil {
			return fmt.Errorf("query %s: %w", q.Name, err)
		}
		records[i] = report.Record{Query: q.Name, Approx: approx, Exact: truth}
		return nil
	})
	if err != nil {
		return err
	}
	return finish(cmd, cfg, "curve lsh", records, collector)
}
