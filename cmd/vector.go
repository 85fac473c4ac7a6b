package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/patrikhermansson/lshgrid/baseline"
	"github.com/patrikhermansson/lshgrid/dataset"
	"github.com/patrikhermansson/lshgrid/internal/report"
	"github.com/patrikhermansson/lshgrid/lsh"
	"github.com/patrikhermansson/lshgrid/runner"
)

func newVectorCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vector",
		Short: "Search numeric vectors with Manhattan LSH",
		Long: `Index the vectors of the dataset file and search the nearest neighbor
of every vector of the query file. A query file line starting with "Radius:"
also enables range search; --radius overrides it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVector(cmd, opts)
		},
	}
	addSearchFlags(cmd)
	cmd.Flags().Float64("radius", 0, "range search radius (default from the query file)")
	return cmd
}

func runVector(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	items, err := dataset.ReadVectors(cfg.Dataset)
	if err != nil {
		return err
	}
	queries, radius, err := dataset.ReadRangeVectors(cfg.Queries)
	if err != nil {
		return err
	}
	if cfg.Radius > 0 {
		radius = cfg.Radius
	}
	dimension := items[0].Dimension()
	logParameters(cfg, dimension)

	idx, err := lsh.New(cfg.LSH(dimension))
	if err != nil {
		return err
	}
	collector := newCollector(cfg)
	idx.Metrics = collector
	if cfg.Progress {
		idx.ProgressWriter = os.Stderr
	}

	start := time.Now()
	if err := idx.BulkInsert(items); err != nil {
		return err
	}
	stats := idx.Stats()
	log.Info().Msgf("Indexed %d vectors (%d dimensions) in %v; %d buckets, largest %d",
		stats.Count, stats.Dimension, time.Since(start), stats.Buckets, stats.LargestBucket)

	exact := baseline.NewExhaustive(dimension)
	if err := exact.BulkInsert(items); err != nil {
		return err
	}

	threshold := cfg.SearchThreshold()
	records := make([]report.Record, len(queries))
	err = runner.Run(cmd.Context(), len(queries), runner.Options{
		Threads:     runner.Threads(cfg.Threads),
		Progress:    cfg.Progress,
		Description: "querying",
	}, func(_ context.Context, i int) error {
		q := queries[i]
		approx, err := idx.Search(q.Coords, threshold)
		if err != nil {
			return fmt.Errorf("query %s: %w", q.Name, err)
		}
		truth, err := exact.Search(q.Coords, threshold)
		if err != nil {
			return fmt.Errorf("query %s: %w", q.Name, err)
		}
		rec := report.Record{Query: q.Name, Approx: approx, Exact: truth}
		if radius > 0 {
			rec.Radius = radius
			if rec.Neighbors, err = idx.RangeSearch(q.Coords, radius, threshold); err != nil {
				return fmt.Errorf("query %s: %w", q.Name, err)
			}
		}
		records[i] = rec
		return nil
	})
	if err != nil {
		return err
	}
	return finish(cmd, cfg, "vector lsh", records, collector)
}
