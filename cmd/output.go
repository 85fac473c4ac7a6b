package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/patrikhermansson/lshgrid/internal/config"
	"github.com/patrikhermansson/lshgrid/internal/report"
	"github.com/patrikhermansson/lshgrid/metrics"
)

// metricsNamespace prefixes every exported metric.
const metricsNamespace = "lshgrid"

// newCollector returns a collector when metrics are exported, nil otherwise.
func newCollector(cfg *config.Config) *metrics.Collector {
	if cfg.MetricsOut == "" {
		return nil
	}
	return metrics.New(metricsNamespace)
}

// finish writes the per-query report, the summary table and the metrics textfile.
func finish(cmd *cobra.Command, cfg *config.Config, title string, records []report.Record, collector *metrics.Collector) error {
	if err := writeReport(cmd, cfg, records); err != nil {
		return err
	}
	if err := report.Summarize(records).Render(cmd.OutOrStdout(), title); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if collector != nil {
		if err := collector.WriteTextfile(cfg.MetricsOut); err != nil {
			return err
		}
		log.Info().Msgf("Metrics written to %s", cfg.MetricsOut)
	}
	return nil
}

func writeReport(cmd *cobra.Command, cfg *config.Config, records []report.Record) error {
	if cfg.Output == "" {
		if err := report.Write(cmd.OutOrStdout(), cfg.Format, records); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		return nil
	}
	file, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	return writeAndClose(file, cfg.Output, cfg.Format, records)
}

// writeAndClose writes the report to wc and closes it. A failed close is
// reported since buffered data may not have reached the file.
func writeAndClose(wc io.WriteCloser, name, format string, records []report.Record) error {
	if err := report.Write(wc, format, records); err != nil {
		wc.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}
