// Package runner runs batches of queries on a pool of worker goroutines.
package runner

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// ThreadsEnv is the environment variable holding the number of query workers.
const ThreadsEnv = "LSHGRID_BENCH_NTRD"

// Options controls a Run.
type Options struct {
	Threads     int    // number of workers, at least one is used
	Progress    bool   // draw a progress bar on stderr
	Description string // progress bar label
}

// Threads returns the number of workers from LSHGRID_BENCH_NTRD, or fallback
// when the variable is unset or not a positive integer.
func Threads(fallback int) int {
	if env := os.Getenv(ThreadsEnv); env != "" {
		if t, err := strconv.Atoi(env); err == nil && t > 0 {
			log.Info().Msgf("Using %d threads from %s", t, ThreadsEnv)
			return t
		}
		log.Warn().Msgf("Failed to parse %s value: %s", ThreadsEnv, env)
	}
	return max(fallback, 1)
}

// Run calls task for every index in [0, n) on opts.Threads workers.
// Tasks write their results into caller-owned slots by index, so results keep
// input order whatever the scheduling. The first task error cancels the
// remaining tasks and is returned.
func Run(ctx context.Context, n int, opts Options, task func(ctx context.Context, i int) error) error {
	threads := max(opts.Threads, 1)
	log.Debug().Msgf("Running %d tasks on %d workers", n, threads)

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(opts.Description),
			progressbar.OptionOnCompletion(func() { fmt.Fprint(os.Stderr, "\n") }),
		)
	}

	g, ctx := errgroup.WithContext(ctx)
	tasks := make(chan int)

	// Feed task indices until done or cancelled.
	g.Go(func() error {
		defer close(tasks)
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case tasks <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for i := range tasks {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := task(ctx, i); err != nil {
					return fmt.Errorf("task %d: %w", i, err)
				}
				if bar != nil {
					if err := bar.Add(1); err != nil {
						log.Debug().Err(err).Msg("progress bar update failed")
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}
