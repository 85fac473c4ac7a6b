package lsh

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/patrikhermansson/lshgrid/core"
	"github.com/patrikhermansson/lshgrid/metrics"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrDimensionMismatch is returned when a vector does not have the index dimension.
	ErrDimensionMismatch = core.ErrDimensionMismatch
	// ErrInvalidThreshold is returned for a search threshold below one.
	ErrInvalidThreshold = errors.New("search threshold must be at least 1")
)

// Index is a multi-table LSH index.
// Every table holds references to the inserted items, never copies.
type Index struct {
	mu           sync.RWMutex      // protects concurrent access
	cfg          Config            // parameters with defaults applied
	hasher       hasher            // shared hashing parameters
	tables       []*hashTable      // the L hash tables
	count        int               // number of inserted items
	Distance     core.DistanceFunc // function to compute distance between vectors
	DistanceName string            // name of the distance metric
	Metrics      *metrics.Collector

	// ProgressWriter receives the progress bar of BulkInsert; nil draws no bar.
	ProgressWriter io.Writer
}

// New creates an index whose hash families are drawn from a generator seeded once
// with cfg.Seed, or with core.GetSeed() when the seed is zero.
func New(cfg Config) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = core.GetSeed()
	}
	return NewWithRand(cfg, rand.New(rand.NewSource(seed)))
}

// NewWithRand creates an index drawing its hash families from rnd.
// Callers that need more random draws for the same index (like a grid shift)
// pass the same generator so all draws come from one seeded source.
func NewWithRand(cfg Config, rnd *rand.Rand) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	log.Info().Msgf("Creating new LSH index with L=%d, k=%d, w=%v, dimension=%d, bits=%d",
		cfg.L, cfg.K, cfg.W, cfg.Dimension, cfg.BitsPerHash)

	tables := make([]*hashTable, cfg.L)
	for i := range tables {
		tables[i] = newHashTable(newHashFamily(cfg.K, cfg.Dimension, cfg.W, rnd))
	}
	return &Index{
		cfg:          cfg,
		hasher:       newHasher(cfg),
		tables:       tables,
		Distance:     core.Manhattan,
		DistanceName: "manhattan",
	}, nil
}

// Config returns the configuration of the index with defaults applied.
func (idx *Index) Config() Config {
	return idx.cfg
}

func (idx *Index) checkDimension(vector []float64) error {
	if len(vector) != idx.cfg.Dimension {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), idx.cfg.Dimension)
	}
	return nil
}

// Insert adds item to every table under its g-hash signature.
func (idx *Index) Insert(item *core.Item) error {
	if err := idx.checkDimension(item.Coords); err != nil {
		return fmt.Errorf("insert %s: %w", item.Name, err)
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, t := range idx.tables {
		t.insert(item, idx.hasher.signature(item.Coords, t.family))
	}
	idx.count++
	idx.Metrics.ObserveInsert(1)
	return nil
}

// BulkInsert adds several items. All dimensions are checked before any insertion,
// then the tables are filled in parallel, one goroutine per table.
// Within a table, items keep their order in items.
func (idx *Index) BulkInsert(items []*core.Item) error {
	for i, item := range items {
		if err := idx.checkDimension(item.Coords); err != nil {
			return fmt.Errorf("item %d (%s): %w", i, item.Name, err)
		}
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	bar := idx.newProgressBar(len(items) * len(idx.tables))
	var g errgroup.Group
	for _, t := range idx.tables {
		t := t
		g.Go(func() error {
			for _, item := range items {
				t.insert(item, idx.hasher.signature(item.Coords, t.family))
				if bar == nil {
					continue
				}
				if err := bar.Add(1); err != nil {
					log.Debug().Err(err).Msg("progress bar update failed")
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	idx.count += len(items)
	idx.Metrics.ObserveInsert(len(items))
	log.Debug().Msgf("Inserted %d items into %d tables", len(items), len(idx.tables))
	return nil
}

// newProgressBar returns a bar of n steps on ProgressWriter, or nil without a writer.
func (idx *Index) newProgressBar(n int) *progressbar.ProgressBar {
	w := idx.ProgressWriter
	if w == nil {
		return nil
	}
	// Create a progress bar with a newline on completion.
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("indexing"),
		progressbar.OptionOnCompletion(func() { fmt.Fprint(w, "\n") }),
	)
}

// Signatures returns the g-hash signature of x in each table, in table order.
func (idx *Index) Signatures(x []float64) ([]uint32, error) {
	if err := idx.checkDimension(x); err != nil {
		return nil, err
	}
	sigs := make([]uint32, len(idx.tables))
	for i, t := range idx.tables {
		sigs[i] = idx.hasher.signature(x, t.family)
	}
	return sigs, nil
}

// Search returns the nearest item among at most threshold distinct candidates.
func (idx *Index) Search(query []float64, threshold int) (core.QueryResult, error) {
	return idx.SearchFiltered(query, threshold, nil)
}

// SearchFiltered is Search restricted to the candidates accepted by accept.
// Rejected candidates do not count towards threshold. A nil accept takes every candidate.
//
// Tables are scanned in order and each bucket in insertion order; the first
// candidate reaching the minimum distance wins. The scan stops as soon as
// threshold distinct candidates have been examined over all tables.
func (idx *Index) SearchFiltered(query []float64, threshold int, accept func(*core.Item) bool) (core.QueryResult, error) {
	if err := idx.checkDimension(query); err != nil {
		return core.NotFound(), err
	}
	if threshold < 1 {
		return core.NotFound(), fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	start := time.Now()
	var best *core.Item
	bestDist := math.Inf(1)
	examined := idx.scan(query, threshold, accept, func(item *core.Item, dist float64) {
		if best == nil || dist < bestDist {
			best = item
			bestDist = dist
		}
	})
	elapsed := time.Since(start)
	idx.Metrics.ObserveQuery(examined, elapsed, best != nil)

	if best == nil {
		return core.NotFound(), nil
	}
	return core.NewQueryResult(best, bestDist, elapsed), nil
}

// RangeSearch returns the candidates within radius of the query, nearest first,
// examining at most threshold distinct candidates.
func (idx *Index) RangeSearch(query []float64, radius float64, threshold int) ([]core.Neighbor, error) {
	if err := idx.checkDimension(query); err != nil {
		return nil, err
	}
	if threshold < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	if radius < 0 {
		return nil, fmt.Errorf("radius must not be negative, got %v", radius)
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	start := time.Now()
	var neighbors []core.Neighbor
	examined := idx.scan(query, threshold, nil, func(item *core.Item, dist float64) {
		if dist <= radius {
			neighbors = append(neighbors, core.Neighbor{Item: item, Distance: dist})
		}
	})
	idx.Metrics.ObserveQuery(examined, time.Since(start), len(neighbors) > 0)

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	return neighbors, nil
}

// scan visits distinct accepted candidates of the query buckets until threshold
// of them were visited. It returns the number of visited candidates.
func (idx *Index) scan(query []float64, threshold int, accept func(*core.Item) bool,
	visit func(item *core.Item, dist float64)) int {
	seen := make(map[*core.Item]struct{})
	examined := 0
	for _, t := range idx.tables {
		sig := idx.hasher.signature(query, t.family)
		for _, item := range t.candidates(sig) {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			if accept != nil && !accept(item) {
				continue
			}
			visit(item, idx.Distance(query, item.Coords))
			examined++
			if examined >= threshold {
				return examined
			}
		}
	}
	return examined
}

// Stats returns some basic statistics about the index.
func (idx *Index) Stats() core.IndexStats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	stats := core.IndexStats{
		Count:     idx.count,
		Dimension: idx.cfg.Dimension,
		Tables:    len(idx.tables),
		Distance:  idx.DistanceName,
	}
	for _, t := range idx.tables {
		stats.Buckets += len(t.buckets)
		if largest := t.largestBucket(); largest > stats.LargestBucket {
			stats.LargestBucket = largest
		}
	}
	return stats
}

// Check that Index implements the core.Index interface.
var _ core.Index = (*Index)(nil)
