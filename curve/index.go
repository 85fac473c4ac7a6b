// Package curve provides approximate nearest neighbor search over 2-D polygonal
// curves. Curves are snapped on a shifted grid, flattened into fixed-length
// vectors and stored in an LSH index that keeps a back-reference to every
// original curve.
package curve

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/patrikhermansson/lshgrid/core"
	"github.com/patrikhermansson/lshgrid/grid"
	"github.com/patrikhermansson/lshgrid/lsh"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// Config holds the parameters of a curve index.
// LSH.Dimension is the length of the flattened vectors, twice the number of
// points every curve is padded to.
type Config struct {
	LSH       lsh.Config
	Delta     float64       // grid cell size
	Identical bool          // only match curves with the same grid vector as the query
	Overflow  grid.Overflow // policy for curves that do not fit the vector length
}

// Match is the answer to a curve query.
type Match struct {
	Result   core.QueryResult // nearest grid vector, Manhattan distance
	Original core.Curve       // curve the matched vector was derived from
	Grid     core.Curve       // snapped and padded form of Original
}

// Index is a curve index built on an LSH index over grid vectors.
type Index struct {
	mu        sync.RWMutex
	cfg       Config
	snapper   *grid.Snapper
	vectors   *lsh.Index
	originals []core.Curve
	grids     []core.Curve
}

// New creates a curve index. A single generator seeded once draws the hash
// families first and then the grid shift.
func New(cfg Config) (*Index, error) {
	if err := cfg.LSH.Validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(cfg.Delta, cfg.LSH.Dimension); err != nil {
		return nil, err
	}
	seed := cfg.LSH.Seed
	if seed == 0 {
		seed = core.GetSeed()
	}
	rnd := rand.New(rand.NewSource(seed))

	vectors, err := lsh.NewWithRand(cfg.LSH, rnd)
	if err != nil {
		return nil, err
	}
	snapper, err := grid.NewSnapper(cfg.Delta, cfg.LSH.Dimension, rnd)
	if err != nil {
		return nil, err
	}
	snapper.Overflow = cfg.Overflow
	log.Info().Msgf("Grid delta=%v, shift=(%v, %v), curve length=%d, overflow=%s",
		snapper.Delta, snapper.Shift.X, snapper.Shift.Y, snapper.Length, snapper.Overflow)

	return &Index{
		cfg:     cfg,
		snapper: snapper,
		vectors: vectors,
	}, nil
}

// Snapper returns the grid transform shared by the dataset and the queries.
func (idx *Index) Snapper() *grid.Snapper {
	return idx.snapper
}

// Vectors returns the underlying vector index.
func (idx *Index) Vectors() *lsh.Index {
	return idx.vectors
}

// Insert transforms c and inserts its grid vector.
func (idx *Index) Insert(c core.Curve) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	gridCurve, item, err := idx.snapper.Transform(c, len(idx.originals))
	if err != nil {
		return err
	}
	if err := idx.vectors.Insert(item); err != nil {
		return err
	}
	idx.originals = append(idx.originals, c)
	idx.grids = append(idx.grids, gridCurve)
	return nil
}

// BulkInsert transforms every curve before inserting any of them, so a curve
// that cannot be transformed leaves the index unchanged.
func (idx *Index) BulkInsert(curves []core.Curve) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	base := len(idx.originals)
	grids := make([]core.Curve, len(curves))
	items := make([]*core.Item, len(curves))
	for i, c := range curves {
		gridCurve, item, err := idx.snapper.Transform(c, base+i)
		if err != nil {
			return fmt.Errorf("curve %d: %w", i, err)
		}
		grids[i] = gridCurve
		items[i] = item
	}
	if err := idx.vectors.BulkInsert(items); err != nil {
		return err
	}
	idx.originals = append(idx.originals, curves...)
	idx.grids = append(idx.grids, grids...)
	log.Debug().Msgf("Inserted %d curves", len(curves))
	return nil
}

// Len returns the number of inserted curves.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.originals)
}

// Search returns the curve whose grid vector is nearest to the grid vector of
// query among at most threshold candidates. In identical mode only candidates
// with exactly the query's grid vector are examined.
func (idx *Index) Search(query core.Curve, threshold int) (Match, error) {
	_, qItem, err := idx.snapper.Transform(query, core.NoSource)
	if err != nil {
		return Match{Result: core.NotFound()}, err
	}
	var accept func(*core.Item) bool
	if idx.cfg.Identical {
		accept = func(it *core.Item) bool {
			return floats.Equal(it.Coords, qItem.Coords)
		}
	}
	res, err := idx.vectors.SearchFiltered(qItem.Coords, threshold, accept)
	if err != nil || !res.Found {
		return Match{Result: res}, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return Match{
		Result:   res,
		Original: idx.originals[res.Item.Source],
		Grid:     idx.grids[res.Item.Source],
	}, nil
}

// Stats returns the statistics of the underlying vector index.
func (idx *Index) Stats() core.IndexStats {
	return idx.vectors.Stats()
}
