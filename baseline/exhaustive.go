// Package baseline provides exact searches used as ground truth for the
// approximate indexes.
package baseline

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/patrikhermansson/lshgrid/core"
	"github.com/rs/zerolog/log"
)

// Exhaustive is an exact index that compares the query with every item.
type Exhaustive struct {
	mu           sync.RWMutex
	dimension    int
	items        []*core.Item
	Distance     core.DistanceFunc
	DistanceName string
}

// NewExhaustive creates an exact Manhattan index for vectors of the given dimension.
func NewExhaustive(dimension int) *Exhaustive {
	log.Debug().Msgf("Creating exhaustive index with dimension=%d", dimension)
	return &Exhaustive{
		dimension:    dimension,
		Distance:     core.Manhattan,
		DistanceName: "manhattan",
	}
}

func (e *Exhaustive) checkDimension(vector []float64) error {
	if len(vector) != e.dimension {
		return fmt.Errorf("%w: got %d, want %d", core.ErrDimensionMismatch, len(vector), e.dimension)
	}
	return nil
}

// Insert adds an item.
func (e *Exhaustive) Insert(item *core.Item) error {
	if err := e.checkDimension(item.Coords); err != nil {
		return fmt.Errorf("insert %s: %w", item.Name, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = append(e.items, item)
	return nil
}

// BulkInsert adds several items, or none if any has the wrong dimension.
func (e *Exhaustive) BulkInsert(items []*core.Item) error {
	for i, item := range items {
		if err := e.checkDimension(item.Coords); err != nil {
			return fmt.Errorf("item %d (%s): %w", i, item.Name, err)
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = append(e.items, items...)
	return nil
}

// Search returns the exact nearest item. The threshold is validated like the
// approximate indexes do but does not bound the scan.
// On ties the earliest inserted item wins.
func (e *Exhaustive) Search(query []float64, threshold int) (core.QueryResult, error) {
	if err := e.checkDimension(query); err != nil {
		return core.NotFound(), err
	}
	if threshold < 1 {
		return core.NotFound(), fmt.Errorf("search threshold must be at least 1, got %d", threshold)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	start := time.Now()
	var best *core.Item
	bestDist := math.Inf(1)
	for _, item := range e.items {
		if d := e.Distance(query, item.Coords); best == nil || d < bestDist {
			best = item
			bestDist = d
		}
	}
	if best == nil {
		return core.NotFound(), nil
	}
	return core.NewQueryResult(best, bestDist, time.Since(start)), nil
}

// RangeSearch returns every item within radius of the query, in insertion order.
func (e *Exhaustive) RangeSearch(query []float64, radius float64) ([]core.Neighbor, error) {
	if err := e.checkDimension(query); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	var neighbors []core.Neighbor
	for _, item := range e.items {
		if d := e.Distance(query, item.Coords); d <= radius {
			neighbors = append(neighbors, core.Neighbor{Item: item, Distance: d})
		}
	}
	return neighbors, nil
}

// Stats returns some basic statistics about the index.
func (e *Exhaustive) Stats() core.IndexStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return core.IndexStats{
		Count:     len(e.items),
		Dimension: e.dimension,
		Distance:  e.DistanceName,
	}
}

// Check that Exhaustive implements the core.Index interface.
var _ core.Index = (*Exhaustive)(nil)
