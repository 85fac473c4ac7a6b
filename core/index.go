package core

import (
	"errors"
	"time"
)

// ErrDimensionMismatch is returned when a vector does not have the index dimension.
var ErrDimensionMismatch = errors.New("vector dimension does not match index dimension")

// Index represents an approximate nearest neighbor index over named vectors.
type Index interface {

	// Insert adds an item to the index. The index keeps a reference to the item.
	Insert(item *Item) error

	// BulkInsert adds several items to the index.
	BulkInsert(items []*Item) error

	// Search returns the best match for the query after examining at most threshold candidates.
	Search(query []float64, threshold int) (QueryResult, error)

	// Stats returns metadata about the index, such as count and dimensionality.
	Stats() IndexStats
}

// DistanceFunc computes the distance between two vectors.
type DistanceFunc func(a, b []float64) float64

// Neighbor holds a neighbor item and its computed distance.
type Neighbor struct {
	Item     *Item
	Distance float64
}

// IndexStats contains metadata about the index.
type IndexStats struct {
	Count         int    // total number of indexed items
	Dimension     int    // dimensionality of vectors
	Tables        int    // number of hash tables
	Buckets       int    // non-empty buckets over all tables
	LargestBucket int    // size of the fullest bucket
	Distance      string // name of the distance metric
}

// notFoundName is the name reported by a result without a match.
const notFoundName = "NULL"

// QueryResult is the outcome of a single nearest neighbor query.
// Found distinguishes "no candidate examined" from an exact match at distance 0.
type QueryResult struct {
	Item     *Item         // best item, nil when not found
	Name     string        // name of the best item
	Distance float64       // distance of the best item to the query
	Elapsed  time.Duration // wall time spent on the query
	Found    bool
}

// NotFound returns the result of a query that examined no candidate.
func NotFound() QueryResult {
	return QueryResult{
		Name:     notFoundName,
		Distance: -1,
		Elapsed:  -1,
	}
}

// NewQueryResult returns a found result for item at distance dist.
func NewQueryResult(item *Item, dist float64, elapsed time.Duration) QueryResult {
	return QueryResult{
		Item:     item,
		Name:     item.Name,
		Distance: dist,
		Elapsed:  elapsed,
		Found:    true,
	}
}
