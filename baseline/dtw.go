package baseline

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/patrikhermansson/lshgrid/core"
)

// ErrEmptyCurve is returned when DTW is asked to align a curve without points.
var ErrEmptyCurve = errors.New("curve has no points")

// DTW returns the dynamic time warping distance between p and q, using the
// Euclidean distance between aligned points.
func DTW(p, q []core.Point) (float64, error) {
	m, n := len(p), len(q)
	if m == 0 || n == 0 {
		return 0, ErrEmptyCurve
	}
	// Two rows of the m x n table are enough.
	prev := make([]float64, n)
	cur := make([]float64, n)
	prev[0] = core.EuclideanPoints(p[0], q[0])
	for j := 1; j < n; j++ {
		prev[j] = prev[j-1] + core.EuclideanPoints(p[0], q[j])
	}
	for i := 1; i < m; i++ {
		cur[0] = prev[0] + core.EuclideanPoints(p[i], q[0])
		for j := 1; j < n; j++ {
			cur[j] = core.EuclideanPoints(p[i], q[j]) + math.Min(prev[j-1], math.Min(cur[j-1], prev[j]))
		}
		prev, cur = cur, prev
	}
	return prev[n-1], nil
}

// ExhaustiveCurveSearch returns the curve of curves with the smallest DTW
// distance to query. The result carries the curve name and no item.
func ExhaustiveCurveSearch(curves []core.Curve, query core.Curve) (core.QueryResult, error) {
	start := time.Now()
	best := -1
	bestDist := math.Inf(1)
	for i, c := range curves {
		d, err := DTW(c.Points, query.Points)
		if err != nil {
			return core.NotFound(), fmt.Errorf("dtw %s/%s: %w", c.Name, query.Name, err)
		}
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return core.NotFound(), nil
	}
	return core.QueryResult{
		Name:     curves[best].Name,
		Distance: bestDist,
		Elapsed:  time.Since(start),
		Found:    true,
	}, nil
}
