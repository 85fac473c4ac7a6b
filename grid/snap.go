// Package grid discretizes curves on a randomly shifted square grid so that
// curves can be searched as fixed-length vectors.
package grid

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/patrikhermansson/lshgrid/core"
)

var (
	// ErrInvalidDelta is returned for a non-positive cell size.
	ErrInvalidDelta = errors.New("grid cell size must be positive")
	// ErrInvalidDimension is returned for a vector dimension that cannot hold 2-D points.
	ErrInvalidDimension = errors.New("curve vector dimension must be a positive even number")
	// ErrCurveTooLong is returned when a snapped curve does not fit the target length.
	ErrCurveTooLong = errors.New("snapped curve is longer than the target length")
)

// Overflow selects what happens to snapped curves longer than the target length.
type Overflow int

const (
	// OverflowReject fails the transform with ErrCurveTooLong.
	OverflowReject Overflow = iota
	// OverflowTruncate keeps the first target-length points.
	OverflowTruncate
)

// ParseOverflow maps "reject" or "truncate" to an Overflow policy.
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "reject", "":
		return OverflowReject, nil
	case "truncate":
		return OverflowTruncate, nil
	}
	return OverflowReject, fmt.Errorf("unknown overflow policy %q", s)
}

// String returns the name of the policy.
func (o Overflow) String() string {
	if o == OverflowTruncate {
		return "truncate"
	}
	return "reject"
}

// Snapper maps curves onto the grid of cell size Delta offset by Shift.
// One Snapper must be used for a whole dataset and its queries so that cell
// boundaries agree.
type Snapper struct {
	Delta    float64    // grid cell size
	Shift    core.Point // grid offset, fixed for the lifetime of the snapper
	Length   int        // number of points of every transformed curve
	Overflow Overflow   // policy for curves longer than Length
}

// NewSnapper creates a snapper for vectors of the given dimension with a shift
// drawn uniformly from [0, delta)^2.
func NewSnapper(delta float64, dimension int, rnd *rand.Rand) (*Snapper, error) {
	if err := Validate(delta, dimension); err != nil {
		return nil, err
	}
	shift := core.Point{X: rnd.Float64() * delta, Y: rnd.Float64() * delta}
	return NewSnapperWithShift(delta, dimension, shift)
}

// Validate checks a cell size and a vector dimension without drawing a shift.
func Validate(delta float64, dimension int) error {
	if !(delta > 0) || math.IsInf(delta, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidDelta, delta)
	}
	if dimension < 2 || dimension%2 != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDimension, dimension)
	}
	return nil
}

// NewSnapperWithShift creates a snapper with a known shift.
func NewSnapperWithShift(delta float64, dimension int, shift core.Point) (*Snapper, error) {
	if err := Validate(delta, dimension); err != nil {
		return nil, err
	}
	return &Snapper{
		Delta:  delta,
		Shift:  shift,
		Length: dimension / 2,
	}, nil
}

// Dimension returns the length of the vectors produced by Transform.
func (s *Snapper) Dimension() int {
	return 2 * s.Length
}

// SnapPoint returns the grid vertex nearest to p in Manhattan distance.
// The four vertices of the cell around p are tried in the order up-left,
// up-right, down-left, down-right and a later vertex only wins when strictly nearer.
func (s *Snapper) SnapPoint(p core.Point) core.Point {
	fx := (p.X - s.Shift.X) / s.Delta
	fy := (p.Y - s.Shift.Y) / s.Delta
	left := math.Floor(fx)*s.Delta + s.Shift.X
	right := math.Ceil(fx)*s.Delta + s.Shift.X
	down := math.Floor(fy)*s.Delta + s.Shift.Y
	up := math.Ceil(fy)*s.Delta + s.Shift.Y

	candidates := [4]core.Point{
		{X: left, Y: up},
		{X: right, Y: up},
		{X: left, Y: down},
		{X: right, Y: down},
	}
	best := candidates[0]
	bestDist := core.ManhattanPoints(best, p)
	for _, c := range candidates[1:] {
		if d := core.ManhattanPoints(c, p); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// Snap snaps every point of c and collapses consecutive duplicate vertices.
func (s *Snapper) Snap(c core.Curve) []core.Point {
	snapped := make([]core.Point, 0, len(c.Points))
	for _, p := range c.Points {
		v := s.SnapPoint(p)
		if n := len(snapped); n > 0 && snapped[n-1].Equal(v) {
			continue
		}
		snapped = append(snapped, v)
	}
	return snapped
}

// Pad right-pads points with origin points up to Length.
// The result never aliases points.
func (s *Snapper) Pad(points []core.Point) ([]core.Point, error) {
	if len(points) > s.Length {
		if s.Overflow != OverflowTruncate {
			return nil, fmt.Errorf("%w: %d points, target %d", ErrCurveTooLong, len(points), s.Length)
		}
		points = points[:s.Length]
	}
	padded := make([]core.Point, s.Length)
	copy(padded, points)
	return padded, nil
}

// Flatten lays the points out as x1, y1, x2, y2, ...
func Flatten(points []core.Point) []float64 {
	coords := make([]float64, 0, 2*len(points))
	for _, p := range points {
		coords = append(coords, p.X, p.Y)
	}
	return coords
}

// Transform snaps, deduplicates, pads and flattens c.
// The grid curve and the item both refer back to the original curve through source.
func (s *Snapper) Transform(c core.Curve, source int) (core.Curve, *core.Item, error) {
	padded, err := s.Pad(s.Snap(c))
	if err != nil {
		return core.Curve{}, nil, fmt.Errorf("curve %s: %w", c.Name, err)
	}
	gridCurve := core.Curve{Name: c.Name, Points: padded, Source: source}
	item := &core.Item{Name: c.Name, Coords: Flatten(padded), Source: source}
	return gridCurve, item, nil
}
