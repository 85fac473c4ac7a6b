package core

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Distances is a map of human-readable names to distance functions.
// You can use it to choose a distance metric by name.
var Distances = map[string]DistanceFunc{
	"manhattan": Manhattan,
	"euclidean": Euclidean,
}

// Manhattan computes the Manhattan (L1) distance between two vectors.
func Manhattan(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		panic("vectors must not be empty")
	}
	if len(a) != len(b) {
		panic("vectors must have the same length")
	}
	return floats.Distance(a, b, 1)
}

// Euclidean computes the Euclidean (L2) distance between two vectors.
func Euclidean(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		panic("vectors must not be empty")
	}
	if len(a) != len(b) {
		panic("vectors must have the same length")
	}
	return floats.Distance(a, b, 2)
}

// ManhattanPoints computes the Manhattan distance between two points of the plane.
func ManhattanPoints(p, q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// EuclideanPoints computes the Euclidean distance between two points of the plane.
func EuclideanPoints(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}
