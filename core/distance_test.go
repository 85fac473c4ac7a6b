package core

import (
	"math"
	"testing"
)

// almostEqual compares two floating-point values with a tolerance.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestDistanceFunctions(t *testing.T) {
	tests := []struct {
		name              string
		a, b              []float64
		expectedManhattan float64
		expectedEuclidean float64
	}{
		{
			name:              "Identical Vectors",
			a:                 []float64{1, 2, 3, 4, 5, 6},
			b:                 []float64{1, 2, 3, 4, 5, 6},
			expectedManhattan: 0,
			expectedEuclidean: 0,
		},
		{
			name: "Opposite Order",
			a:    []float64{1, 2, 3, 4, 5, 6},
			b:    []float64{6, 5, 4, 3, 2, 1},
			// Manhattan=18, squared Euclidean=70.
			expectedManhattan: 18,
			expectedEuclidean: math.Sqrt(70),
		},
		{
			name:              "Negative Coordinates",
			a:                 []float64{-1, -2, 3},
			b:                 []float64{1, 2, -3},
			expectedManhattan: 12,
			expectedEuclidean: math.Sqrt(56),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			manhattan := Manhattan(tt.a, tt.b)
			euclid := Euclidean(tt.a, tt.b)

			if !almostEqual(manhattan, tt.expectedManhattan, 1e-9) {
				t.Errorf("Manhattan(%v, %v) = %v; want %v", tt.a, tt.b, manhattan, tt.expectedManhattan)
			}
			if !almostEqual(euclid, tt.expectedEuclidean, 1e-9) {
				t.Errorf("Euclidean(%v, %v) = %v; want %v", tt.a, tt.b, euclid, tt.expectedEuclidean)
			}
		})
	}
}

func TestManhattanPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for vectors of different length")
		}
	}()
	Manhattan([]float64{1, 2}, []float64{1, 2, 3})
}

func TestPointDistances(t *testing.T) {
	p := Point{X: 0, Y: 0}
	q := Point{X: 3, Y: 4}
	if d := ManhattanPoints(p, q); d != 7 {
		t.Errorf("ManhattanPoints = %v; want 7", d)
	}
	if d := EuclideanPoints(p, q); !almostEqual(d, 5, 1e-12) {
		t.Errorf("EuclideanPoints = %v; want 5", d)
	}
}
