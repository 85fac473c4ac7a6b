package core

import (
	"testing"
	"time"
)

func TestPointEqual(t *testing.T) {
	if !(Point{X: 1.5, Y: -2}).Equal(Point{X: 1.5, Y: -2}) {
		t.Errorf("expected identical points to be equal")
	}
	if (Point{X: 1.5, Y: -2}).Equal(Point{X: 1.5, Y: -2.0000001}) {
		t.Errorf("expected points with different coordinates to differ")
	}
}

func TestNewItemAndCurve(t *testing.T) {
	it := NewItem("a", []float64{1, 2, 3})
	if it.Source != NoSource {
		t.Errorf("expected NoSource, got %d", it.Source)
	}
	if it.Dimension() != 3 {
		t.Errorf("expected dimension 3, got %d", it.Dimension())
	}
	c := NewCurve("c", []Point{{0, 0}, {1, 1}})
	if c.Source != NoSource || c.Len() != 2 {
		t.Errorf("unexpected curve %+v", c)
	}
}

func TestQueryResults(t *testing.T) {
	nf := NotFound()
	if nf.Found || nf.Name != "NULL" || nf.Distance != -1 || nf.Elapsed != -1 {
		t.Errorf("unexpected not-found result %+v", nf)
	}

	it := NewItem("x", []float64{0})
	res := NewQueryResult(it, 0, time.Millisecond)
	if !res.Found || res.Item != it || res.Name != "x" || res.Distance != 0 {
		t.Errorf("unexpected result %+v", res)
	}
}
