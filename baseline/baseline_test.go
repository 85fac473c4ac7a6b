package baseline_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/patrikhermansson/lshgrid/baseline"
	"github.com/patrikhermansson/lshgrid/core"
)

func TestExhaustive_Search(t *testing.T) {
	e := baseline.NewExhaustive(2)
	items := []*core.Item{
		core.NewItem("a", []float64{5, 5}),
		core.NewItem("b", []float64{1, 1}),
		core.NewItem("c", []float64{-1, -1}),
	}
	if err := e.BulkInsert(items); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}
	res, err := e.Search([]float64{0, 0}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	// b and c tie at distance 2; the earlier one wins.
	if res.Item != items[1] || res.Distance != 2 {
		t.Errorf("expected b at distance 2, got %+v", res)
	}
	if e.Stats().Count != 3 {
		t.Errorf("expected 3 items, got %d", e.Stats().Count)
	}
}

func TestExhaustive_Errors(t *testing.T) {
	e := baseline.NewExhaustive(3)
	if err := e.Insert(core.NewItem("x", []float64{1})); !errors.Is(err, core.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := e.Search([]float64{1, 2, 3}, 0); err == nil {
		t.Errorf("expected error for threshold 0")
	}
	res, err := e.Search([]float64{1, 2, 3}, 1)
	if err != nil || res.Found {
		t.Errorf("expected not found on empty index, got %+v, %v", res, err)
	}
}

func TestExhaustive_RangeSearch(t *testing.T) {
	e := baseline.NewExhaustive(1)
	for i, x := range []float64{3, 0, 1, 7} {
		if err := e.Insert(core.NewItem(string(rune('a'+i)), []float64{x})); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	neighbors, err := e.RangeSearch([]float64{0}, 1)
	if err != nil {
		t.Fatalf("RangeSearch failed: %v", err)
	}
	if len(neighbors) != 2 || neighbors[0].Item.Name != "b" || neighbors[1].Item.Name != "c" {
		t.Errorf("unexpected neighbors %+v", neighbors)
	}
}

func TestDTW_Known(t *testing.T) {
	p := []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	q := []core.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}
	d, err := baseline.DTW(p, q)
	if err != nil {
		t.Fatalf("DTW failed: %v", err)
	}
	if d != 1 {
		t.Errorf("expected 1, got %v", d)
	}
	single, _ := baseline.DTW(p[:1], []core.Point{{X: 3, Y: 4}})
	if single != 5 {
		t.Errorf("expected 5 for single points, got %v", single)
	}
}

func TestDTW_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	randomCurve := func(n int) []core.Point {
		points := make([]core.Point, n)
		for i := range points {
			points[i] = core.Point{X: rnd.Float64() * 10, Y: rnd.Float64() * 10}
		}
		return points
	}
	for i := 0; i < 20; i++ {
		p := randomCurve(1 + rnd.Intn(10))
		q := randomCurve(1 + rnd.Intn(10))
		self, err := baseline.DTW(p, p)
		if err != nil || self != 0 {
			t.Errorf("expected DTW(p, p) = 0, got %v, %v", self, err)
		}
		pq, _ := baseline.DTW(p, q)
		qp, _ := baseline.DTW(q, p)
		if math.Abs(pq-qp) > 1e-9 {
			t.Errorf("DTW not symmetric: %v vs %v", pq, qp)
		}
		if pq < 0 {
			t.Errorf("negative DTW %v", pq)
		}
	}
}

func TestDTW_Empty(t *testing.T) {
	if _, err := baseline.DTW(nil, []core.Point{{}}); !errors.Is(err, baseline.ErrEmptyCurve) {
		t.Errorf("expected ErrEmptyCurve, got %v", err)
	}
}

func TestExhaustiveCurveSearch(t *testing.T) {
	curves := []core.Curve{
		core.NewCurve("far", []core.Point{{X: 10, Y: 10}, {X: 11, Y: 11}}),
		core.NewCurve("near", []core.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}),
	}
	res, err := baseline.ExhaustiveCurveSearch(curves, core.NewCurve("q", []core.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}))
	if err != nil {
		t.Fatalf("ExhaustiveCurveSearch failed: %v", err)
	}
	if !res.Found || res.Name != "near" || res.Distance != 0 {
		t.Errorf("expected near at distance 0, got %+v", res)
	}
	res, err = baseline.ExhaustiveCurveSearch(nil, curves[0])
	if err != nil || res.Found {
		t.Errorf("expected not found for no curves, got %+v, %v", res, err)
	}
	if _, err := baseline.ExhaustiveCurveSearch(curves, core.NewCurve("empty", nil)); !errors.Is(err, baseline.ErrEmptyCurve) {
		t.Errorf("expected ErrEmptyCurve, got %v", err)
	}
}
