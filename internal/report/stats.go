package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/patrikhermansson/lshgrid/core"
)

// Summary aggregates the records of a run.
//
// The rate of a query is the approximate distance divided by the exact one.
// A query whose exact distance is zero has rate 1 when the approximate
// distance is zero too and is left out of the rate statistics otherwise.
type Summary struct {
	Queries   int           // number of queries
	Found     int           // queries with an approximate neighbor
	Exact     int           // queries whose approximate neighbor is the exact one
	Rated     int           // queries contributing to the rate statistics
	MaxRate   float64       // largest rate, 0 when nothing was rated
	SumRate   float64       // sum of rates
	SumDist   float64       // sum of approximate distances of found queries
	SumApprox time.Duration // total approximate query time of found queries
	SumExact  time.Duration // total exact query time
	InRange   int           // range neighbors over all queries
}

// Summarize aggregates records.
func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		s.Add(r)
	}
	return s
}

// Add accounts one record.
func (s *Summary) Add(r Record) {
	s.Queries++
	s.InRange += len(r.Neighbors)
	if r.Exact.Found {
		s.SumExact += r.Exact.Elapsed
	}
	if !r.Approx.Found {
		return
	}
	s.Found++
	s.SumDist += r.Approx.Distance
	s.SumApprox += r.Approx.Elapsed
	if r.Exact.Found && r.Approx.Name == r.Exact.Name {
		s.Exact++
	}
	if rate, ok := rateOf(r.Approx.Distance, r.Exact); ok {
		s.Rated++
		s.SumRate += rate
		s.MaxRate = math.Max(s.MaxRate, rate)
	}
}

func rateOf(approx float64, exact core.QueryResult) (float64, bool) {
	switch {
	case !exact.Found:
		return 0, false
	case exact.Distance == 0 && approx == 0:
		return 1, true
	case exact.Distance == 0:
		return 0, false
	}
	return approx / exact.Distance, true
}

// AverageRate returns the mean rate over the rated queries.
func (s Summary) AverageRate() float64 {
	if s.Rated == 0 {
		return 0
	}
	return s.SumRate / float64(s.Rated)
}

// AverageTime returns the mean approximate query time over the found queries.
func (s Summary) AverageTime() time.Duration {
	if s.Found == 0 {
		return 0
	}
	return s.SumApprox / time.Duration(s.Found)
}

// AverageExactTime returns the mean exact query time.
func (s Summary) AverageExactTime() time.Duration {
	if s.Queries == 0 {
		return 0
	}
	return s.SumExact / time.Duration(s.Queries)
}

// AverageDistance returns the mean approximate distance over the found queries.
func (s Summary) AverageDistance() float64 {
	if s.Found == 0 {
		return 0
	}
	return s.SumDist / float64(s.Found)
}

// Render draws the summary as a table.
func (s Summary) Render(w io.Writer, title string) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(title)
	tbl.AppendHeader(table.Row{"statistic", "value"})
	tbl.AppendRows([]table.Row{
		{"approximate neighbors found", fmt.Sprintf("%s/%s", humanize.Comma(int64(s.Found)), humanize.Comma(int64(s.Queries)))},
		{"exact neighbors found", fmt.Sprintf("%s/%s", humanize.Comma(int64(s.Exact)), humanize.Comma(int64(s.Queries)))},
		{"max rate", humanize.FtoaWithDigits(s.MaxRate, 4)},
		{"average rate", humanize.FtoaWithDigits(s.AverageRate(), 4)},
		{"average distance", humanize.FtoaWithDigits(s.AverageDistance(), 4)},
		{"average query time", s.AverageTime().String()},
		{"average exact query time", s.AverageExactTime().String()},
	})
	if s.InRange > 0 {
		tbl.AppendRow(table.Row{"range neighbors", humanize.Comma(int64(s.InRange))})
	}
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
