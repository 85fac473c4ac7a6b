//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/patrikhermansson/lshgrid/baseline"
	"github.com/patrikhermansson/lshgrid/core"
	"github.com/patrikhermansson/lshgrid/curve"
	"github.com/patrikhermansson/lshgrid/lsh"
)

func main() {

	// Set the logger to output to the console.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	curves := []core.Curve{
		core.NewCurve("diagonal", []core.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}),
		core.NewCurve("flat", []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}),
		core.NewCurve("steep", []core.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}),
	}

	// Every curve is padded to 8 points, so vectors have 16 coordinates.
	index, err := curve.New(curve.Config{
		LSH:   lsh.DefaultConfig(16),
		Delta: 0.5,
	})
	if err != nil {
		log.Fatal().Msgf("New failed: %v", err)
	}
	if err := index.BulkInsert(curves); err != nil {
		log.Fatal().Msgf("BulkInsert failed: %v", err)
	}
	fmt.Printf("Grid shift: %+v\n", index.Snapper().Shift)

	query := core.NewCurve("query", []core.Point{{X: 0.1, Y: 0}, {X: 1.1, Y: 0.9}, {X: 2, Y: 2.2}})
	match, err := index.Search(query, lsh.DefaultSearchThreshold(lsh.DefaultL))
	if err != nil {
		log.Fatal().Msgf("Search failed: %v", err)
	}
	if !match.Result.Found {
		fmt.Println("No candidate shares a bucket with the query.")
		return
	}
	dtw, err := baseline.DTW(match.Original.Points, query.Points)
	if err != nil {
		log.Fatal().Msgf("DTW failed: %v", err)
	}
	fmt.Printf("Nearest curve: %s, grid distance: %f, DTW: %f\n", match.Original.Name, match.Result.Distance, dtw)
	fmt.Printf("Grid curve: %v\n", match.Grid.Points)
}
