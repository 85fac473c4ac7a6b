//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/patrikhermansson/lshgrid/core"
	"github.com/patrikhermansson/lshgrid/lsh"
)

// Note: set LSHGRID_SEED to get the same hash families on every run.

func main() {

	// Set the logger to output to the console.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Index parameters.
	dim := 6
	distanceName := "manhattan"
	cfg := lsh.DefaultConfig(dim)
	cfg.W = 4

	// Create an LSH index with the given parameters.
	index, err := lsh.New(cfg)
	if err != nil {
		log.Fatal().Msgf("New failed: %v", err)
	}
	index.Distance = core.Distances[distanceName]
	index.DistanceName = distanceName
	fmt.Println("Created new LSH index.")

	// Add a few vectors.
	fmt.Println("Adding vectors...")
	items := []*core.Item{
		core.NewItem("v1", []float64{1, 2, 3, 4, 5, 6}),
		core.NewItem("v2", []float64{6, 5, 4, 3, 2, 1}),
		core.NewItem("v3", []float64{1, 1, 1, 1, 1, 1}),
		core.NewItem("v4", []float64{2, 2, 2, 2, 2, 2}),
		core.NewItem("v5", []float64{3, 3, 3, 3, 3, 3}),
		core.NewItem("v6", []float64{4, 4, 4, 4, 4, 4}),
		core.NewItem("v7", []float64{5, 5, 5, 5, 5, 5}),
		core.NewItem("v8", []float64{6, 6, 6, 6, 6, 6}),
	}
	if err := index.BulkInsert(items); err != nil {
		log.Fatal().Msgf("BulkInsert failed: %v", err)
	}
	fmt.Printf("Index stats after BulkInsert: %+v\n", index.Stats())

	// Search for the nearest neighbor of a query vector.
	query := []float64{1, 2, 3, 4, 5, 5}
	threshold := lsh.DefaultSearchThreshold(cfg.L)
	fmt.Println("Searching nearest neighbor for vector:", query)
	res, err := index.Search(query, threshold)
	if err != nil {
		log.Fatal().Msgf("Search failed: %v", err)
	}
	if res.Found {
		fmt.Printf("Nearest: %s, Distance: %f, Time: %v\n", res.Name, res.Distance, res.Elapsed)
	} else {
		fmt.Println("No candidate shares a bucket with the query.")
	}

	// Search every vector within a radius.
	neighbors, err := index.RangeSearch(query, 6, threshold)
	if err != nil {
		log.Fatal().Msgf("RangeSearch failed: %v", err)
	}
	fmt.Println("Range search results:")
	for _, n := range neighbors {
		fmt.Printf("Name: %s, Distance: %f\n", n.Item.Name, n.Distance)
	}
}
