// Package report writes per-query results and aggregate statistics of a run.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/patrikhermansson/lshgrid/core"
	"gopkg.in/yaml.v3"
)

// Record is the outcome of one query against the approximate index and the
// exact baseline.
type Record struct {
	Query     string
	Approx    core.QueryResult
	Exact     core.QueryResult
	Radius    float64         // range search radius, 0 when disabled
	Neighbors []core.Neighbor // approximate neighbors within Radius
}

// Format names of Write.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Write writes records to w in the given format.
func Write(w io.Writer, format string, records []Record) error {
	switch format {
	case FormatText, "":
		return writeText(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	}
	return fmt.Errorf("unknown report format %q", format)
}

func writeText(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		fmt.Fprintf(bw, "Query: %s\n", r.Query)
		if r.Approx.Found {
			fmt.Fprintf(bw, "Approx Nearest neighbor: %s\n", r.Approx.Name)
		} else {
			fmt.Fprintln(bw, "Approx Nearest neighbor: NOT FOUND")
		}
		if r.Exact.Found {
			fmt.Fprintf(bw, "True Nearest neighbor: %s\n", r.Exact.Name)
		} else {
			fmt.Fprintln(bw, "True Nearest neighbor: NOT FOUND")
		}
		if r.Approx.Found {
			fmt.Fprintf(bw, "distanceLSH: %g\n", r.Approx.Distance)
		}
		if r.Exact.Found {
			fmt.Fprintf(bw, "distanceTrue: %g\n", r.Exact.Distance)
		}
		if r.Approx.Found {
			fmt.Fprintf(bw, "tLSH: %v\n", r.Approx.Elapsed)
		}
		if r.Exact.Found {
			fmt.Fprintf(bw, "tTrue: %v\n", r.Exact.Elapsed)
		}
		if r.Radius > 0 {
			fmt.Fprintf(bw, "%g-near neighbors:\n", r.Radius)
			for _, n := range r.Neighbors {
				fmt.Fprintln(bw, n.Item.Name)
			}
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

type yamlResult struct {
	Name     string  `yaml:"name"`
	Distance float64 `yaml:"distance"`
	Seconds  float64 `yaml:"seconds"`
}

type yamlNeighbor struct {
	Name     string  `yaml:"name"`
	Distance float64 `yaml:"distance"`
}

type yamlRecord struct {
	Query     string         `yaml:"query"`
	Approx    *yamlResult    `yaml:"approximate"`
	Exact     *yamlResult    `yaml:"exact"`
	Radius    float64        `yaml:"radius,omitempty"`
	Neighbors []yamlNeighbor `yaml:"neighbors,omitempty"`
}

func toYAMLResult(r core.QueryResult) *yamlResult {
	if !r.Found {
		return nil
	}
	return &yamlResult{Name: r.Name, Distance: r.Distance, Seconds: r.Elapsed.Seconds()}
}

func writeYAML(w io.Writer, records []Record) error {
	out := make([]yamlRecord, len(records))
	for i, r := range records {
		out[i] = yamlRecord{
			Query:  r.Query,
			Approx: toYAMLResult(r.Approx),
			Exact:  toYAMLResult(r.Exact),
			Radius: r.Radius,
		}
		for _, n := range r.Neighbors {
			out[i].Neighbors = append(out[i].Neighbors, yamlNeighbor{Name: n.Item.Name, Distance: n.Distance})
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return enc.Close()
}
