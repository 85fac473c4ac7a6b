// Package dataset reads the whitespace separated input files of the command
// line programs.
//
// A vector file holds one item per line: a name followed by its coordinates.
// A range query file may start a line with "Radius:" to set the search radius.
// A curve file holds one curve per line: a name, the number of points and the
// points written as "(x, y)".
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/patrikhermansson/lshgrid/core"
	"github.com/rs/zerolog/log"
)

// RadiusKeyword starts the line of a range query file that sets the radius.
const RadiusKeyword = "Radius:"

// maxLineSize bounds the length of one input line.
const maxLineSize = 64 * 1024 * 1024

var (
	// ErrMixedDimensions is returned when the vectors of a file differ in length.
	ErrMixedDimensions = errors.New("vectors of different dimensions")
	// ErrEmptyFile is returned when a file holds no item at all.
	ErrEmptyFile = errors.New("no items in file")
	// ErrEmptyCurve is returned for a curve line without any point.
	ErrEmptyCurve = errors.New("curve has no points")
)

// ReadVectors loads the named vectors of the file at path.
func ReadVectors(path string) ([]*core.Item, error) {
	items, _, err := readFile(path, func(r io.Reader) ([]*core.Item, float64, error) {
		items, err := ParseVectors(r)
		return items, 0, err
	})
	return items, err
}

// ReadRangeVectors loads a range query file and returns its vectors and radius.
// The radius is zero when the file does not set one.
func ReadRangeVectors(path string) ([]*core.Item, float64, error) {
	return readFile(path, ParseRangeVectors)
}

// ReadCurves loads the curves of the file at path and the length of the longest one.
func ReadCurves(path string) ([]core.Curve, int, error) {
	log.Info().Msgf("Loading curves from: %s", path)
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	curves, maxLen, err := ParseCurves(file)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	log.Info().Msgf("Loaded %d curves (longest has %d points) from %s", len(curves), maxLen, path)
	return curves, maxLen, nil
}

func readFile(path string, parse func(io.Reader) ([]*core.Item, float64, error)) ([]*core.Item, float64, error) {
	log.Info().Msgf("Loading vectors from: %s", path)
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	items, radius, err := parse(file)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	log.Info().Msgf("Loaded %d vectors from %s", len(items), path)
	return items, radius, nil
}

// ParseVectors reads vector lines from r. Blank lines are skipped.
func ParseVectors(r io.Reader) ([]*core.Item, error) {
	items, radius, err := ParseRangeVectors(r)
	if err == nil && radius != 0 {
		log.Warn().Msgf("Ignoring %s %v in a vector file", RadiusKeyword, radius)
	}
	return items, err
}

// ParseRangeVectors reads vector lines from r, taking the radius from a
// "Radius:" line. All vectors must have the same dimension.
func ParseRangeVectors(r io.Reader) ([]*core.Item, float64, error) {
	var items []*core.Item
	var radius float64
	err := scanLines(r, func(lineNo int, fields []string) error {
		if fields[0] == RadiusKeyword {
			if len(fields) != 2 {
				return fmt.Errorf("line %d: expected one value after %s", lineNo, RadiusKeyword)
			}
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return fmt.Errorf("line %d: parse radius: %w", lineNo, err)
			}
			radius = v
			return nil
		}
		if len(fields) < 2 {
			return fmt.Errorf("line %d: item %s has no coordinates", lineNo, fields[0])
		}
		coords := make([]float64, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return fmt.Errorf("line %d: parse error at col %d: %w", lineNo, i+1, err)
			}
			coords[i] = v
		}
		if len(items) > 0 && len(coords) != items[0].Dimension() {
			return fmt.Errorf("line %d: %w: got %d, want %d",
				lineNo, ErrMixedDimensions, len(coords), items[0].Dimension())
		}
		items = append(items, core.NewItem(fields[0], coords))
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if len(items) == 0 {
		return nil, 0, ErrEmptyFile
	}
	log.Debug().Msgf("Parsed %d vectors of dimension %d", len(items), items[0].Dimension())
	return items, radius, nil
}

// ParseCurves reads curve lines from r and returns the curves and the number
// of points of the longest one. A declared length that disagrees with the
// points on the line is reported and the points win.
func ParseCurves(r io.Reader) ([]core.Curve, int, error) {
	var curves []core.Curve
	maxLen := 0
	err := scanLines(r, func(lineNo int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("line %d: missing curve length", lineNo)
		}
		declared, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("line %d: parse curve length: %w", lineNo, err)
		}
		points, err := parsePoints(strings.Join(fields[2:], " "))
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(points) == 0 {
			return fmt.Errorf("line %d: curve %s: %w", lineNo, fields[0], ErrEmptyCurve)
		}
		if declared != len(points) {
			log.Warn().Msgf("Curve %s declares %d points but has %d", fields[0], declared, len(points))
		}
		maxLen = max(maxLen, len(points))
		curves = append(curves, core.NewCurve(fields[0], points))
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if len(curves) == 0 {
		return nil, 0, ErrEmptyFile
	}
	return curves, maxLen, nil
}

// parsePoints parses "(x1, y1) (x2, y2) ...".
func parsePoints(s string) ([]core.Point, error) {
	var points []core.Point
	rest := strings.TrimSpace(s)
	for rest != "" {
		if rest[0] != '(' {
			return nil, fmt.Errorf("point %d: expected '(' in %q", len(points)+1, rest)
		}
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return nil, fmt.Errorf("point %d: missing ')'", len(points)+1)
		}
		xs, ys, ok := strings.Cut(rest[1:end], ",")
		if !ok {
			return nil, fmt.Errorf("point %d: expected \"(x, y)\"", len(points)+1)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", len(points)+1, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", len(points)+1, err)
		}
		points = append(points, core.Point{X: x, Y: y})
		rest = strings.TrimSpace(rest[end+1:])
	}
	return points, nil
}

// scanLines calls fn with the fields of every non-blank line of r.
func scanLines(r io.Reader, fn func(lineNo int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := fn(lineNo, fields); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	return nil
}
