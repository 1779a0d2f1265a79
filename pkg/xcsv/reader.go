// Package xcsv reads extended CSV files: a "# key: value" metadata header
// followed by a column-labelled table of numeric data.
package xcsv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/brianbland/xcsvplot/pkg/dataset"
)

const (
	headerPrefix = "#"
	keySeparator = ": "
)

// Read parses one extended CSV document.
func Read(r io.Reader) (*dataset.Dataset, error) {
	br := bufio.NewReader(r)
	md, first, offset, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if first == "" {
		return nil, fmt.Errorf("no column header row")
	}

	cr := csv.NewReader(io.MultiReader(strings.NewReader(first), br))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		labels  []string
		columns [][]float64
	)

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		line += offset

		if labels == nil {
			labels = make([]string, len(record))
			for i, label := range record {
				labels[i] = strings.TrimSpace(label)
			}
			columns = make([][]float64, len(labels))
			continue
		}

		if len(record) != len(labels) {
			return nil, fmt.Errorf("line %d: %d fields, want %d", line, len(record), len(labels))
		}
		for i, field := range record {
			v, err := parseValue(field)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line, labels[i], err)
			}
			columns[i] = append(columns[i], v)
		}
	}

	if labels == nil {
		return nil, fmt.Errorf("no column header row")
	}

	md.ColumnHeaders = make(map[string]dataset.ColumnHeader, len(labels))
	for _, label := range labels {
		md.ColumnHeaders[label] = dataset.ParseColumnHeader(label)
	}
	for i := range columns {
		if columns[i] == nil {
			columns[i] = []float64{}
		}
	}

	return dataset.New(labels, columns, md)
}

// readHeader consumes the "#" lines at the top of r. It returns the first
// line of the table, with its line ending, and the number of lines read
// before it.
func readHeader(r *bufio.Reader) (dataset.Metadata, string, int, error) {
	var (
		md      dataset.Metadata
		lastKey string
		n       int
	)
	for {
		raw, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return md, "", n, fmt.Errorf("failed to read CSV: %w", err)
		}
		if raw == "" {
			return md, "", n, nil
		}
		n++

		line := strings.TrimRight(raw, "\r\n")
		switch {
		case strings.TrimSpace(line) == "":
		case strings.HasPrefix(line, headerPrefix):
			lastKey = parseHeaderLine(&md, line, lastKey)
		case strings.HasPrefix(line, `"`+headerPrefix):
			text, err := unquoteLine(line)
			if err != nil {
				return md, "", n, fmt.Errorf("line %d: %w", n, err)
			}
			lastKey = parseHeaderLine(&md, text, lastKey)
		default:
			return md, raw, n - 1, nil
		}
		if errors.Is(err, io.EOF) {
			return md, "", n, nil
		}
	}
}

// unquoteLine removes the CSV quoting from a header line that was written
// as a single quoted field.
func unquoteLine(line string) (string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	record, err := cr.Read()
	if err != nil {
		return "", fmt.Errorf("failed to read header line: %w", err)
	}
	return strings.Join(record, ","), nil
}

// ReadFile reads the extended CSV file at path.
func ReadFile(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// parseHeaderLine records one header line in md and returns the key that a
// following continuation line belongs to.
func parseHeaderLine(md *dataset.Metadata, line, lastKey string) string {
	text := strings.TrimPrefix(line, headerPrefix)
	text = strings.TrimPrefix(text, " ")

	if key, value, ok := strings.Cut(text, keySeparator); ok && key != "" {
		md.Add(key, value)
		return key
	}
	if key, ok := strings.CutSuffix(text, ":"); ok && key != "" && !strings.Contains(key, " ") {
		md.Declare(key)
		return key
	}
	if lastKey != "" {
		md.Add(lastKey, text)
	}
	return lastKey
}

func parseValue(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(field, 64)
}
