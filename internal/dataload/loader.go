package dataload

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// SourceFormat identifies how a source file is structured.
type SourceFormat string

// Supported source formats
const (
	FormatCSV  SourceFormat = "csv"
	FormatText SourceFormat = "txt"
)

// aggregationWindow is the fixed resampling window for log-activity mode.
const aggregationWindow = time.Minute

// maxAggregationBuckets bounds the zero-filled bucket range so a stray
// timestamp far in the past or future cannot exhaust memory.
const maxAggregationBuckets = 1 << 20

// Common loader errors
var (
	ErrEmptyFile      = errors.New("file contains no data rows")
	ErrColumnNotFound = errors.New("column not found")
)

// timestampLayouts are tried in order when parsing event timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Options controls how a source file is turned into a series.
type Options struct {
	// TimestampColumn names the CSV column holding event timestamps.
	TimestampColumn string

	// ValueColumn names the CSV column holding numeric values.
	ValueColumn string

	// Delimiter separates values in text files.
	Delimiter string

	// HasHeader indicates a text file's first line should be skipped.
	HasHeader bool

	// Aggregate switches CSV loading to log-activity mode: events are
	// counted into continuous one-minute windows between the first and
	// last timestamp, with empty windows contributing zero.
	Aggregate bool
}

// Loader reads source files into numeric series. The zero value is ready
// to use.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the file at path into a numeric series. In direct
// value-column mode, unparseable cells become NaN so callers can apply
// their own before/after-cleaning length checks.
func (l *Loader) Load(path string, format SourceFormat, opts Options) ([]float64, error) {
	switch format {
	case FormatCSV:
		return l.loadCSV(path, opts)
	case FormatText:
		return l.loadText(path, opts)
	default:
		return nil, fmt.Errorf("unsupported source format %q", format)
	}
}

func (l *Loader) loadCSV(path string, opts Options) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrEmptyFile
	}

	header := records[0]
	rows := records[1:]

	// Both named columns must exist regardless of mode, so a typo in
	// either surfaces before any rows are processed.
	valIdx, err := columnIndex(header, opts.ValueColumn)
	if err != nil {
		return nil, err
	}

	if opts.Aggregate {
		tsIdx, err := columnIndex(header, opts.TimestampColumn)
		if err != nil {
			return nil, err
		}
		return aggregateByWindow(rows, tsIdx)
	}

	series := make([]float64, 0, len(rows))
	for _, row := range rows {
		if valIdx >= len(row) {
			series = append(series, math.NaN())
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[valIdx]), 64)
		if err != nil {
			series = append(series, math.NaN())
			continue
		}
		series = append(series, v)
	}
	return series, nil
}

func (l *Loader) loadText(path string, opts Options) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = " "
	}

	var series []float64
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			if opts.HasHeader {
				continue
			}
		}
		if line == "" {
			continue
		}
		for _, token := range strings.Split(line, delimiter) {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			// Non-numeric tokens are skipped rather than failing the load.
			if v, err := strconv.ParseFloat(token, 64); err == nil {
				series = append(series, v)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(series) == 0 {
		return nil, ErrEmptyFile
	}
	return series, nil
}

// aggregateByWindow counts events into continuous one-minute windows
// spanning the first through last timestamp observed.
func aggregateByWindow(rows [][]string, tsIdx int) ([]float64, error) {
	counts := make(map[int64]float64)
	var minBucket, maxBucket int64
	seen := false

	for i, row := range rows {
		if tsIdx >= len(row) {
			return nil, fmt.Errorf("row %d has no timestamp field", i+2)
		}
		ts, err := parseTimestamp(strings.TrimSpace(row[tsIdx]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		bucket := ts.Truncate(aggregationWindow).Unix() / int64(aggregationWindow.Seconds())
		counts[bucket]++
		if !seen || bucket < minBucket {
			minBucket = bucket
		}
		if !seen || bucket > maxBucket {
			maxBucket = bucket
		}
		seen = true
	}
	if !seen {
		return nil, ErrEmptyFile
	}

	span := maxBucket - minBucket + 1
	if span > maxAggregationBuckets {
		return nil, fmt.Errorf("timestamp span of %d windows exceeds the %d window limit", span, maxAggregationBuckets)
	}

	series := make([]float64, span)
	for bucket, count := range counts {
		series[bucket-minBucket] = count
	}
	return series, nil
}

// parseTimestamp tries each known layout in order.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// columnIndex locates a named column in the header row.
func columnIndex(header []string, name string) (int, error) {
	for i, col := range header {
		if strings.TrimSpace(col) == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}
