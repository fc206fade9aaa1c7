// Package service provides the outer adapters -- point-set ingestion,
// progress reporting -- that implement the domain interfaces consumed by
// app's use cases: doublestar glob matching for CSV discovery and
// terminal-aware progress bars.
package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/atria-go/atria/domain"
	"github.com/atria-go/atria/internal/pointset"
)

// CSVPointSetLoader loads a PointSet from a CSV file of numeric rows, or
// discovers one inside a directory via the configured include/exclude
// glob patterns.
type CSVPointSetLoader struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// NewCSVPointSetLoader constructs a CSVPointSetLoader with the given
// discovery patterns. Patterns may be nil to accept any *.csv file.
func NewCSVPointSetLoader(include, exclude []string) *CSVPointSetLoader {
	return &CSVPointSetLoader{IncludePatterns: include, ExcludePatterns: exclude}
}

// Load implements domain.PointSetLoader. When path is a directory, the
// first file matching IncludePatterns (and none of ExcludePatterns) is
// used. When embedding is non-nil, the CSV is read as a single-column 1-D
// series and wrapped in a time-delay Embedding instead of a dense Matrix.
func (l *CSVPointSetLoader) Load(path string, m domain.ThresholdMetric, embedding *domain.EmbeddingSpec) (domain.PointSet, error) {
	resolved, err := l.resolveFile(path)
	if err != nil {
		return nil, err
	}

	rows, err := readCSVFloats(resolved)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s contains no data rows", domain.ErrEmptyPointSet, resolved)
	}

	if embedding != nil {
		if len(rows[0]) != 1 {
			return nil, fmt.Errorf("%w: embedding input must be a single-column series, got %d columns", domain.ErrInvalidConfig, len(rows[0]))
		}
		series := make([]float64, len(rows))
		for i, row := range rows {
			series[i] = row[0]
		}
		return pointset.NewEmbedding(series, embedding.Dim, embedding.Tau, m)
	}

	d := len(rows[0])
	data := make([]float64, 0, len(rows)*d)
	for i, row := range rows {
		if len(row) != d {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", domain.ErrInvalidConfig, i, len(row), d)
		}
		data = append(data, row...)
	}
	return pointset.NewMatrix(data, len(rows), d, m)
}

// resolveFile returns path unchanged if it names a file, or the first
// matching file discovered inside it if it names a directory.
func (l *CSVPointSetLoader) resolveFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("input path not found: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	includes := l.IncludePatterns
	if len(includes) == 0 {
		includes = []string{"**/*.csv"}
	}

	var found string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return err
		}
		rel, relErr := filepath.Rel(path, p)
		if relErr != nil {
			rel = p
		}
		rel = filepath.ToSlash(rel)
		if l.matchesExclude(rel) {
			return nil
		}
		if l.matchesInclude(rel, includes) {
			found = p
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to search %s: %w", path, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: no file under %s matched include patterns %v", domain.ErrEmptyPointSet, path, includes)
	}
	return found, nil
}

func (l *CSVPointSetLoader) matchesInclude(rel string, includes []string) bool {
	for _, pattern := range includes {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func (l *CSVPointSetLoader) matchesExclude(rel string) bool {
	for _, pattern := range l.ExcludePatterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// readCSVFloats reads every row of path as a slice of float64.
func readCSVFloats(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]float64
	lineNo := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s at line %d: %w", path, lineNo, err)
		}
		lineNo++
		if lineNo == 1 && isHeaderRow(record) {
			continue
		}
		row := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s:%d column %d: %w", path, lineNo, i, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// isHeaderRow treats a non-numeric first row as a header to skip, so
// point-set CSVs can optionally carry column names.
func isHeaderRow(record []string) bool {
	for _, field := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return true
		}
	}
	return false
}

