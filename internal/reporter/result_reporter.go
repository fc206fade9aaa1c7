// Package reporter formats query results (neighbors, tree info, query
// stats) into JSON, YAML, CSV, or human-readable text via a simple
// format-switch over one writer.
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atria-go/atria/domain"
)

// KNNReport is the serializable result of a k-NN query, including the
// query vector and optional QueryStats.
type KNNReport struct {
	Query       []float64        `json:"query" yaml:"query"`
	Neighbors   []domain.Neighbor `json:"neighbors" yaml:"neighbors"`
	Stats       *domain.QueryStats `json:"stats,omitempty" yaml:"stats,omitempty"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
}

// RangeReport is the serializable result of a range query.
type RangeReport struct {
	Query       []float64        `json:"query" yaml:"query"`
	Radius      float64           `json:"radius" yaml:"radius"`
	Neighbors   []domain.Neighbor `json:"neighbors" yaml:"neighbors"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
}

// TreeReport is the serializable result of a tree-info introspection
// request.
type TreeReport struct {
	Info        domain.TreeInfo `json:"info" yaml:"info"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
}

// ResultReporter formats and writes query results in the configured
// output format.
type ResultReporter struct {
	format string
	writer io.Writer
}

// NewResultReporter constructs a ResultReporter. format must be one of
// "json", "yaml", "csv", "text"; an unrecognized value falls back to text.
func NewResultReporter(format string, writer io.Writer) *ResultReporter {
	return &ResultReporter{format: format, writer: writer}
}

// ReportKNN formats and writes a KNNReport.
func (r *ResultReporter) ReportKNN(query []float64, neighbors []domain.Neighbor, stats *domain.QueryStats) error {
	report := KNNReport{Query: query, Neighbors: neighbors, Stats: stats, GeneratedAt: time.Now()}
	switch strings.ToLower(r.format) {
	case "json":
		return r.outputJSON(report)
	case "yaml":
		return r.outputYAML(report)
	case "csv":
		return r.outputNeighborsCSV(neighbors)
	case "text":
		fallthrough
	default:
		return r.outputKNNText(report)
	}
}

// ReportRange formats and writes a RangeReport.
func (r *ResultReporter) ReportRange(query []float64, radius float64, neighbors []domain.Neighbor) error {
	report := RangeReport{Query: query, Radius: radius, Neighbors: neighbors, GeneratedAt: time.Now()}
	switch strings.ToLower(r.format) {
	case "json":
		return r.outputJSON(report)
	case "yaml":
		return r.outputYAML(report)
	case "csv":
		return r.outputNeighborsCSV(neighbors)
	case "text":
		fallthrough
	default:
		return r.outputRangeText(report)
	}
}

// ReportTreeInfo formats and writes a TreeReport.
func (r *ResultReporter) ReportTreeInfo(info domain.TreeInfo) error {
	report := TreeReport{Info: info, GeneratedAt: time.Now()}
	switch strings.ToLower(r.format) {
	case "json":
		return r.outputJSON(report)
	case "yaml":
		return r.outputYAML(report)
	case "csv":
		return r.outputTreeInfoCSV(info)
	case "text":
		fallthrough
	default:
		return r.outputTreeInfoText(info)
	}
}

func (r *ResultReporter) outputJSON(v interface{}) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (r *ResultReporter) outputYAML(v interface{}) error {
	encoder := yaml.NewEncoder(r.writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(v)
}

func (r *ResultReporter) outputNeighborsCSV(neighbors []domain.Neighbor) error {
	w := csv.NewWriter(r.writer)
	defer w.Flush()

	if err := w.Write([]string{"index", "distance"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, n := range neighbors {
		row := []string{fmt.Sprintf("%d", n.Index), fmt.Sprintf("%g", n.Distance)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

func (r *ResultReporter) outputTreeInfoCSV(info domain.TreeInfo) error {
	w := csv.NewWriter(r.writer)
	defer w.Flush()

	if err := w.Write([]string{"depth", "node_count", "leaf_count", "average_leaf_size"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	row := []string{
		fmt.Sprintf("%d", info.Depth),
		fmt.Sprintf("%d", info.NodeCount),
		fmt.Sprintf("%d", info.LeafCount),
		fmt.Sprintf("%g", info.AverageLeafSize),
	}
	return w.Write(row)
}

func (r *ResultReporter) outputKNNText(report KNNReport) error {
	fmt.Fprintf(r.writer, "k-NN Query Result\n")
	fmt.Fprintf(r.writer, "=================\n\n")
	fmt.Fprintf(r.writer, "Query: %v\n", report.Query)
	fmt.Fprintf(r.writer, "Neighbors: %d\n\n", len(report.Neighbors))
	for i, n := range report.Neighbors {
		fmt.Fprintf(r.writer, "  %d. index=%d distance=%g\n", i+1, n.Index, n.Distance)
	}
	if report.Stats != nil {
		fmt.Fprintf(r.writer, "\nStats:\n")
		fmt.Fprintf(r.writer, "  Distance calcs: %d\n", report.Stats.DistanceCalcs)
		fmt.Fprintf(r.writer, "  f_k: %.4f\n", report.Stats.FK)
	}
	return nil
}

func (r *ResultReporter) outputRangeText(report RangeReport) error {
	fmt.Fprintf(r.writer, "Range Query Result\n")
	fmt.Fprintf(r.writer, "==================\n\n")
	fmt.Fprintf(r.writer, "Query: %v\n", report.Query)
	fmt.Fprintf(r.writer, "Radius: %g\n", report.Radius)
	fmt.Fprintf(r.writer, "Matches: %d\n\n", len(report.Neighbors))
	for i, n := range report.Neighbors {
		fmt.Fprintf(r.writer, "  %d. index=%d distance=%g\n", i+1, n.Index, n.Distance)
	}
	return nil
}

func (r *ResultReporter) outputTreeInfoText(info domain.TreeInfo) error {
	fmt.Fprintf(r.writer, "Tree Info\n")
	fmt.Fprintf(r.writer, "=========\n\n")
	fmt.Fprintf(r.writer, "Depth: %d\n", info.Depth)
	fmt.Fprintf(r.writer, "Node count: %d\n", info.NodeCount)
	fmt.Fprintf(r.writer, "Leaf count: %d\n", info.LeafCount)
	fmt.Fprintf(r.writer, "Average leaf size: %.2f\n", info.AverageLeafSize)
	return nil
}
