package reporter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atria-go/atria/domain"
	"github.com/atria-go/atria/internal/reporter"
)

func sampleNeighbors() []domain.Neighbor {
	return []domain.Neighbor{{Index: 2, Distance: 1.5}, {Index: 7, Distance: 3.0}}
}

func TestReportKNNJSON(t *testing.T) {
	var buf bytes.Buffer
	r := reporter.NewResultReporter("json", &buf)
	stats := &domain.QueryStats{DistanceCalcs: 10, FK: 0.2}
	require.NoError(t, r.ReportKNN([]float64{1, 2}, sampleNeighbors(), stats))
	assert.Contains(t, buf.String(), `"index": 2`)
	assert.Contains(t, buf.String(), `"distance_calcs": 10`)
}

func TestReportKNNYAML(t *testing.T) {
	var buf bytes.Buffer
	r := reporter.NewResultReporter("yaml", &buf)
	require.NoError(t, r.ReportKNN([]float64{1, 2}, sampleNeighbors(), nil))
	assert.Contains(t, buf.String(), "index: 2")
}

func TestReportKNNCSV(t *testing.T) {
	var buf bytes.Buffer
	r := reporter.NewResultReporter("csv", &buf)
	require.NoError(t, r.ReportKNN([]float64{1, 2}, sampleNeighbors(), nil))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "index,distance", lines[0])
	assert.Equal(t, "2,1.5", lines[1])
}

func TestReportKNNTextDefaultsOnUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	r := reporter.NewResultReporter("xml", &buf)
	require.NoError(t, r.ReportKNN([]float64{1, 2}, sampleNeighbors(), nil))
	assert.Contains(t, buf.String(), "k-NN Query Result")
	assert.Contains(t, buf.String(), "index=2 distance=1.5")
}

func TestReportRangeText(t *testing.T) {
	var buf bytes.Buffer
	r := reporter.NewResultReporter("text", &buf)
	require.NoError(t, r.ReportRange([]float64{0, 0}, 5.0, sampleNeighbors()))
	assert.Contains(t, buf.String(), "Radius: 5")
	assert.Contains(t, buf.String(), "Matches: 2")
}

func TestReportTreeInfoText(t *testing.T) {
	var buf bytes.Buffer
	r := reporter.NewResultReporter("text", &buf)
	info := domain.TreeInfo{Depth: 4, NodeCount: 15, LeafCount: 8, AverageLeafSize: 12.5}
	require.NoError(t, r.ReportTreeInfo(info))
	assert.Contains(t, buf.String(), "Depth: 4")
	assert.Contains(t, buf.String(), "Average leaf size: 12.50")
}

func TestReportTreeInfoCSV(t *testing.T) {
	var buf bytes.Buffer
	r := reporter.NewResultReporter("csv", &buf)
	info := domain.TreeInfo{Depth: 4, NodeCount: 15, LeafCount: 8, AverageLeafSize: 12.5}
	require.NoError(t, r.ReportTreeInfo(info))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "4,15,8,12.5", lines[1])
}
