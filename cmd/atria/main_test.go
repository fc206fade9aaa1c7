package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestCSV writes n points of dimension d, one point per row with every
// coordinate equal to the row index, so nearest-neighbor relationships are
// easy to reason about in assertions.
func writeTestCSV(t *testing.T, n, d int) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "points.csv")

	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			if j > 0 {
				buf.WriteByte(',')
			}
			fmt.Fprintf(&buf, "%d", i)
		}
		buf.WriteByte('\n')
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// newTestRootCmd builds a fresh root command tree so flag state from one
// test never leaks into another (package-level rootCmd is shared otherwise).
func newTestRootCmd() *cobra.Command {
	root := &cobra.Command{Use: "atria"}
	root.PersistentFlags().StringP("config", "c", "", "")
	root.PersistentFlags().Int("min-points", 0, "")
	root.PersistentFlags().String("metric", "", "")
	root.PersistentFlags().Int("k", 0, "")
	root.PersistentFlags().Float64("epsilon", 0, "")
	root.PersistentFlags().Float64("radius", 0, "")
	root.PersistentFlags().Bool("track-stats", false, "")
	root.PersistentFlags().String("format", "", "")
	root.PersistentFlags().String("output-dir", "", "")
	root.PersistentFlags().Bool("progress", false, "")
	root.AddCommand(newBuildCmd())
	root.AddCommand(newKNNCmd())
	root.AddCommand(newRangeCmd())
	return root
}

func TestBuildCmdReportsTreeInfo(t *testing.T) {
	path := writeTestCSV(t, 200, 3)
	root := newTestRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"build", path, "--metric", "euclidean", "--min-points", "16", "--format", "json"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "\"node_count\"")
	assert.Contains(t, out.String(), "\"depth\"")
}

func TestBuildCmdRejectsMissingFile(t *testing.T) {
	root := newTestRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"build", filepath.Join(t.TempDir(), "missing.csv"), "--metric", "euclidean"})

	err := root.Execute()
	assert.Error(t, err)
}

func TestKNNCmdSingleQuery(t *testing.T) {
	path := writeTestCSV(t, 200, 3)
	root := newTestRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{
		"knn", path,
		"--metric", "euclidean",
		"--min-points", "16",
		"--k", "3",
		"--query", "50,50,50",
		"--format", "json",
	})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "\"neighbors\"")
	assert.Contains(t, out.String(), "\"index\": 50")
}

func TestKNNCmdBatchQueries(t *testing.T) {
	path := writeTestCSV(t, 200, 2)
	root := newTestRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{
		"knn", path,
		"--metric", "euclidean",
		"--min-points", "16",
		"--k", "2",
		"--query", "10,10",
		"--query", "190,190",
		"--format", "json",
	})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "\"index\": 10")
	assert.Contains(t, out.String(), "\"index\": 190")
}

func TestKNNCmdRequiresQuery(t *testing.T) {
	path := writeTestCSV(t, 50, 2)
	root := newTestRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"knn", path, "--metric", "euclidean"})

	err := root.Execute()
	assert.Error(t, err)
}

func TestRangeCmdReportsNeighbors(t *testing.T) {
	path := writeTestCSV(t, 200, 2)
	root := newTestRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{
		"range", path,
		"--metric", "euclidean",
		"--min-points", "16",
		"--query", "100,100",
		"--radius", "2",
		"--format", "json",
	})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "\"radius\": 2")
}

func TestRangeCmdCountOnly(t *testing.T) {
	path := writeTestCSV(t, 200, 2)
	root := newTestRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{
		"range", path,
		"--metric", "euclidean",
		"--min-points", "16",
		"--query", "100,100",
		"--radius", "2",
		"--count-only",
	})

	require.NoError(t, root.Execute())
	assert.NotEmpty(t, out.String())
}

func TestRangeCmdRequiresQuery(t *testing.T) {
	path := writeTestCSV(t, 50, 2)
	root := newTestRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"range", path, "--metric", "euclidean", "--radius", "1"})

	err := root.Execute()
	assert.Error(t, err)
}

func TestVersionCmdPrintsVersion(t *testing.T) {
	root := newTestRootCmd()
	root.AddCommand(newVersionCmd())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--short"})

	require.NoError(t, root.Execute())
	assert.NotEmpty(t, out.String())
}
