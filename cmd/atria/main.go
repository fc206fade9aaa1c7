// Command atria builds ATRIA spatial-index trees over point sets and
// answers k-NN, range, and introspection queries against them.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/atria-go/atria/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "atria",
	Short: "A farthest-point clustering tree for exact and approximate nearest-neighbor search",
	Long: `atria builds a binary clustering tree over a point set using recursive
farthest-point partitioning, then answers k-nearest-neighbor, range, and
range-count queries against it with triangle-inequality pruning.`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file path (.atria.toml)")
	rootCmd.PersistentFlags().Int("min-points", 0, "Leaf-size threshold for tree construction")
	rootCmd.PersistentFlags().String("metric", "", "Distance metric: euclidean, chebyshev, manhattan")
	rootCmd.PersistentFlags().Int("k", 0, "Number of nearest neighbors to return")
	rootCmd.PersistentFlags().Float64("epsilon", 0, "Approximation slack for k-NN search")
	rootCmd.PersistentFlags().Float64("radius", 0, "Search radius for range queries")
	rootCmd.PersistentFlags().Bool("track-stats", false, "Report distance-calculation statistics")
	rootCmd.PersistentFlags().String("format", "", "Output format: json, yaml, csv, text")
	rootCmd.PersistentFlags().String("output-dir", "", "Output directory setting (stored in the configuration; reports are always written to stdout)")
	rootCmd.PersistentFlags().Bool("progress", true, "Show a progress bar during construction")

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newKNNCmd())
	rootCmd.AddCommand(newRangeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
