package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atria-go/atria/app"
	"github.com/atria-go/atria/domain"
	"github.com/atria-go/atria/internal/config"
	"github.com/atria-go/atria/internal/reporter"
	"github.com/atria-go/atria/service"
)

// loadMergedConfig resolves .atria.toml, then layers env vars and the
// command's own flags on top, so file < env < flags precedence holds for
// every subcommand.
func loadMergedConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configFile, "")
	if err != nil {
		return nil, err
	}
	return config.MergeWithEnvAndFlags(cfg, cmd.Flags()), nil
}

// buildEngineFromArg builds an ATRIA tree and search engine from the
// input path named by args[0], reporting progress to stderr when enabled.
func buildEngineFromArg(cmd *cobra.Command, cfg *config.Config, inputPath string) (*app.BuildResult, error) {
	m, err := service.ResolveMetric(cfg)
	if err != nil {
		return nil, err
	}

	loader := service.NewCSVPointSetLoader(cfg.Input.IncludePatterns, cfg.Input.ExcludePatterns)

	var progress domain.ProgressReporter
	if cfg.Output.Progress {
		progress = service.NewProgressManager()
	}

	uc := app.NewBuildUseCase(loader, progress)
	req := app.BuildRequest{
		InputPath: inputPath,
		Metric:    m,
		Embedding: service.EmbeddingSpecFromConfig(cfg),
		Config:    service.ConfigToBuildConfig(cfg),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return uc.Execute(ctx, req)
}

// newResultWriter constructs the configured output formatter for a
// subcommand's stdout.
func newResultWriter(cmd *cobra.Command, cfg *config.Config) domain.ResultWriter {
	return reporter.NewResultReporter(cfg.Output.Format, cmd.OutOrStdout())
}

// parseQueryVector parses a comma-separated list of floats into a query
// point, e.g. "1.0,2.5,3.0".
func parseQueryVector(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid query coordinate %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseExcludeRange parses a "first:last" inclusive index band, or returns
// nil if s is empty.
func parseExcludeRange(s string) (*domain.ExcludeRange, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid exclude range %q, expected \"first:last\"", s)
	}
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid exclude range first index %q: %w", parts[0], err)
	}
	last, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid exclude range last index %q: %w", parts[1], err)
	}
	return &domain.ExcludeRange{First: first, Last: last}, nil
}
