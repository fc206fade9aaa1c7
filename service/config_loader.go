package service

import (
	"fmt"

	"github.com/atria-go/atria/domain"
	"github.com/atria-go/atria/internal/config"
	"github.com/atria-go/atria/internal/metric"
)

// ConfigToBuildConfig converts the ambient atria.toml/env/flag
// configuration's [build] section into the domain.BuildConfig consumed
// by internal/tree.NewBuilder.
func ConfigToBuildConfig(cfg *config.Config) domain.BuildConfig {
	return domain.BuildConfig{
		MinPoints: cfg.Build.MinPoints,
		RNGSeed:   cfg.Build.RNGSeed,
	}
}

// ConfigToQueryConfig converts the [query] section into a
// domain.QueryConfig, applying excl as the caller's exclude range (flags
// carry exclude_range directly; it has no config-file equivalent).
func ConfigToQueryConfig(cfg *config.Config, k int, excl *domain.ExcludeRange) domain.QueryConfig {
	return domain.QueryConfig{
		K:            k,
		Epsilon:      cfg.Query.Epsilon,
		ExcludeRange: excl,
		TrackStats:   cfg.Query.TrackStats,
	}
}

// ConfigToRangeConfig converts the [query] section's radius into a
// domain.RangeConfig.
func ConfigToRangeConfig(cfg *config.Config, excl *domain.ExcludeRange) domain.RangeConfig {
	return domain.RangeConfig{
		Radius:       cfg.Query.Radius,
		ExcludeRange: excl,
	}
}

// ResolveMetric resolves the configured metric name to its
// domain.ThresholdMetric implementation.
func ResolveMetric(cfg *config.Config) (domain.ThresholdMetric, error) {
	m, ok := metric.ByName(cfg.Build.Metric)
	if !ok {
		return nil, fmt.Errorf("%w: unknown metric %q", domain.ErrInvalidConfig, cfg.Build.Metric)
	}
	return m, nil
}

// EmbeddingSpecFromConfig converts the [input.embedding] section, if
// present, to a domain.EmbeddingSpec.
func EmbeddingSpecFromConfig(cfg *config.Config) *domain.EmbeddingSpec {
	if cfg.Input.Embedding == nil {
		return nil
	}
	return &domain.EmbeddingSpec{Dim: cfg.Input.Embedding.Dim, Tau: cfg.Input.Embedding.Tau}
}
