// Package config loads and validates atria's on-disk configuration: a
// .atria.toml file merged with environment variables and CLI flags via
// viper, using a layered default/file/env/flag precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/atria-go/atria/domain"
)

// Default values re-exported from domain so a config file author and a
// library caller see the same numbers.
const (
	DefaultMinPoints = domain.DefaultMinPoints
	DefaultK         = 10
	DefaultEpsilon   = 0.0
	DefaultMetric    = "euclidean"
	DefaultFormat    = "json"
)

// Config is the root configuration structure for the atria CLI and MCP
// server.
type Config struct {
	Build  BuildSection  `mapstructure:"build" yaml:"build"`
	Query  QuerySection  `mapstructure:"query" yaml:"query"`
	Input  InputSection  `mapstructure:"input" yaml:"input"`
	Output OutputSection `mapstructure:"output" yaml:"output"`
}

// BuildSection configures tree construction.
type BuildSection struct {
	MinPoints int    `mapstructure:"min_points" yaml:"min_points"`
	Metric    string `mapstructure:"metric" yaml:"metric"`
	RNGSeed   *int64 `mapstructure:"rng_seed" yaml:"rng_seed"`
}

// QuerySection configures default k-NN/range query behavior.
type QuerySection struct {
	K          int     `mapstructure:"k" yaml:"k"`
	Epsilon    float64 `mapstructure:"epsilon" yaml:"epsilon"`
	Radius     float64 `mapstructure:"radius" yaml:"radius"`
	TrackStats bool    `mapstructure:"track_stats" yaml:"track_stats"`
}

// InputSection configures point-set ingestion.
type InputSection struct {
	// IncludePatterns are doublestar globs matched against candidate input
	// files when a directory is given instead of a single file.
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Embedding configures time-delay embedding ingestion of a 1-D series.
	Embedding *EmbeddingSection `mapstructure:"embedding" yaml:"embedding"`
}

// EmbeddingSection configures a time-delay embedding point set.
type EmbeddingSection struct {
	Dim int `mapstructure:"dim" yaml:"dim"`
	Tau int `mapstructure:"tau" yaml:"tau"`
}

// OutputSection configures result formatting.
type OutputSection struct {
	Format    string `mapstructure:"format" yaml:"format"`
	Directory string `mapstructure:"directory" yaml:"directory"`
	Progress  bool   `mapstructure:"progress" yaml:"progress"`
}

// DefaultConfig returns the built-in configuration used when no file,
// env var, or flag overrides a field.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildSection{
			MinPoints: DefaultMinPoints,
			Metric:    DefaultMetric,
		},
		Query: QuerySection{
			K:       DefaultK,
			Epsilon: DefaultEpsilon,
		},
		Input: InputSection{
			IncludePatterns: []string{"**/*.csv"},
		},
		Output: OutputSection{
			Format:   DefaultFormat,
			Progress: true,
		},
	}
}

// LoadConfig loads configuration from configPath, or discovers a
// .atria.toml starting at targetPath if configPath is empty, falling back
// to DefaultConfig() when none is found.
func LoadConfig(configPath, targetPath string) (*Config, error) {
	loader := NewTomlConfigLoader()

	resolved, err := loader.ResolveConfigPath(configPath, targetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configuration: %w", err)
	}

	cfg := DefaultConfig()
	if resolved != "" {
		fileCfg, err := loader.LoadConfig(resolved)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		ApplyTomlOverrides(cfg, fileCfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	if c.Build.MinPoints < 1 {
		return fmt.Errorf("build.min_points must be >= 1, got %d", c.Build.MinPoints)
	}
	if _, ok := validMetrics[c.Build.Metric]; !ok {
		return fmt.Errorf("invalid build.metric %q, must be one of: euclidean, chebyshev, manhattan", c.Build.Metric)
	}
	if c.Query.K < 1 {
		return fmt.Errorf("query.k must be >= 1, got %d", c.Query.K)
	}
	if c.Query.Epsilon < 0 {
		return fmt.Errorf("query.epsilon must be >= 0, got %g", c.Query.Epsilon)
	}
	if c.Query.Radius < 0 {
		return fmt.Errorf("query.radius must be >= 0, got %g", c.Query.Radius)
	}
	if c.Input.Embedding != nil {
		if c.Input.Embedding.Dim < 1 {
			return fmt.Errorf("input.embedding.dim must be >= 1, got %d", c.Input.Embedding.Dim)
		}
		if c.Input.Embedding.Tau < 1 {
			return fmt.Errorf("input.embedding.tau must be >= 1, got %d", c.Input.Embedding.Tau)
		}
	}
	if _, ok := validFormats[c.Output.Format]; !ok {
		return fmt.Errorf("invalid output.format %q, must be one of: json, yaml, csv, text", c.Output.Format)
	}
	return nil
}

var validMetrics = map[string]bool{"euclidean": true, "chebyshev": true, "manhattan": true}
var validFormats = map[string]bool{"json": true, "yaml": true, "csv": true, "text": true}

// SaveConfig writes cfg to path as TOML, creating parent directories as
// needed.
func SaveConfig(cfg *Config, path string) error {
	file := TomlConfig{
		Build:  BuildTomlConfig{MinPoints: &cfg.Build.MinPoints, Metric: cfg.Build.Metric, RNGSeed: cfg.Build.RNGSeed},
		Query:  QueryTomlConfig{K: &cfg.Query.K, Epsilon: &cfg.Query.Epsilon, Radius: &cfg.Query.Radius, TrackStats: &cfg.Query.TrackStats},
		Input:  InputTomlConfig{IncludePatterns: cfg.Input.IncludePatterns, ExcludePatterns: cfg.Input.ExcludePatterns},
		Output: OutputTomlConfig{Format: cfg.Output.Format, Directory: cfg.Output.Directory, Progress: &cfg.Output.Progress},
	}
	if cfg.Input.Embedding != nil {
		file.Input.Embedding = &EmbeddingTomlConfig{Dim: &cfg.Input.Embedding.Dim, Tau: &cfg.Input.Embedding.Tau}
	}
	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
