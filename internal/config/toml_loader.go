package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// TomlConfig mirrors Config but with pointer/nil-able fields so the TOML
// decoder can distinguish "not present in the file" from "explicitly zero".
// String fields (metric, format, directory) are plain strings, and an
// empty string is treated as absent.
type TomlConfig struct {
	Build  BuildTomlConfig  `toml:"build"`
	Query  QueryTomlConfig  `toml:"query"`
	Input  InputTomlConfig  `toml:"input"`
	Output OutputTomlConfig `toml:"output"`
}

// BuildTomlConfig represents the [build] section.
type BuildTomlConfig struct {
	MinPoints *int   `toml:"min_points"`
	Metric    string `toml:"metric"`
	RNGSeed   *int64 `toml:"rng_seed"`
}

// QueryTomlConfig represents the [query] section.
type QueryTomlConfig struct {
	K          *int     `toml:"k"`
	Epsilon    *float64 `toml:"epsilon"`
	Radius     *float64 `toml:"radius"`
	TrackStats *bool    `toml:"track_stats"`
}

// InputTomlConfig represents the [input] section.
type InputTomlConfig struct {
	IncludePatterns []string           `toml:"include_patterns"`
	ExcludePatterns []string           `toml:"exclude_patterns"`
	Embedding       *EmbeddingTomlConfig `toml:"embedding"`
}

// EmbeddingTomlConfig represents the [input.embedding] section.
type EmbeddingTomlConfig struct {
	Dim *int `toml:"dim"`
	Tau *int `toml:"tau"`
}

// OutputTomlConfig represents the [output] section.
type OutputTomlConfig struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"`
	Progress  *bool  `toml:"progress"`
}

// TomlConfigLoader discovers and parses .atria.toml files.
type TomlConfigLoader struct{}

// NewTomlConfigLoader constructs a TomlConfigLoader.
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig parses the TOML file at path.
func (l *TomlConfigLoader) LoadConfig(path string) (*TomlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg TomlConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// ResolveConfigPath resolves the effective configuration file path once,
// so every later load reads the same source.
//   - If configPath is provided, it must exist; a directory is searched for
//     .atria.toml upward, starting inside it.
//   - If configPath is empty, targetPath (or cwd) is searched upward.
func (l *TomlConfigLoader) ResolveConfigPath(configPath, targetPath string) (string, error) {
	if configPath != "" {
		info, err := os.Stat(configPath)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", configPath)
		}
		if !info.IsDir() {
			return configPath, nil
		}
		return l.findConfigFileFromPath(configPath), nil
	}

	searchPath := targetPath
	if searchPath == "" {
		searchPath = "."
	}
	return l.findConfigFileFromPath(searchPath), nil
}

// findConfigFileFromPath walks upward from startPath looking for
// .atria.toml.
func (l *TomlConfigLoader) findConfigFileFromPath(startPath string) string {
	dir, err := filepath.Abs(startPath)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		candidate := filepath.Join(dir, ".atria.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ApplyTomlOverrides copies every explicitly-set field of file onto cfg,
// leaving DefaultConfig()'s values in place for anything the file omits.
func ApplyTomlOverrides(cfg *Config, file *TomlConfig) {
	if file.Build.MinPoints != nil {
		cfg.Build.MinPoints = *file.Build.MinPoints
	}
	if file.Build.Metric != "" {
		cfg.Build.Metric = file.Build.Metric
	}
	if file.Build.RNGSeed != nil {
		cfg.Build.RNGSeed = file.Build.RNGSeed
	}

	if file.Query.K != nil {
		cfg.Query.K = *file.Query.K
	}
	if file.Query.Epsilon != nil {
		cfg.Query.Epsilon = *file.Query.Epsilon
	}
	if file.Query.Radius != nil {
		cfg.Query.Radius = *file.Query.Radius
	}
	if file.Query.TrackStats != nil {
		cfg.Query.TrackStats = *file.Query.TrackStats
	}

	if len(file.Input.IncludePatterns) > 0 {
		cfg.Input.IncludePatterns = file.Input.IncludePatterns
	}
	if len(file.Input.ExcludePatterns) > 0 {
		cfg.Input.ExcludePatterns = file.Input.ExcludePatterns
	}
	if file.Input.Embedding != nil {
		emb := &EmbeddingSection{}
		if file.Input.Embedding.Dim != nil {
			emb.Dim = *file.Input.Embedding.Dim
		}
		if file.Input.Embedding.Tau != nil {
			emb.Tau = *file.Input.Embedding.Tau
		}
		cfg.Input.Embedding = emb
	}

	if file.Output.Format != "" {
		cfg.Output.Format = file.Output.Format
	}
	if file.Output.Directory != "" {
		cfg.Output.Directory = file.Output.Directory
	}
	if file.Output.Progress != nil {
		cfg.Output.Progress = *file.Output.Progress
	}
}
