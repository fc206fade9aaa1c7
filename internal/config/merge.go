package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for every environment variable atria recognizes,
// e.g. ATRIA_BUILD_MIN_POINTS.
const envPrefix = "ATRIA"

// MergeWithEnvAndFlags layers environment variables and then CLI flags on
// top of cfg, in that precedence order (file < env < flags), using
// viper's AutomaticEnv for env vars and viper.Set for explicitly passed
// flags, with cfg's current values as defaults. flags may be nil when called outside a command
// context (e.g. the MCP server).
func MergeWithEnvAndFlags(cfg *Config, flags *pflag.FlagSet) *Config {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindInt(v, &cfg.Build.MinPoints, "build.min_points")
	bindString(v, &cfg.Build.Metric, "build.metric")
	bindInt(v, &cfg.Query.K, "query.k")
	bindFloat(v, &cfg.Query.Epsilon, "query.epsilon")
	bindFloat(v, &cfg.Query.Radius, "query.radius")
	bindBool(v, &cfg.Query.TrackStats, "query.track_stats")
	bindString(v, &cfg.Output.Format, "output.format")
	bindString(v, &cfg.Output.Directory, "output.directory")
	bindBool(v, &cfg.Output.Progress, "output.progress")

	if flags == nil {
		return cfg
	}

	flagOverride(flags, "min-points", func(s string) { v.Set("build.min_points", s) })
	flagOverride(flags, "metric", func(s string) { v.Set("build.metric", s) })
	flagOverride(flags, "k", func(s string) { v.Set("query.k", s) })
	flagOverride(flags, "epsilon", func(s string) { v.Set("query.epsilon", s) })
	flagOverride(flags, "radius", func(s string) { v.Set("query.radius", s) })
	flagOverride(flags, "track-stats", func(s string) { v.Set("query.track_stats", s) })
	flagOverride(flags, "format", func(s string) { v.Set("output.format", s) })
	flagOverride(flags, "output-dir", func(s string) { v.Set("output.directory", s) })
	flagOverride(flags, "progress", func(s string) { v.Set("output.progress", s) })

	if v.IsSet("build.min_points") {
		cfg.Build.MinPoints = v.GetInt("build.min_points")
	}
	if v.IsSet("build.metric") {
		cfg.Build.Metric = v.GetString("build.metric")
	}
	if v.IsSet("query.k") {
		cfg.Query.K = v.GetInt("query.k")
	}
	if v.IsSet("query.epsilon") {
		cfg.Query.Epsilon = v.GetFloat64("query.epsilon")
	}
	if v.IsSet("query.radius") {
		cfg.Query.Radius = v.GetFloat64("query.radius")
	}
	if v.IsSet("query.track_stats") {
		cfg.Query.TrackStats = v.GetBool("query.track_stats")
	}
	if v.IsSet("output.format") {
		cfg.Output.Format = v.GetString("output.format")
	}
	if v.IsSet("output.directory") {
		cfg.Output.Directory = v.GetString("output.directory")
	}
	if v.IsSet("output.progress") {
		cfg.Output.Progress = v.GetBool("output.progress")
	}

	return cfg
}

func bindInt(v *viper.Viper, dst *int, key string) {
	v.SetDefault(key, *dst)
}

func bindFloat(v *viper.Viper, dst *float64, key string) {
	v.SetDefault(key, *dst)
}

func bindString(v *viper.Viper, dst *string, key string) {
	v.SetDefault(key, *dst)
}

func bindBool(v *viper.Viper, dst *bool, key string) {
	v.SetDefault(key, *dst)
}

// flagOverride calls set with the flag's string value only if the flag was
// explicitly passed on the command line, so an unset flag never clobbers an
// env var or file value that out-ranks it.
func flagOverride(flags *pflag.FlagSet, name string, set func(string)) {
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return
	}
	set(f.Value.String())
}
