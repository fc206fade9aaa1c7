package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atria-go/atria/internal/config"
)

func TestNewDependenciesFallsBackToDefaultConfig(t *testing.T) {
	deps := NewDependencies(nil, "")
	assert.Equal(t, config.DefaultConfig(), deps.Config())
	assert.Equal(t, "", deps.ConfigPath())
}

func TestNewDependenciesKeepsProvidedConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Build.MinPoints = 7
	deps := NewDependencies(cfg, "/tmp/.atria.toml")
	assert.Equal(t, 7, deps.Config().Build.MinPoints)
	assert.Equal(t, "/tmp/.atria.toml", deps.ConfigPath())
}
