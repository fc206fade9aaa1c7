// Package mcp exposes ATRIA's build/knn/range operations as Model Context
// Protocol tools: a Dependencies aggregate handed to a HandlerSet whose
// methods satisfy mcp-go's CallToolRequest handler signature, registered
// onto an *server.MCPServer by RegisterTools.
package mcp

import (
	"github.com/atria-go/atria/internal/config"
)

// Dependencies aggregates the shared configuration used by every tool
// handler. A fresh engine is built per call rather than caching a
// long-lived tree.
type Dependencies struct {
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set, falling back to
// config.DefaultConfig when cfg is nil.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dependencies{config: cfg, configPath: configPath}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}
