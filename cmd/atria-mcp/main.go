// Command atria-mcp exposes ATRIA's build/knn/range operations as an MCP
// server over stdio.
package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/atria-go/atria/internal/config"
	"github.com/atria-go/atria/mcp"
)

const (
	serverName    = "atria"
	serverVersion = "1.0.0"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	configPath := os.Getenv("ATRIA_CONFIG")
	cfg, err := config.LoadConfig(configPath, "")
	if err != nil {
		log.Printf("Warning: failed to load config: %v, using defaults", err)
		cfg = config.DefaultConfig()
	}

	dependencies := mcp.NewDependencies(cfg, configPath)
	handlers := mcp.NewHandlerSet(dependencies)
	mcp.RegisterTools(server, handlers)

	log.Printf("Starting %s MCP server v%s\n", serverName, serverVersion)
	log.Println("Registered tools:")
	log.Println("  - knn_query: k-nearest-neighbor search")
	log.Println("  - range_query: radius search")
	log.Println("  - range_count: radius search cardinality")
	log.Println("  - build_info: tree-shape introspection")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
