package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/atria-go/atria/app"
	"github.com/atria-go/atria/domain"
	"github.com/atria-go/atria/internal/config"
	"github.com/atria-go/atria/internal/reporter"
	"github.com/atria-go/atria/service"
)

// HandlerSet binds tool handlers to a shared Dependencies instance, kept
// as a struct rather than package-level functions so tests can construct
// a set against a throwaway configuration.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a HandlerSet.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	return &HandlerSet{deps: deps}
}

// resolvedConfig produces a per-call copy of the shared configuration with
// any tool arguments overlaid, so concurrent calls never race on mutation.
func (h *HandlerSet) resolvedConfig(args map[string]interface{}) *config.Config {
	base := *h.deps.Config()
	cfg := &base

	if v, ok := args["metric"].(string); ok && v != "" {
		cfg.Build.Metric = v
	}
	if v, ok := args["min_points"].(float64); ok && v > 0 {
		cfg.Build.MinPoints = int(v)
	}
	if v, ok := args["k"].(float64); ok && v > 0 {
		cfg.Query.K = int(v)
	}
	if v, ok := args["epsilon"].(float64); ok {
		cfg.Query.Epsilon = v
	}
	if v, ok := args["radius"].(float64); ok {
		cfg.Query.Radius = v
	}
	if v, ok := args["track_stats"].(bool); ok {
		cfg.Query.TrackStats = v
	}
	return cfg
}

// buildEngine loads the point set at path and builds its ATRIA tree, with
// no progress reporting (MCP calls are expected to be short-lived).
func buildEngine(ctx context.Context, cfg *config.Config, path string) (*app.BuildResult, error) {
	m, err := service.ResolveMetric(cfg)
	if err != nil {
		return nil, err
	}
	loader := service.NewCSVPointSetLoader(cfg.Input.IncludePatterns, cfg.Input.ExcludePatterns)
	uc := app.NewBuildUseCase(loader, nil)
	return uc.Execute(ctx, app.BuildRequest{
		InputPath: path,
		Metric:    m,
		Embedding: service.EmbeddingSpecFromConfig(cfg),
		Config:    service.ConfigToBuildConfig(cfg),
	})
}

func stringArg(args map[string]interface{}, name string) (string, bool) {
	v, ok := args[name].(string)
	return v, ok
}

// HandleKNNQuery handles the knn_query tool: build a tree over the point
// set at path and report its k nearest neighbors to query.
func (h *HandlerSet) HandleKNNQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := stringArg(args, "path")
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	queryStr, ok := stringArg(args, "query")
	if !ok {
		return mcp.NewToolResultError("query parameter is required and must be a comma-separated coordinate string"), nil
	}
	query, err := parseQueryVector(queryStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	excl, err := excludeRangeArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := h.resolvedConfig(args)
	built, err := buildEngine(ctx, cfg, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build tree: %v", err)), nil
	}

	queryConfig := service.ConfigToQueryConfig(cfg, cfg.Query.K, excl)

	var buf bytes.Buffer
	writer := reporter.NewResultReporter("json", &buf)
	uc := app.NewKNNUseCase(writer, nil)
	if err := uc.Execute(ctx, app.KNNRequest{Engine: built.Engine, Query: query, Config: queryConfig}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("knn query failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// HandleRangeQuery handles the range_query tool: report every point within
// radius of query.
func (h *HandlerSet) HandleRangeQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := stringArg(args, "path")
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	queryStr, ok := stringArg(args, "query")
	if !ok {
		return mcp.NewToolResultError("query parameter is required and must be a comma-separated coordinate string"), nil
	}
	query, err := parseQueryVector(queryStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	excl, err := excludeRangeArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := h.resolvedConfig(args)
	built, err := buildEngine(ctx, cfg, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build tree: %v", err)), nil
	}

	rangeConfig := service.ConfigToRangeConfig(cfg, excl)

	var buf bytes.Buffer
	writer := reporter.NewResultReporter("json", &buf)
	uc := app.NewRangeUseCase(writer)
	if err := uc.Execute(ctx, app.RangeRequest{Engine: built.Engine, Query: query, Config: rangeConfig}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("range query failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// HandleRangeCount handles the range_count tool: report only the
// cardinality of the range query, without materializing the neighbor list.
func (h *HandlerSet) HandleRangeCount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := stringArg(args, "path")
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	queryStr, ok := stringArg(args, "query")
	if !ok {
		return mcp.NewToolResultError("query parameter is required and must be a comma-separated coordinate string"), nil
	}
	query, err := parseQueryVector(queryStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	excl, err := excludeRangeArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := h.resolvedConfig(args)
	built, err := buildEngine(ctx, cfg, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build tree: %v", err)), nil
	}

	rangeConfig := service.ConfigToRangeConfig(cfg, excl)
	uc := app.NewRangeUseCase(nil)
	count, err := uc.ExecuteCount(ctx, app.RangeRequest{Engine: built.Engine, Query: query, Config: rangeConfig})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("range count query failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(map[string]interface{}{"count": count})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleBuildInfo handles the build_info tool: build a tree and report its
// shape, without running any query against it.
func (h *HandlerSet) HandleBuildInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := stringArg(args, "path")
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	cfg := h.resolvedConfig(args)
	built, err := buildEngine(ctx, cfg, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build tree: %v", err)), nil
	}

	jsonData, err := json.Marshal(built.Info)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func excludeRangeArg(args map[string]interface{}) (*domain.ExcludeRange, error) {
	s, ok := stringArg(args, "exclude")
	if !ok || s == "" {
		return nil, nil
	}
	return parseExcludeRangeArg(s)
}
