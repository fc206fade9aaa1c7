package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atria-go/atria/internal/config"
)

func writeCSV(t *testing.T, n, d int) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "points.csv")

	content := ""
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			if j > 0 {
				content += ","
			}
			content += fmt.Sprintf("%d", i)
		}
		content += "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestHandlers() *HandlerSet {
	cfg := config.DefaultConfig()
	cfg.Build.MinPoints = 16
	return NewHandlerSet(NewDependencies(cfg, ""))
}

func callRequest(name string, args map[string]interface{}) mcptypes.CallToolRequest {
	return mcptypes.CallToolRequest{
		Params: mcptypes.CallToolParams{Name: name, Arguments: args},
	}
}

func textOf(t *testing.T, result *mcptypes.CallToolResult) string {
	t.Helper()
	require.False(t, result.IsError, "unexpected error result: %+v", result.Content)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcptypes.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return tc.Text
}

func TestHandleKNNQueryReturnsNeighbors(t *testing.T) {
	path := writeCSV(t, 200, 3)
	h := newTestHandlers()

	result, err := h.HandleKNNQuery(context.Background(), callRequest("knn_query", map[string]interface{}{
		"path":   path,
		"query":  "50,50,50",
		"k":      float64(3),
		"metric": "euclidean",
	}))
	require.NoError(t, err)
	text := textOf(t, result)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &report))
	neighbors, ok := report["neighbors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, neighbors, 3)
}

func TestHandleKNNQueryRejectsMissingPath(t *testing.T) {
	h := newTestHandlers()
	result, err := h.HandleKNNQuery(context.Background(), callRequest("knn_query", map[string]interface{}{
		"query": "1,2,3",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleKNNQueryRejectsBadQuery(t *testing.T) {
	path := writeCSV(t, 50, 2)
	h := newTestHandlers()
	result, err := h.HandleKNNQuery(context.Background(), callRequest("knn_query", map[string]interface{}{
		"path":  path,
		"query": "not,a,number",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleRangeQueryReturnsNeighbors(t *testing.T) {
	path := writeCSV(t, 200, 2)
	h := newTestHandlers()

	result, err := h.HandleRangeQuery(context.Background(), callRequest("range_query", map[string]interface{}{
		"path":   path,
		"query":  "100,100",
		"radius": float64(2),
		"metric": "euclidean",
	}))
	require.NoError(t, err)
	text := textOf(t, result)
	assert.Contains(t, text, "\"neighbors\"")
}

func TestHandleRangeCountReturnsCount(t *testing.T) {
	path := writeCSV(t, 200, 2)
	h := newTestHandlers()

	result, err := h.HandleRangeCount(context.Background(), callRequest("range_count", map[string]interface{}{
		"path":   path,
		"query":  "100,100",
		"radius": float64(2),
	}))
	require.NoError(t, err)
	text := textOf(t, result)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &body))
	count, ok := body["count"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, count, float64(1))
}

func TestHandleBuildInfoReportsShape(t *testing.T) {
	path := writeCSV(t, 300, 4)
	h := newTestHandlers()

	result, err := h.HandleBuildInfo(context.Background(), callRequest("build_info", map[string]interface{}{
		"path":       path,
		"min_points": float64(16),
	}))
	require.NoError(t, err)
	text := textOf(t, result)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &info))
	assert.Contains(t, info, "node_count")
}

func TestHandleBuildInfoRejectsMissingPath(t *testing.T) {
	h := newTestHandlers()
	result, err := h.HandleBuildInfo(context.Background(), callRequest("build_info", map[string]interface{}{
		"path": filepath.Join(t.TempDir(), "missing.csv"),
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestExcludeRangeArgAppliedToKNN(t *testing.T) {
	path := writeCSV(t, 200, 2)
	h := newTestHandlers()

	result, err := h.HandleKNNQuery(context.Background(), callRequest("knn_query", map[string]interface{}{
		"path":    path,
		"query":   "50,50",
		"k":       float64(1),
		"exclude": "50:50",
	}))
	require.NoError(t, err)
	text := textOf(t, result)
	assert.NotContains(t, text, "\"index\": 50")
}
