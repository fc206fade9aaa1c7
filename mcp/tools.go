package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all ATRIA MCP tools with the server, delegating
// each to the matching HandlerSet method.
func RegisterTools(s *server.MCPServer, handlers *HandlerSet) {
	s.AddTool(mcp.NewTool("knn_query",
		mcp.WithDescription("Build an ATRIA tree over a point set and return its k nearest neighbors to a query point"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a CSV point-set file, or a directory to search for one")),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Query point as comma-separated coordinates, e.g. \"1.0,2.0,3.0\"")),
		mcp.WithNumber("k",
			mcp.Description("Number of nearest neighbors to return (default: configured query.k)")),
		mcp.WithNumber("epsilon",
			mcp.Description("Approximation slack; 0 for an exact search (default: 0)")),
		mcp.WithString("metric",
			mcp.Description("Distance metric: euclidean, chebyshev, manhattan (default: euclidean)")),
		mcp.WithNumber("min_points",
			mcp.Description("Leaf-size threshold for tree construction (default: 64)")),
		mcp.WithString("exclude",
			mcp.Description("Inclusive index band \"first:last\" to exclude from results")),
		mcp.WithBoolean("track_stats",
			mcp.Description("Include distance-calculation statistics in the result")),
	), handlers.HandleKNNQuery)

	s.AddTool(mcp.NewTool("range_query",
		mcp.WithDescription("Build an ATRIA tree over a point set and return every point within a radius of a query point"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a CSV point-set file, or a directory to search for one")),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Query point as comma-separated coordinates")),
		mcp.WithNumber("radius",
			mcp.Required(),
			mcp.Description("Search radius")),
		mcp.WithString("metric",
			mcp.Description("Distance metric: euclidean, chebyshev, manhattan (default: euclidean)")),
		mcp.WithNumber("min_points",
			mcp.Description("Leaf-size threshold for tree construction (default: 64)")),
		mcp.WithString("exclude",
			mcp.Description("Inclusive index band \"first:last\" to exclude from results")),
	), handlers.HandleRangeQuery)

	s.AddTool(mcp.NewTool("range_count",
		mcp.WithDescription("Build an ATRIA tree over a point set and return only the count of points within a radius of a query point"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a CSV point-set file, or a directory to search for one")),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Query point as comma-separated coordinates")),
		mcp.WithNumber("radius",
			mcp.Required(),
			mcp.Description("Search radius")),
		mcp.WithString("metric",
			mcp.Description("Distance metric: euclidean, chebyshev, manhattan (default: euclidean)")),
		mcp.WithNumber("min_points",
			mcp.Description("Leaf-size threshold for tree construction (default: 64)")),
		mcp.WithString("exclude",
			mcp.Description("Inclusive index band \"first:last\" to exclude from results")),
	), handlers.HandleRangeCount)

	s.AddTool(mcp.NewTool("build_info",
		mcp.WithDescription("Build an ATRIA tree over a point set and report its depth, node count, leaf count, and average leaf size"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a CSV point-set file, or a directory to search for one")),
		mcp.WithString("metric",
			mcp.Description("Distance metric: euclidean, chebyshev, manhattan (default: euclidean)")),
		mcp.WithNumber("min_points",
			mcp.Description("Leaf-size threshold for tree construction (default: 64)")),
	), handlers.HandleBuildInfo)
}
