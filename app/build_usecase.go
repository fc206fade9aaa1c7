// Package app orchestrates the ATRIA workflows (build, k-NN query, range
// query) on top of the domain types and the internal/tree, internal/search
// engines, using a use-case orchestration pattern: a thin struct of
// injected interfaces whose Execute method validates, delegates to the
// engine, and reports results.
package app

import (
	"context"
	"fmt"

	"github.com/atria-go/atria/domain"
	"github.com/atria-go/atria/internal/search"
	"github.com/atria-go/atria/internal/tree"
)

// BuildUseCase orchestrates point-set ingestion and tree construction.
type BuildUseCase struct {
	loader   domain.PointSetLoader
	progress domain.ProgressReporter
}

// NewBuildUseCase creates a BuildUseCase. progress may be nil to disable
// progress reporting.
func NewBuildUseCase(loader domain.PointSetLoader, progress domain.ProgressReporter) *BuildUseCase {
	return &BuildUseCase{loader: loader, progress: progress}
}

// BuildRequest describes a tree-construction request.
type BuildRequest struct {
	InputPath string
	Metric    domain.ThresholdMetric
	Embedding *domain.EmbeddingSpec
	Config    domain.BuildConfig
}

// BuildResult is the outcome of a successful Execute: the built tree, its
// ready-to-query search engine, and a tree-shape summary.
type BuildResult struct {
	Tree   *tree.Tree
	Engine *search.Engine
	Info   domain.TreeInfo
}

// Execute loads the point set and builds its ATRIA tree.
func (uc *BuildUseCase) Execute(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}

	points, err := uc.loader.Load(req.InputPath, req.Metric, req.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to load point set: %w", err)
	}

	n, _ := points.Size()
	if uc.progress != nil {
		uc.progress.Start(n)
		defer uc.progress.Finish()
	}

	builder, err := tree.NewBuilder(points, req.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tree builder: %w", err)
	}

	built := builder.Build()
	if uc.progress != nil {
		uc.progress.Add(n)
	}

	engine := search.NewEngine(built)
	return &BuildResult{Tree: built, Engine: engine, Info: built.Info()}, nil
}
