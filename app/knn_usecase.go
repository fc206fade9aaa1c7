package app

import (
	"context"
	"fmt"

	"github.com/atria-go/atria/domain"
	"github.com/atria-go/atria/internal/search"
)

// KNNUseCase orchestrates k-NN queries against a built engine and reports
// their results.
type KNNUseCase struct {
	writer   domain.ResultWriter
	progress domain.ProgressReporter
}

// NewKNNUseCase creates a KNNUseCase. progress may be nil.
func NewKNNUseCase(writer domain.ResultWriter, progress domain.ProgressReporter) *KNNUseCase {
	return &KNNUseCase{writer: writer, progress: progress}
}

// KNNRequest describes a single k-NN query.
type KNNRequest struct {
	Engine *search.Engine
	Query  []float64
	Config domain.QueryConfig
}

// Execute runs a single k-NN query and writes its result.
func (uc *KNNUseCase) Execute(ctx context.Context, req KNNRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	neighbors, stats, err := req.Engine.KNN(req.Query, req.Config)
	if err != nil {
		return fmt.Errorf("knn query failed: %w", err)
	}

	var statsPtr *domain.QueryStats
	if req.Config.TrackStats {
		statsPtr = &stats
	}
	return uc.writer.ReportKNN(req.Query, neighbors, statsPtr)
}

// BatchRequest describes a batch of k-NN queries run against one engine.
type BatchRequest struct {
	Engine  *search.Engine
	Queries [][]float64
	Config  domain.QueryConfig
}

// BatchResult holds one query's neighbors and stats; ExecuteBatch returns
// them in the same order as the request's Queries.
type BatchResult struct {
	Neighbors []domain.Neighbor
	Stats     domain.QueryStats
}

// ExecuteBatch runs KNNBatch and writes each query's result in turn,
// reporting progress across the batch if a ProgressReporter was supplied.
func (uc *KNNUseCase) ExecuteBatch(ctx context.Context, req BatchRequest) ([]BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if uc.progress != nil {
		uc.progress.Start(len(req.Queries))
		defer uc.progress.Finish()
	}

	neighborLists, stats, err := req.Engine.KNNBatch(req.Queries, req.Config)
	if err != nil {
		return nil, fmt.Errorf("batch knn query failed: %w", err)
	}

	results := make([]BatchResult, len(req.Queries))
	for i := range req.Queries {
		results[i] = BatchResult{Neighbors: neighborLists[i], Stats: stats[i]}
		var statsPtr *domain.QueryStats
		if req.Config.TrackStats {
			statsPtr = &stats[i]
		}
		if err := uc.writer.ReportKNN(req.Queries[i], neighborLists[i], statsPtr); err != nil {
			return nil, fmt.Errorf("failed to write result for query %d: %w", i, err)
		}
		if uc.progress != nil {
			uc.progress.Add(1)
		}
	}
	return results, nil
}
