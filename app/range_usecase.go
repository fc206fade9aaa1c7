package app

import (
	"context"
	"fmt"

	"github.com/atria-go/atria/domain"
	"github.com/atria-go/atria/internal/search"
)

// RangeUseCase orchestrates range and range-count queries.
type RangeUseCase struct {
	writer domain.ResultWriter
}

// NewRangeUseCase creates a RangeUseCase.
func NewRangeUseCase(writer domain.ResultWriter) *RangeUseCase {
	return &RangeUseCase{writer: writer}
}

// RangeRequest describes a single range query.
type RangeRequest struct {
	Engine *search.Engine
	Query  []float64
	Config domain.RangeConfig
}

// Execute runs a range query and writes its full neighbor list.
func (uc *RangeUseCase) Execute(ctx context.Context, req RangeRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	neighbors, err := req.Engine.Range(req.Query, req.Config)
	if err != nil {
		return fmt.Errorf("range query failed: %w", err)
	}
	return uc.writer.ReportRange(req.Query, req.Config.Radius, neighbors)
}

// ExecuteCount runs a range-count query and returns the cardinality
// without materializing the neighbor list.
func (uc *RangeUseCase) ExecuteCount(ctx context.Context, req RangeRequest) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count, err := req.Engine.RangeCount(req.Query, req.Config)
	if err != nil {
		return 0, fmt.Errorf("range count query failed: %w", err)
	}
	return count, nil
}
