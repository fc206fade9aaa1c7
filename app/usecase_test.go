package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atria-go/atria/app"
	"github.com/atria-go/atria/domain"
	"github.com/atria-go/atria/internal/metric"
	"github.com/atria-go/atria/internal/pointset"
)

type fakeLoader struct {
	ps  domain.PointSet
	err error
}

func (f *fakeLoader) Load(path string, m domain.ThresholdMetric, embedding *domain.EmbeddingSpec) (domain.PointSet, error) {
	return f.ps, f.err
}

type fakeProgress struct {
	started, added, finished int
}

func (f *fakeProgress) Start(total int) { f.started = total }
func (f *fakeProgress) Add(n int)       { f.added += n }
func (f *fakeProgress) Finish()         { f.finished++ }

type fakeWriter struct {
	knnCalls   int
	rangeCalls int
	lastStats  *domain.QueryStats
}

func (f *fakeWriter) ReportKNN(query []float64, neighbors []domain.Neighbor, stats *domain.QueryStats) error {
	f.knnCalls++
	f.lastStats = stats
	return nil
}
func (f *fakeWriter) ReportRange(query []float64, radius float64, neighbors []domain.Neighbor) error {
	f.rangeCalls++
	return nil
}
func (f *fakeWriter) ReportTreeInfo(info domain.TreeInfo) error { return nil }

func samplePointSet(t *testing.T) domain.PointSet {
	t.Helper()
	ps, err := pointset.NewMatrix([]float64{0, 0, 3, 4, 1, 1, 5, 0}, 4, 2, metric.Euclidean{})
	require.NoError(t, err)
	return ps
}

func TestBuildUseCaseExecute(t *testing.T) {
	loader := &fakeLoader{ps: samplePointSet(t)}
	progress := &fakeProgress{}
	uc := app.NewBuildUseCase(loader, progress)

	result, err := uc.Execute(context.Background(), app.BuildRequest{
		InputPath: "unused.csv",
		Config:    domain.BuildConfig{MinPoints: 1},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Tree)
	require.NotNil(t, result.Engine)
	assert.Equal(t, 4, progress.started)
	assert.Equal(t, 4, progress.added)
	assert.Equal(t, 1, progress.finished)
}

func TestBuildUseCaseRejectsInvalidConfig(t *testing.T) {
	loader := &fakeLoader{ps: samplePointSet(t)}
	uc := app.NewBuildUseCase(loader, nil)

	_, err := uc.Execute(context.Background(), app.BuildRequest{
		Config: domain.BuildConfig{MinPoints: 0},
	})
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestBuildUseCasePropagatesLoaderError(t *testing.T) {
	loader := &fakeLoader{err: assert.AnError}
	uc := app.NewBuildUseCase(loader, nil)

	_, err := uc.Execute(context.Background(), app.BuildRequest{
		Config: domain.BuildConfig{MinPoints: 1},
	})
	require.Error(t, err)
}

func buildResult(t *testing.T) *app.BuildResult {
	t.Helper()
	loader := &fakeLoader{ps: samplePointSet(t)}
	uc := app.NewBuildUseCase(loader, nil)
	result, err := uc.Execute(context.Background(), app.BuildRequest{
		Config: domain.BuildConfig{MinPoints: 1},
	})
	require.NoError(t, err)
	return result
}

func TestKNNUseCaseExecute(t *testing.T) {
	built := buildResult(t)
	writer := &fakeWriter{}
	uc := app.NewKNNUseCase(writer, nil)

	err := uc.Execute(context.Background(), app.KNNRequest{
		Engine: built.Engine,
		Query:  []float64{0, 0},
		Config: domain.QueryConfig{K: 2, TrackStats: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, writer.knnCalls)
	assert.NotNil(t, writer.lastStats)
}

func TestKNNUseCaseExecuteBatchReportsProgress(t *testing.T) {
	built := buildResult(t)
	writer := &fakeWriter{}
	progress := &fakeProgress{}
	uc := app.NewKNNUseCase(writer, progress)

	queries := [][]float64{{0, 0}, {5, 0}}
	results, err := uc.ExecuteBatch(context.Background(), app.BatchRequest{
		Engine:  built.Engine,
		Queries: queries,
		Config:  domain.QueryConfig{K: 1},
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 2, writer.knnCalls)
	assert.Equal(t, len(queries), progress.started)
	assert.Equal(t, len(queries), progress.added)
	assert.Equal(t, 1, progress.finished)
}

func TestRangeUseCaseExecute(t *testing.T) {
	built := buildResult(t)
	writer := &fakeWriter{}
	uc := app.NewRangeUseCase(writer)

	err := uc.Execute(context.Background(), app.RangeRequest{
		Engine: built.Engine,
		Query:  []float64{0, 0},
		Config: domain.RangeConfig{Radius: 2.0},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, writer.rangeCalls)
}

func TestRangeUseCaseExecuteCount(t *testing.T) {
	built := buildResult(t)
	writer := &fakeWriter{}
	uc := app.NewRangeUseCase(writer)

	count, err := uc.ExecuteCount(context.Background(), app.RangeRequest{
		Engine: built.Engine,
		Query:  []float64{0, 0},
		Config: domain.RangeConfig{Radius: 2.0},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestExecuteRejectsCancelledContext(t *testing.T) {
	built := buildResult(t)
	writer := &fakeWriter{}
	uc := app.NewKNNUseCase(writer, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := uc.Execute(ctx, app.KNNRequest{
		Engine: built.Engine,
		Query:  []float64{0, 0},
		Config: domain.QueryConfig{K: 1},
	})
	assert.Error(t, err)
}
