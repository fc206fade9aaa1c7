package search_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atria-go/atria/internal/search"
)

func TestResultTableFillsUpToK(t *testing.T) {
	rt := search.NewResultTable(3)
	assert.Equal(t, math.Inf(1), rt.HighDist())

	rt.Insert(0, 5.0)
	rt.Insert(1, 1.0)
	assert.Equal(t, math.Inf(1), rt.HighDist(), "high_dist stays +Inf until k entries held")

	rt.Insert(2, 3.0)
	assert.Equal(t, 5.0, rt.HighDist())
}

func TestResultTableReplacesWorstWhenCloserArrives(t *testing.T) {
	rt := search.NewResultTable(2)
	rt.Insert(0, 10.0)
	rt.Insert(1, 5.0)
	assert.Equal(t, 10.0, rt.HighDist())

	rt.Insert(2, 1.0)
	assert.Equal(t, 5.0, rt.HighDist())

	sorted := rt.Sorted()
	assert.Equal(t, []int{2, 1}, []int{sorted[0].Index, sorted[1].Index})
}

func TestResultTableDiscardsFartherThanWorst(t *testing.T) {
	rt := search.NewResultTable(1)
	rt.Insert(0, 2.0)
	rt.Insert(1, 5.0)

	sorted := rt.Sorted()
	assert.Len(t, sorted, 1)
	assert.Equal(t, 0, sorted[0].Index)
}

func TestResultTableSortedBreaksTiesByIndex(t *testing.T) {
	rt := search.NewResultTable(3)
	rt.Insert(2, 1.0)
	rt.Insert(0, 1.0)
	rt.Insert(1, 1.0)

	sorted := rt.Sorted()
	assert.Equal(t, []int{0, 1, 2}, []int{sorted[0].Index, sorted[1].Index, sorted[2].Index})
}

func TestResultTableSortedIsNonDecreasing(t *testing.T) {
	rt := search.NewResultTable(5)
	dists := []float64{9, 2, 7, 1, 5, 3}
	for i, d := range dists {
		rt.Insert(i, d)
	}
	sorted := rt.Sorted()
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, sorted[i-1].Distance, sorted[i].Distance)
	}
}
