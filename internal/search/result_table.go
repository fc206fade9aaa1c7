// Package search implements the best-first branch-and-bound query engine:
// the bounded k-NN result table, the min-heap search priority queue, and
// the k-NN / range / range-count algorithms that drive them over a built
// tree.
package search

import (
	"container/heap"
	"math"
	"sort"

	"github.com/atria-go/atria/domain"
)

// ResultTable is a bounded max-heap of the k best (index, distance)
// neighbors seen so far, with O(1) access to the current worst distance.
// Because the tree is built under the boundary convention, no point index
// can ever be visited twice by a single query, so no duplicate-suppression
// set is needed here.
type ResultTable struct {
	k        int
	entries  maxHeap
	highDist float64
}

// NewResultTable creates a result table bounded to the k best neighbors.
func NewResultTable(k int) *ResultTable {
	return &ResultTable{
		k:        k,
		entries:  make(maxHeap, 0, k),
		highDist: math.Inf(1),
	}
}

// HighDist returns the current worst (largest) distance held, or +Inf if
// fewer than k neighbors have been recorded yet.
func (rt *ResultTable) HighDist() float64 {
	return rt.highDist
}

// Len returns the number of neighbors currently held.
func (rt *ResultTable) Len() int {
	return len(rt.entries)
}

// Insert offers (index, dist) to the table. If fewer than k neighbors are
// held, it is always added. Otherwise it replaces the current worst
// neighbor only if it is strictly closer; ties and farther candidates are
// discarded.
func (rt *ResultTable) Insert(index int, dist float64) {
	if len(rt.entries) < rt.k {
		heap.Push(&rt.entries, domain.Neighbor{Index: index, Distance: dist})
		if len(rt.entries) == rt.k {
			rt.highDist = rt.entries[0].Distance
		}
		return
	}
	if dist < rt.highDist {
		rt.entries[0] = domain.Neighbor{Index: index, Distance: dist}
		heap.Fix(&rt.entries, 0)
		rt.highDist = rt.entries[0].Distance
	}
}

// Sorted drains the table into an ascending-by-distance slice, breaking
// ties by index for a deterministic order.
func (rt *ResultTable) Sorted() []domain.Neighbor {
	out := make([]domain.Neighbor, len(rt.entries))
	copy(out, rt.entries)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// maxHeap is a container/heap max-heap of Neighbor ordered by Distance.
type maxHeap []domain.Neighbor

func (h maxHeap) Len() int            { return len(h) }
func (h maxHeap) Less(i, j int) bool  { return h[i].Distance > h[j].Distance }
func (h maxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x interface{}) { *h = append(*h, x.(domain.Neighbor)) }
func (h *maxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
