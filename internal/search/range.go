package search

import (
	"math"
	"sort"

	"github.com/atria-go/atria/domain"
	"github.com/atria-go/atria/internal/tree"
)

// Range returns every point within radius r of query, in ascending
// distance order. Unlike KNN, the result set is unbounded: high_dist is
// the fixed query radius rather than a shrinking worst-k distance.
func (e *Engine) Range(query []float64, cfg domain.RangeConfig) ([]domain.Neighbor, error) {
	var out []domain.Neighbor
	if err := e.rangeSearch(query, cfg, func(idx int, dist float64) {
		out = append(out, domain.Neighbor{Index: idx, Distance: dist})
	}); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Index < out[j].Index
	})
	return out, nil
}

// RangeCount returns the cardinality of Range(query, cfg) without
// materializing the result list.
func (e *Engine) RangeCount(query []float64, cfg domain.RangeConfig) (int, error) {
	count := 0
	err := e.rangeSearch(query, cfg, func(int, float64) { count++ })
	return count, err
}

// rangeSearch runs the shared best-first traversal for both Range and
// RangeCount, calling collect for every point within cfg.Radius.
func (e *Engine) rangeSearch(query []float64, cfg domain.RangeConfig, collect func(idx int, dist float64)) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	r := cfg.Radius
	pq := NewPQueue(e.queueHint)

	dist := func(i int) float64 {
		return e.tree.Points.DistanceTo(i, query)
	}
	distThreshold := func(i int, threshold float64) float64 {
		return e.tree.Points.DistanceToThreshold(i, query, threshold)
	}

	root := e.tree.Root
	d0 := dist(root.Center)
	pq.Push(Item{
		Node:        root,
		Dist:        d0,
		DistBrother: 0,
		DMin:        math.Max(0, d0-root.Rmax),
		DMax:        d0 + root.Rmax,
	})

	for !pq.Empty() {
		it := pq.Pop()
		n := it.Node

		if !cfg.ExcludeRange.Contains(n.Center) && it.Dist <= r {
			collect(n.Center, it.Dist)
		}

		if it.DMin > r {
			continue
		}

		if n.IsLeaf() {
			e.rangeLeaf(n, it, r, cfg.ExcludeRange, collect, distThreshold)
		} else {
			e.expandChildren(n, it, pq, dist)
		}
	}
	return nil
}

// rangeLeaf emits every point in a leaf's slice within radius r, using the
// same triangle-inequality pre-filter as k-NN leaf processing.
func (e *Engine) rangeLeaf(n *tree.Node, it Item, r float64, excl *domain.ExcludeRange, collect func(int, float64), distThreshold func(int, float64) float64) {
	perm := e.tree.Perm

	if n.Rmax == 0 {
		if it.Dist > r {
			return
		}
		for p := n.Start; p < n.Start+n.Length; p++ {
			idx := perm[p].Index
			if !excl.Contains(idx) {
				collect(idx, it.Dist)
			}
		}
		return
	}

	for p := n.Start; p < n.Start+n.Length; p++ {
		entry := perm[p]
		if excl.Contains(entry.Index) {
			continue
		}
		lb := math.Abs(it.Dist - entry.Distance)
		if lb > r {
			continue
		}
		d := distThreshold(entry.Index, r)
		if d <= r {
			collect(entry.Index, d)
		}
	}
}
