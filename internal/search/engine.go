package search

import (
	"math"

	"github.com/atria-go/atria/domain"
	"github.com/atria-go/atria/internal/tree"
)

// Engine drives best-first traversal of a built Tree, answering k-NN,
// range, and range-count queries. An Engine is read-only and safe to
// share across goroutines: every query allocates its own ResultTable and
// PQueue, so no per-query state is ever shared.
type Engine struct {
	tree      *tree.Tree
	queueHint int
}

// NewEngine wraps a built tree for querying. The tree is walked once, up
// front, to size a safe PQueue capacity hint so individual queries don't
// pay that traversal cost.
func NewEngine(t *tree.Tree) *Engine {
	info := t.Info()
	hint := 2*info.NodeCount + 8
	return &Engine{tree: t, queueHint: hint}
}

// KNN returns the k nearest neighbors of query.
func (e *Engine) KNN(query []float64, cfg domain.QueryConfig) ([]domain.Neighbor, domain.QueryStats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, domain.QueryStats{}, err
	}

	rt := NewResultTable(cfg.K)
	pq := NewPQueue(e.queueHint)
	distCalcs := 0

	dist := func(i int) float64 {
		distCalcs++
		return e.tree.Points.DistanceTo(i, query)
	}
	distThreshold := func(i int, threshold float64) float64 {
		distCalcs++
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

		if !cfg.ExcludeRange.Contains(n.Center) && it.Dist < rt.HighDist() {
			rt.Insert(n.Center, it.Dist)
		}

		if rt.HighDist() < it.DMin*(1+cfg.Epsilon) {
			continue
		}

		if n.IsLeaf() {
			e.processLeaf(n, it, cfg.ExcludeRange, rt, distThreshold)
		} else {
			e.expandChildren(n, it, pq, dist)
		}
	}

	var stats domain.QueryStats
	if cfg.TrackStats {
		stats.DistanceCalcs = distCalcs
		if e.tree.N > 0 {
			stats.FK = float64(distCalcs) / float64(e.tree.N)
		}
	}
	return rt.Sorted(), stats, nil
}

// KNNBatch runs KNN independently for each query. Each query gets its
// own ResultTable and PQueue, so this is trivially safe to parallelize
// per-query from the caller's side even though this loop itself is
// sequential.
func (e *Engine) KNNBatch(queries [][]float64, cfg domain.QueryConfig) ([][]domain.Neighbor, []domain.QueryStats, error) {
	results := make([][]domain.Neighbor, len(queries))
	stats := make([]domain.QueryStats, len(queries))
	for i, q := range queries {
		neighbors, s, err := e.KNN(q, cfg)
		if err != nil {
			return nil, nil, err
		}
		results[i] = neighbors
		stats[i] = s
	}
	return results, stats, nil
}

// processLeaf handles a leaf cluster popped from the queue.
func (e *Engine) processLeaf(n *tree.Node, it Item, excl *domain.ExcludeRange, rt *ResultTable, distThreshold func(int, float64) float64) {
	perm := e.tree.Perm

	if n.Rmax == 0 {
		for p := n.Start; p < n.Start+n.Length; p++ {
			if rt.HighDist() <= it.Dist {
				break
			}
			idx := perm[p].Index
			if !excl.Contains(idx) {
				rt.Insert(idx, it.Dist)
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
		if lb < rt.HighDist() {
			d := distThreshold(entry.Index, rt.HighDist())
			rt.Insert(entry.Index, d)
		}
	}
}

// expandChildren pushes both children of an internal cluster onto the
// queue with their inherited bounds.
func (e *Engine) expandChildren(n *tree.Node, it Item, pq *PQueue, dist func(int) float64) {
	left, right := n.Left, n.Right
	dL := dist(left.Center)
	dR := dist(right.Center)

	pq.Push(Item{
		Node:        left,
		Dist:        dL,
		DistBrother: dR,
		DMin:        max4(0, dL-left.Rmax, it.DMin, 0.5*(dL-dR+left.GMin)),
		DMax:        math.Min(it.DMax, dL+left.Rmax),
	})
	pq.Push(Item{
		Node:        right,
		Dist:        dR,
		DistBrother: dL,
		DMin:        max4(0, dR-right.Rmax, it.DMin, 0.5*(dR-dL+right.GMin)),
		DMax:        math.Min(it.DMax, dR+right.Rmax),
	})
}

func max4(a, b, c, d float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	if d > m {
		m = d
	}
	return m
}
