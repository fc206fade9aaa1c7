package search

import (
	"container/heap"

	"github.com/atria-go/atria/internal/tree"
)

// Item is a transient record describing a cluster awaiting expansion
// during a query.
type Item struct {
	Node *tree.Node

	// Dist is d(query, Node.Center).
	Dist float64

	// DistBrother is d(query, sibling.Center); 0 for the root, which has
	// no sibling.
	DistBrother float64

	// DMin is the optimistic lower bound on d(query, p) for any point p in
	// Node's cluster: max(0, Dist-|Rmax|, parent.DMin,
	// 0.5*(Dist-DistBrother+GMin)).
	DMin float64

	// DMax is the pessimistic upper bound: min(parent.DMax, Dist+|Rmax|).
	DMax float64
}

// itemHeap is a container/heap min-heap of Item ordered by DMin.
type itemHeap []Item

func (h itemHeap) Len() int            { return len(h) }
func (h itemHeap) Less(i, j int) bool  { return h[i].DMin < h[j].DMin }
func (h itemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(Item)) }
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// PQueue is the best-first search priority queue: a min-heap of pending
// clusters ordered by their optimistic distance lower bound. Its backing
// storage is pre-allocated to capacityHint so steady-state push/pop is
// allocation-free, keeping it cheap to allocate fresh per query.
type PQueue struct {
	items itemHeap
}

// NewPQueue creates an empty priority queue with backing storage
// pre-allocated for capacityHint pending items.
func NewPQueue(capacityHint int) *PQueue {
	return &PQueue{items: make(itemHeap, 0, capacityHint)}
}

// Push adds item to the queue.
func (q *PQueue) Push(item Item) {
	heap.Push(&q.items, item)
}

// Pop removes and returns the item with the smallest DMin.
func (q *PQueue) Pop() Item {
	return heap.Pop(&q.items).(Item)
}

// Empty reports whether the queue has no pending items.
func (q *PQueue) Empty() bool {
	return len(q.items) == 0
}

// Reset clears the queue while retaining its backing storage, so a
// per-thread PQueue can be reused across queries without reallocating.
func (q *PQueue) Reset() {
	q.items = q.items[:0]
}
