// Package tree implements the ATRIA cluster tree: the permutation table,
// cluster nodes, and the farthest-point partitioning builder. It adopts
// the "boundary" layout convention: a cluster's two child centers are
// placed at the two ends of its slice and excluded from both children's
// slices, so no point index ever appears in more than one leaf's slice and
// the result table never needs duplicate suppression.
package tree

// Entry is a single permutation-table slot: a point index paired with its
// distance to the center of the deepest cluster whose slice currently
// contains this position.
type Entry struct {
	Index    int
	Distance float64
}

// PermutationTable is the length-N dense layout array owned by the tree.
// It is mutated only during construction (by Builder) and is read-only for
// the lifetime of the built Tree.
type PermutationTable []Entry
