package tree

// Node is a cluster in the ATRIA tree. Leaf status is carried as an
// explicit boolean rather than folded into the sign of Rmax, since
// entangling two semantics in one numeric field makes the zero-radius leaf
// case ambiguous. Rmax is always stored as a non-negative magnitude.
type Node struct {
	// Center is the point index of this cluster's representative point.
	Center int

	// Rmax is the maximum distance from Center to any point in this
	// cluster's slice.
	Rmax float64

	// Leaf marks a terminal cluster: true when this node was never
	// subdivided (either because its slice shrank to MinPoints or fewer,
	// or because subdivision degenerated).
	Leaf bool

	// GMin is the minimum, over all points that were partitioned between
	// this node and its sibling, of |d(point, this.Center) -
	// d(point, sibling.Center)|. Zero for the root, which has no sibling.
	GMin float64

	// Start, Length describe this cluster's slice of the permutation
	// table: positions [Start, Start+Length).
	Start, Length int

	// Left, Right are the child clusters. Both nil for a leaf.
	Left, Right *Node
}

// IsLeaf reports whether n is a terminal cluster.
func (n *Node) IsLeaf() bool {
	return n == nil || n.Leaf
}
