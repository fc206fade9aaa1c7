package tree

import "github.com/atria-go/atria/domain"

// Tree is a built, read-only ATRIA cluster tree. It never copies the
// underlying point set; it only holds a reference to it.
type Tree struct {
	Root   *Node
	Perm   PermutationTable
	Points domain.PointSet
	N, D   int
}

// Info walks the tree once and reports its shape for introspection: depth,
// node count, leaf count, and average leaf size.
func (t *Tree) Info() domain.TreeInfo {
	if t == nil || t.Root == nil {
		return domain.TreeInfo{}
	}

	var (
		nodeCount, leafCount, leafPointSum, maxDepth int
	)

	type frame struct {
		node  *Node
		depth int
	}
	stack := []frame{{t.Root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nodeCount++
		if f.depth > maxDepth {
			maxDepth = f.depth
		}
		if f.node.IsLeaf() {
			leafCount++
			leafPointSum += f.node.Length
			continue
		}
		if f.node.Left != nil {
			stack = append(stack, frame{f.node.Left, f.depth + 1})
		}
		if f.node.Right != nil {
			stack = append(stack, frame{f.node.Right, f.depth + 1})
		}
	}

	info := domain.TreeInfo{
		Depth:     maxDepth,
		NodeCount: nodeCount,
		LeafCount: leafCount,
	}
	if leafCount > 0 {
		info.AverageLeafSize = float64(leafPointSum) / float64(leafCount)
	}
	return info
}
