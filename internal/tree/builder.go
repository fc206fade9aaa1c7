package tree

import (
	"math"
	"math/rand"

	"github.com/atria-go/atria/domain"
)

// defaultRNGSeed is used when BuildConfig.RNGSeed is nil, so that
// construction is deterministic even for callers who never configured a
// seed explicitly.
const defaultRNGSeed int64 = 1

// Builder constructs a cluster Tree by recursive farthest-point
// partitioning. Construction is iterative (a heap-allocated work stack),
// never recursive, so it cannot overflow the call stack on pathological
// inputs.
type Builder struct {
	points    domain.PointSet
	minPoints int
	rng       *rand.Rand
}

// NewBuilder creates a Builder for points with the given configuration. It
// returns a configuration error if the point set is empty or MinPoints < 1.
func NewBuilder(points domain.PointSet, cfg domain.BuildConfig) (*Builder, error) {
	n, _ := points.Size()
	if n < 1 {
		return nil, domain.ErrEmptyPointSet
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := defaultRNGSeed
	if cfg.RNGSeed != nil {
		seed = *cfg.RNGSeed
	}

	return &Builder{
		points:    points,
		minPoints: cfg.MinPoints,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// Build runs construction to completion and returns the finished,
// read-only Tree. Construction never fails once the Builder itself was
// constructed successfully: degenerate geometry and metric anomalies are
// absorbed locally by collapsing the affected cluster into a leaf.
func (b *Builder) Build() *Tree {
	n, d := b.points.Size()
	perm := make(PermutationTable, n)
	for i := 0; i < n; i++ {
		perm[i] = Entry{Index: i}
	}

	if n == 1 {
		root := &Node{Center: perm[0].Index, Leaf: true, Start: 0, Length: 0}
		return &Tree{Root: root, Perm: perm, Points: b.points, N: n, D: d}
	}

	// Pick the root center uniformly over [0, n) and place it at position
	// 0. The remaining n-1 positions hold every other point, each already
	// carrying its distance to the root center.
	rootPos := b.rng.Intn(n)
	perm[0], perm[rootPos] = perm[rootPos], perm[0]
	rootCenter := perm[0].Index

	var rootMax float64
	for p := 1; p < n; p++ {
		dist := b.points.Distance(perm[p].Index, rootCenter)
		perm[p].Distance = dist
		if dist > rootMax {
			rootMax = dist
		}
	}

	root := &Node{Center: rootCenter, Rmax: rootMax, Start: 1, Length: n - 1}

	type frame struct {
		node *Node
	}
	stack := []frame{{root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node.Length <= b.minPoints {
			f.node.Leaf = true
			continue
		}

		left, right, ok := b.subdivide(perm, f.node)
		if !ok {
			f.node.Leaf = true
			continue
		}

		f.node.Left = left
		f.node.Right = right
		stack = append(stack, frame{left}, frame{right})
	}

	return &Tree{Root: root, Perm: perm, Points: b.points, N: n, D: d}
}

// subdivide partitions cluster c's slice [s, s+len) into a left and right
// child. On entry, perm[p].Distance == d(perm[p].Index, c.Center) for every
// p in the slice. It returns ok == false when the slice degenerates (every
// point coincides with c.Center), in which case the caller must mark c a
// leaf instead.
func (b *Builder) subdivide(perm PermutationTable, c *Node) (left, right *Node, ok bool) {
	s, length := c.Start, c.Length

	// Step 1: select the right center (farthest point from c.Center).
	rightPos := s
	rightMax := perm[s].Distance
	for p := s + 1; p < s+length; p++ {
		if perm[p].Distance > rightMax {
			rightMax = perm[p].Distance
			rightPos = p
		}
	}
	if rightMax == 0 {
		return nil, nil, false
	}
	last := s + length - 1
	perm[rightPos], perm[last] = perm[last], perm[rightPos]
	rightCenter := perm[last].Index

	// Step 2: compute distance-to-right-center for everything but the new
	// right center, and select the left center (farthest from R).
	leftPos := s
	leftMax := -1.0
	for p := s; p < last; p++ {
		d := b.points.Distance(perm[p].Index, rightCenter)
		perm[p].Distance = d
		if d > leftMax {
			leftMax = d
			leftPos = p
		}
	}
	perm[s], perm[leftPos] = perm[leftPos], perm[s]
	leftCenter := perm[s].Index

	// Step 3: dual-pointer sweep over the interior [s+1, last-1],
	// classifying each point by nearest center. The distance to the right
	// center is read from the stored Step 2 value, never recomputed; the
	// distance to the left center is computed on each classification, so a
	// right-classified point at i is recomputed when j moves past another
	// right-classified point.
	i, j := s+1, last-1
	var lMax, rMax float64
	gMin := math.Inf(1)

	classifyAtI := func() (isLeft bool, dLeft, dRight float64) {
		dRight = perm[i].Distance
		dLeft = b.points.Distance(perm[i].Index, leftCenter)
		return dLeft <= dRight, dLeft, dRight
	}
	classifyAtJ := func() (isLeft bool, dLeft, dRight float64) {
		dRight = perm[j].Distance
		dLeft = b.points.Distance(perm[j].Index, leftCenter)
		return dLeft <= dRight, dLeft, dRight
	}

	for i <= j {
		isLeft, dLeft, dRight := classifyAtI()
		if gap := math.Abs(dLeft - dRight); gap < gMin {
			gMin = gap
		}
		if isLeft {
			perm[i].Distance = dLeft
			if dLeft > lMax {
				lMax = dLeft
			}
			i++
			continue
		}
		if dRight > rMax {
			rMax = dRight
		}
		if i == j {
			// At the i==j boundary there is no partner left to swap
			// with. The point already classified right and its stored
			// distance is already dRight, so split must stay at i (not
			// i+1) to leave it in right's slice.
			break
		}

		jIsLeft, jdLeft, jdRight := classifyAtJ()
		if gap := math.Abs(jdLeft - jdRight); gap < gMin {
			gMin = gap
		}
		if jIsLeft {
			perm[i], perm[j] = perm[j], perm[i]
			perm[i].Distance = jdLeft
			if jdLeft > lMax {
				lMax = jdLeft
			}
			i++
			j--
			continue
		}
		if jdRight > rMax {
			rMax = jdRight
		}
		j--
	}

	if math.IsInf(gMin, 1) {
		// No interior points at all (length == 2): no gap to report.
		gMin = 0
	}

	split := i
	left = &Node{
		Center: leftCenter,
		Rmax:   lMax,
		GMin:   gMin,
		Start:  s + 1,
		Length: split - (s + 1),
	}
	right = &Node{
		Center: rightCenter,
		Rmax:   rMax,
		GMin:   gMin,
		Start:  split,
		Length: last - split,
	}
	return left, right, true
}
