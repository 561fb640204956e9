// Package accel implements the bounding volume hierarchy from spec 4.3: an
// SAH top-down build, DFS flattening into a cache-friendly array, and a
// stackless traversal using a fixed-depth index stack. Grounded on the
// teacher engine's editor/raycast.go broad-phase AABB test
// (mrigankad-gorenderengine/editor/raycast.go rayAABBIntersect),
// generalized from a single linear scan over scene nodes into a proper
// hierarchy since a path tracer casts orders of magnitude more rays than
// a one-shot mouse-pick raycast.
package accel

import (
	"sort"

	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

// Primitive is anything the BVH can store a leaf reference to: a single
// shape-plus-material pairing, or a scene graph node that recurses further.
type Primitive interface {
	WorldBound() rmath.BBox
	Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool)
	IntersectP(ray rmath.Ray) bool
}

// SplitMethod selects how each internal build step partitions primitives.
type SplitMethod int

const (
	SplitSAH SplitMethod = iota
	SplitMiddle
	SplitEqualCounts
)

const (
	sahBuckets       = 12
	traversalCost    = 0.125
	intersectionCost = 1.0
)

// BVH is an immutable acceleration structure built once per scene graph
// rebuild and then shared read-only across every render worker.
type BVH struct {
	prims []Primitive
	nodes []linearNode
}

type linearNode struct {
	bounds       rmath.BBox
	primIndex    int // index into prims, leaves only
	secondChild  int // index into nodes, interior only
	nPrims       int // 0 for interior nodes
	axis         int
}

type buildInfo struct {
	primIndex int
	bounds    rmath.BBox
	centroid  rmath.Point3
}

type buildNode struct {
	bounds             rmath.BBox
	children           [2]*buildNode
	splitAxis          int
	firstPrimOffset    int
	nPrims             int
}

func (n *buildNode) initLeaf(first, count int, bounds rmath.BBox) {
	n.firstPrimOffset = first
	n.nPrims = count
	n.bounds = bounds
}

func (n *buildNode) initInterior(axis int, c0, c1 *buildNode) {
	n.children[0], n.children[1] = c0, c1
	n.bounds = c0.bounds.Union(c1.bounds)
	n.splitAxis = axis
	n.nPrims = 0
}

// Build constructs a BVH over prims using the given split strategy (spec
// 4.3 names Middle, Equal-counts and SAH with a 12-bucket cost model).
// maxPrimsPerLeaf caps how many primitives a leaf may hold (spec 4.3:
// at most 256).
func Build(prims []Primitive, method SplitMethod, maxPrimsPerLeaf int) *BVH {
	if len(prims) == 0 {
		return &BVH{}
	}

	buildData := make([]buildInfo, len(prims))
	for i, p := range prims {
		b := p.WorldBound()
		buildData[i] = buildInfo{primIndex: i, bounds: b, centroid: b.Min.Lerp(b.Max, 0.5)}
	}

	orderedPrims := make([]Primitive, 0, len(prims))
	var totalNodes int
	root := recursiveBuild(buildData, 0, len(buildData), &totalNodes, prims, &orderedPrims, method, maxPrimsPerLeaf)

	bvh := &BVH{prims: orderedPrims, nodes: make([]linearNode, totalNodes)}
	var offset int
	flatten(root, bvh.nodes, &offset)
	return bvh
}

func recursiveBuild(buildData []buildInfo, start, end int, totalNodes *int, prims []Primitive, ordered *[]Primitive, method SplitMethod, maxPrimsPerLeaf int) *buildNode {
	*totalNodes++
	node := &buildNode{}

	bounds := rmath.BBoxEmpty()
	for i := start; i < end; i++ {
		bounds = bounds.Union(buildData[i].bounds)
	}

	nPrims := end - start
	makeLeaf := func() *buildNode {
		firstOffset := len(*ordered)
		for i := start; i < end; i++ {
			*ordered = append(*ordered, prims[buildData[i].primIndex])
		}
		node.initLeaf(firstOffset, nPrims, bounds)
		return node
	}

	if nPrims == 1 {
		return makeLeaf()
	}

	centroidBounds := rmath.BBoxEmpty()
	for i := start; i < end; i++ {
		centroidBounds = centroidBounds.UnionPoint(buildData[i].centroid)
	}
	axis := centroidBounds.LongestAxis()
	mid := (start + end) / 2
	if centroidBounds.Max.Component(axis)-centroidBounds.Min.Component(axis) < 1e-9 {
		// Centroids coincide on every axis: SAH and Middle have nothing to
		// split on. Leaf only if the remaining run already fits a leaf;
		// otherwise force an equal-count split so a node can't grow past
		// maxPrimsPerLeaf just because its primitives happen to overlap.
		if nPrims < maxPrimsPerLeaf {
			return makeLeaf()
		}
		sortByAxis(buildData, start, end, axis)
		c0 := recursiveBuild(buildData, start, mid, totalNodes, prims, ordered, method, maxPrimsPerLeaf)
		c1 := recursiveBuild(buildData, mid, end, totalNodes, prims, ordered, method, maxPrimsPerLeaf)
		node.initInterior(axis, c0, c1)
		return node
	}

	switch method {
	case SplitMiddle:
		pivot := (centroidBounds.Min.Component(axis) + centroidBounds.Max.Component(axis)) / 2
		mid = partitionByPivot(buildData, start, end, axis, pivot)
		if mid == start || mid == end {
			mid = (start + end) / 2
			sortByAxis(buildData, start, end, axis)
		}
	case SplitEqualCounts:
		sortByAxis(buildData, start, end, axis)
	default: // SplitSAH
		if nPrims <= 4 {
			sortByAxis(buildData, start, end, axis)
			break
		}
		var ok bool
		mid, ok = sahSplit(buildData, start, end, axis, centroidBounds, bounds, maxPrimsPerLeaf)
		if !ok {
			return makeLeaf()
		}
	}

	c0 := recursiveBuild(buildData, start, mid, totalNodes, prims, ordered, method, maxPrimsPerLeaf)
	c1 := recursiveBuild(buildData, mid, end, totalNodes, prims, ordered, method, maxPrimsPerLeaf)
	node.initInterior(axis, c0, c1)
	return node
}

func sortByAxis(buildData []buildInfo, start, end, axis int) {
	slice := buildData[start:end]
	sort.Slice(slice, func(i, j int) bool {
		return slice[i].centroid.Component(axis) < slice[j].centroid.Component(axis)
	})
}

func partitionByPivot(buildData []buildInfo, start, end, axis int, pivot float32) int {
	i, j := start, end-1
	for i <= j {
		for i <= j && buildData[i].centroid.Component(axis) < pivot {
			i++
		}
		for i <= j && buildData[j].centroid.Component(axis) >= pivot {
			j--
		}
		if i < j {
			buildData[i], buildData[j] = buildData[j], buildData[i]
			i++
			j--
		}
	}
	return i
}

// sahSplit buckets primitives by centroid along axis into sahBuckets
// buckets, evaluates the surface-area-heuristic cost of every bucket
// boundary and returns the partition index for the cheapest split, per
// spec 4.3's cost formula 0.125 + (N_L*A_L + N_R*A_R)/A_node.
func sahSplit(buildData []buildInfo, start, end, axis int, centroidBounds, nodeBounds rmath.BBox, maxPrimsPerLeaf int) (int, bool) {
	type bucket struct {
		count  int
		bounds rmath.BBox
	}
	buckets := make([]bucket, sahBuckets)
	for i := range buckets {
		buckets[i].bounds = rmath.BBoxEmpty()
	}

	bucketFor := func(c rmath.Point3) int {
		b := int(float32(sahBuckets) * centroidBounds.Offset(c).Component(axis))
		if b == sahBuckets {
			b = sahBuckets - 1
		}
		if b < 0 {
			b = 0
		}
		return b
	}

	for i := start; i < end; i++ {
		b := bucketFor(buildData[i].centroid)
		buckets[b].count++
		buckets[b].bounds = buckets[b].bounds.Union(buildData[i].bounds)
	}

	cost := make([]float32, sahBuckets-1)
	nodeArea := nodeBounds.SurfaceArea()
	for i := 0; i < sahBuckets-1; i++ {
		b0, b1 := rmath.BBoxEmpty(), rmath.BBoxEmpty()
		count0, count1 := 0, 0
		for j := 0; j <= i; j++ {
			b0 = b0.Union(buckets[j].bounds)
			count0 += buckets[j].count
		}
		for j := i + 1; j < sahBuckets; j++ {
			b1 = b1.Union(buckets[j].bounds)
			count1 += buckets[j].count
		}
		if nodeArea <= 0 {
			cost[i] = 1e30
			continue
		}
		cost[i] = traversalCost + intersectionCost*(float32(count0)*b0.SurfaceArea()+float32(count1)*b1.SurfaceArea())/nodeArea
	}

	minCost := cost[0]
	minIdx := 0
	for i := 1; i < len(cost); i++ {
		if cost[i] < minCost {
			minCost, minIdx = cost[i], i
		}
	}

	leafCost := float32(end - start)
	if (end-start) > maxPrimsPerLeaf || minCost < leafCost {
		mid := partitionByBucket(buildData, start, end, axis, centroidBounds, minIdx)
		if mid > start && mid < end {
			return mid, true
		}
	}
	return 0, false
}

func partitionByBucket(buildData []buildInfo, start, end, axis int, centroidBounds rmath.BBox, splitBucket int) int {
	i, j := start, end-1
	bucketFor := func(c rmath.Point3) int {
		b := int(float32(sahBuckets) * centroidBounds.Offset(c).Component(axis))
		if b == sahBuckets {
			b = sahBuckets - 1
		}
		return b
	}
	for i <= j {
		for i <= j && bucketFor(buildData[i].centroid) <= splitBucket {
			i++
		}
		for i <= j && bucketFor(buildData[j].centroid) > splitBucket {
			j--
		}
		if i < j {
			buildData[i], buildData[j] = buildData[j], buildData[i]
			i++
			j--
		}
	}
	return i
}

// flatten linearizes the build tree in DFS order so children of an
// interior node are contiguous with it, allowing traversal to compute a
// child's array index without pointer chasing.
func flatten(node *buildNode, nodes []linearNode, offset *int) int {
	myOffset := *offset
	*offset++
	ln := &nodes[myOffset]
	ln.bounds = node.bounds

	if node.nPrims > 0 {
		ln.primIndex = node.firstPrimOffset
		ln.nPrims = node.nPrims
		return myOffset
	}

	ln.axis = node.splitAxis
	flatten(node.children[0], nodes, offset)
	ln.secondChild = flatten(node.children[1], nodes, offset)
	return myOffset
}

// Intersect walks the flattened hierarchy with a fixed-depth index stack
// (spec 4.3: no recursion, near-child-first ordering by the ray's
// direction sign along each node's split axis).
func (h *BVH) Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool) {
	if len(h.nodes) == 0 {
		return nil, 0, false
	}
	invDir, negDir := rmath.InvDir(ray.Direction)

	var bestDG *core.DifferentialGeometry
	var bestT float32
	hitAny := false

	var stack [64]int
	stackPtr := 0
	nodeIdx := 0
	testRay := ray

	for {
		node := &h.nodes[nodeIdx]
		if _, _, hit := node.bounds.IntersectP(testRay, invDir, negDir); hit {
			if node.nPrims > 0 {
				for i := 0; i < node.nPrims; i++ {
					p := h.prims[node.primIndex+i]
					if dg, t, ok := p.Intersect(testRay); ok {
						hitAny = true
						bestDG, bestT = dg, t
						testRay.TMax = t
					}
				}
				if stackPtr == 0 {
					break
				}
				stackPtr--
				nodeIdx = stack[stackPtr]
			} else {
				if negDir[node.axis] {
					stack[stackPtr] = nodeIdx + 1
					stackPtr++
					nodeIdx = node.secondChild
				} else {
					stack[stackPtr] = node.secondChild
					stackPtr++
					nodeIdx = nodeIdx + 1
				}
			}
		} else {
			if stackPtr == 0 {
				break
			}
			stackPtr--
			nodeIdx = stack[stackPtr]
		}
	}

	return bestDG, bestT, hitAny
}

// IntersectP is the shadow-ray variant: stops at the first hit.
func (h *BVH) IntersectP(ray rmath.Ray) bool {
	if len(h.nodes) == 0 {
		return false
	}
	invDir, negDir := rmath.InvDir(ray.Direction)

	var stack [64]int
	stackPtr := 0
	nodeIdx := 0

	for {
		node := &h.nodes[nodeIdx]
		if _, _, hit := node.bounds.IntersectP(ray, invDir, negDir); hit {
			if node.nPrims > 0 {
				for i := 0; i < node.nPrims; i++ {
					if h.prims[node.primIndex+i].IntersectP(ray) {
						return true
					}
				}
				if stackPtr == 0 {
					return false
				}
				stackPtr--
				nodeIdx = stack[stackPtr]
			} else {
				if negDir[node.axis] {
					stack[stackPtr] = nodeIdx + 1
					stackPtr++
					nodeIdx = node.secondChild
				} else {
					stack[stackPtr] = node.secondChild
					stackPtr++
					nodeIdx = nodeIdx + 1
				}
			}
		} else {
			if stackPtr == 0 {
				return false
			}
			stackPtr--
			nodeIdx = stack[stackPtr]
		}
	}
}

// WorldBound returns the bounds of the whole hierarchy, letting a BVH
// itself be used as a Primitive (for nested scene-graph instancing).
func (h *BVH) WorldBound() rmath.BBox {
	if len(h.nodes) == 0 {
		return rmath.BBoxEmpty()
	}
	return h.nodes[0].bounds
}
