package accel

import (
	"testing"

	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

// sphereStub is a minimal Primitive standing in for a scene graph node,
// avoiding a dependency on the geometry/scenegraph packages in this unit
// test.
type sphereStub struct {
	center rmath.Point3
	radius float32
}

func (s sphereStub) WorldBound() rmath.BBox {
	r := rmath.Vector{X: s.radius, Y: s.radius, Z: s.radius}
	return rmath.BBox{Min: s.center.Sub(r), Max: s.center.Add(r)}
}

func (s sphereStub) Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool) {
	oc := ray.Origin.SubPoint(s.center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.radius*s.radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil, 0, false
	}
	t := (-b - sqrtApprox(disc)) / (2 * a)
	if t < ray.TMin || t > ray.TMax {
		return nil, 0, false
	}
	return &core.DifferentialGeometry{Point: ray.At(t)}, t, true
}

func (s sphereStub) IntersectP(ray rmath.Ray) bool {
	_, _, ok := s.Intersect(ray)
	return ok
}

func sqrtApprox(x float32) float32 {
	if x <= 0 {
		return 0
	}
	guess := x
	for i := 0; i < 20; i++ {
		guess = 0.5 * (guess + x/guess)
	}
	return guess
}

func buildTestScene(n int) []Primitive {
	prims := make([]Primitive, n)
	for i := 0; i < n; i++ {
		prims[i] = sphereStub{center: rmath.Point3{X: float32(i) * 3}, radius: 1}
	}
	return prims
}

func TestBVHFindsClosestHit(t *testing.T) {
	prims := buildTestScene(10)
	bvh := Build(prims, SplitSAH, 4)

	ray := rmath.NewRay(rmath.Point3{X: 3, Z: -10}, rmath.Vector{Z: 1})
	dg, tHit, ok := bvh.Intersect(ray)
	if !ok {
		t.Fatal("expected hit")
	}
	if dg.Point.X < 2.9 || dg.Point.X > 3.1 {
		t.Errorf("hit point x = %v, want ~3", dg.Point.X)
	}
	if tHit < 8.9 || tHit > 9.1 {
		t.Errorf("tHit = %v, want ~9", tHit)
	}
}

func TestBVHMiss(t *testing.T) {
	prims := buildTestScene(5)
	bvh := Build(prims, SplitSAH, 4)
	ray := rmath.NewRay(rmath.Point3{X: 100, Z: -10}, rmath.Vector{Z: 1})
	if _, _, ok := bvh.Intersect(ray); ok {
		t.Errorf("expected miss")
	}
}

func TestBVHIntersectPShadow(t *testing.T) {
	prims := buildTestScene(5)
	bvh := Build(prims, SplitSAH, 4)
	ray := rmath.NewRay(rmath.Point3{Z: -10}, rmath.Vector{Z: 1})
	if !bvh.IntersectP(ray) {
		t.Errorf("expected shadow hit")
	}
}

func TestBVHEqualCountsAndMiddleSplits(t *testing.T) {
	for _, method := range []SplitMethod{SplitMiddle, SplitEqualCounts, SplitSAH} {
		prims := buildTestScene(20)
		bvh := Build(prims, method, 4)
		ray := rmath.NewRay(rmath.Point3{X: 15, Z: -10}, rmath.Vector{Z: 1})
		if _, _, ok := bvh.Intersect(ray); !ok {
			t.Errorf("method %v: expected hit on primitive 5", method)
		}
	}
}

// TestBVHDegenerateCentroidBoundsForcesSplit covers spec 4.3's exception
// to "degenerate centroid bounds means leaf": with more primitives than
// maxPrimsPerLeaf all sharing one centroid, Build must still split
// rather than dump every primitive into one oversized leaf.
func TestBVHDegenerateCentroidBoundsForcesSplit(t *testing.T) {
	const n = 10
	const maxPrimsPerLeaf = 4
	prims := make([]Primitive, n)
	for i := 0; i < n; i++ {
		prims[i] = sphereStub{center: rmath.Point3{}, radius: float32(i + 1)}
	}

	bvh := Build(prims, SplitSAH, maxPrimsPerLeaf)
	if len(bvh.nodes) == 1 {
		t.Fatalf("expected a degenerate-centroid node with %d prims (> maxPrimsPerLeaf=%d) to split, got a single leaf", n, maxPrimsPerLeaf)
	}
	for _, node := range bvh.nodes {
		if node.nPrims > maxPrimsPerLeaf {
			t.Errorf("leaf holds %d prims, want <= %d", node.nPrims, maxPrimsPerLeaf)
		}
	}
}

func TestBVHWorldBoundCoversAllPrimitives(t *testing.T) {
	prims := buildTestScene(8)
	bvh := Build(prims, SplitSAH, 4)
	wb := bvh.WorldBound()
	for _, p := range prims {
		pb := p.WorldBound()
		if wb.Union(pb) != wb {
			t.Errorf("world bound does not cover primitive bound %v", pb)
		}
	}
}
