package geometry

import (
	"math"

	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

// Plane is the infinite object-space XY plane (Z=0), used for ground
// planes and other unbounded geometry that never appears inside a BVH
// leaf directly (its ObjectBound is infinite; callers rely on the scene
// graph's top-level list for unbounded primitives, per spec 4.5).
type Plane struct {
	base
}

func NewPlane() *Plane { return &Plane{} }

func (p *Plane) ObjectBound() rmath.BBox {
	inf := float32(math.Inf(1))
	return rmath.BBox{
		Min: rmath.Point3{X: -inf, Y: -inf, Z: 0},
		Max: rmath.Point3{X: inf, Y: inf, Z: 0},
	}
}

func (p *Plane) hitParam(ray rmath.Ray) (t float32, ok bool) {
	if absf(ray.Direction.Z) < 1e-9 {
		return 0, false
	}
	t = -ray.Origin.Z / ray.Direction.Z
	if t < ray.TMin || t > ray.TMax {
		return 0, false
	}
	return t, true
}

func (pl *Plane) Intersect(ray rmath.Ray) (*core.DifferentialGeometry, float32, bool) {
	t, ok := pl.hitParam(ray)
	if !ok {
		return nil, 0, false
	}
	hit := ray.At(t)
	n := rmath.Normal3{X: 0, Y: 0, Z: 1}
	dg := &core.DifferentialGeometry{
		Point:         hit,
		GeomNormal:    pl.faceForward(n),
		ShadingNormal: pl.faceForward(n),
		DPDU:          rmath.Vector{X: 1, Y: 0, Z: 0},
		DPDV:          rmath.Vector{X: 0, Y: 1, Z: 0},
		U:             hit.X,
		V:             hit.Y,
	}
	return dg, t, true
}

func (pl *Plane) IntersectP(ray rmath.Ray) bool {
	_, ok := pl.hitParam(ray)
	return ok
}

func (pl *Plane) SurfaceArea() float32 { return float32(math.Inf(1)) }

func (pl *Plane) Sample(float32, float32) (rmath.Point3, rmath.Normal3) {
	panic("geometry: Plane cannot be area-sampled (infinite extent)")
}

func (pl *Plane) Pdf(rmath.Point3) float32 { return 0 }
