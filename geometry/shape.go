// Package geometry implements the analytic and mesh primitives from spec
// 4.4: sphere, cylinder, cone, disk, plane and triangle meshes, each
// computing a DifferentialGeometry hit record in object space. Ray/AABB
// and ray/triangle math is grounded on the teacher engine's
// editor/raycast.go (Möller-Trumbore triangle test, slab-test AABB),
// generalized from a one-shot raycast helper into the full Shape contract
// the accelerator and scene graph build on.
package geometry

import (
	"math"

	"github.com/mrigankad/tracer/core"
	"github.com/mrigankad/tracer/rmath"
)

// Shape is implemented by every primitive in object space; the scene graph
// (spec 4.5) owns the object-to-world transform and converts hits back to
// its parent's frame.
type Shape interface {
	ObjectBound() rmath.BBox
	Intersect(ray rmath.Ray) (dg *core.DifferentialGeometry, tHit float32, hit bool)
	IntersectP(ray rmath.Ray) bool
	SurfaceArea() float32

	// Sample draws a point uniformly over the surface, for area-based
	// light sampling.
	Sample(u1, u2 float32) (p rmath.Point3, n rmath.Normal3)
	Pdf(p rmath.Point3) float32

	// CanSampleFromPoint reports whether SampleFromPoint/PdfFromPoint
	// implement the tighter solid-angle sampling strategy (spec 4.10);
	// shapes that cannot fall back to the uniform-area variants above.
	CanSampleFromPoint() bool
	SampleFromPoint(p rmath.Point3, u1, u2 float32) (rmath.Point3, rmath.Normal3)
	PdfFromPoint(p rmath.Point3, wi rmath.Vector) float32
}

// base carries ReverseOrientation and the default point-sampling methods
// for shapes that don't implement solid-angle sampling (CanSampleFromPoint
// false, SampleFromPoint panics, PdfFromPoint 0); shared by every Shape
// that embeds it. pdfFromAreaSample below converts a uniform-area sample's
// pdf (1/A) to its solid-angle equivalent.
type base struct {
	ReverseOrientation bool
}

func (b base) CanSampleFromPoint() bool { return false }

func (b base) SampleFromPoint(rmath.Point3, float32, float32) (rmath.Point3, rmath.Normal3) {
	panic("geometry: SampleFromPoint not supported by this shape")
}

func (b base) PdfFromPoint(rmath.Point3, rmath.Vector) float32 { return 0 }

func pdfFromAreaSample(p rmath.Point3, hitP rmath.Point3, n rmath.Normal3, wi rmath.Vector, area float32) float32 {
	distSqr := hitP.SubPoint(p).LengthSqr()
	cosTheta := absf(n.Dot(wi))
	if cosTheta < 1e-7 {
		return 0
	}
	return distSqr / (cosTheta * area)
}

func (n base) faceForward(geom rmath.Normal3) rmath.Normal3 {
	if n.ReverseOrientation {
		return geom.Negate()
	}
	return geom
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func sqrtf(x float32) float32 {
	if x < 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}
