package light

import (
	"math"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/geometry"
	"github.com/mrigankad/tracer/rmath"
)

// AreaLight turns an arbitrary Shape into an emitter with constant
// outgoing radiance over its surface, following original_source's
// AreaLight (historically sphere-only; generalized here to any Shape
// since every geometry primitive in this package already exposes
// Sample/Pdf, and Sphere additionally exposes the tighter solid-angle
// sampling strategy via CanSampleFromPoint).
type AreaLight struct {
	Shape      geometry.Shape
	Radiance   color.Color
	ToWorld    rmath.Transform
	OneSided   bool // if true, radiance is zero on the back (normal-negative) side
	samples    int
}

func NewAreaLight(shape geometry.Shape, emit color.Color, toWorld rmath.Transform, oneSided bool, nSamples int) *AreaLight {
	if nSamples < 1 {
		nSamples = 1
	}
	return &AreaLight{Shape: shape, Radiance: emit, ToWorld: toWorld, OneSided: oneSided, samples: nSamples}
}

func (a *AreaLight) radiance(n rmath.Normal3, w rmath.Vector) color.Color {
	if !a.OneSided || n.Dot(w) > 0 {
		return a.Radiance
	}
	return color.Black
}

func (a *AreaLight) SampleLi(at rmath.Point3, u1, u2 float32) (rmath.Vector, float32, color.Color, VisibilityTester) {
	localAt := a.ToWorld.Inverse().TransformPoint(at)

	var pLocal rmath.Point3
	var nLocal rmath.Normal3
	var pdf float32

	if a.Shape.CanSampleFromPoint() {
		pLocal, nLocal = a.Shape.SampleFromPoint(localAt, u1, u2)
		wiLocal := pLocal.SubPoint(localAt).Normalize()
		pdf = a.Shape.PdfFromPoint(localAt, wiLocal)
	} else {
		pLocal, nLocal = a.Shape.Sample(u1, u2)
		wiLocal := pLocal.SubPoint(localAt)
		distSqr := wiLocal.LengthSqr()
		if distSqr < 1e-12 {
			return rmath.Vector{}, 0, color.Black, VisibilityTester{}
		}
		wiLocal = wiLocal.Normalize()
		cosTheta := absf(nLocal.Dot(wiLocal))
		if cosTheta < 1e-7 {
			return rmath.Vector{}, 0, color.Black, VisibilityTester{}
		}
		pdf = distSqr / (cosTheta * a.Shape.SurfaceArea())
	}

	if pdf == 0 {
		return rmath.Vector{}, 0, color.Black, VisibilityTester{}
	}

	pWorld := a.ToWorld.TransformPoint(pLocal)
	nWorld := a.ToWorld.TransformNormal(nLocal).Normalize()
	wi := pWorld.SubPoint(at).Normalize()

	li := a.radiance(nWorld, wi.Negate())
	vt := NewVisibilityTester(at, pWorld, 0)
	return wi, pdf, li, vt
}

func (a *AreaLight) PdfLi(at rmath.Point3, wi rmath.Vector) float32 {
	localAt := a.ToWorld.Inverse().TransformPoint(at)
	localWi := a.ToWorld.Inverse().TransformVector(wi).Normalize()
	if a.Shape.CanSampleFromPoint() {
		return a.Shape.PdfFromPoint(localAt, localWi)
	}
	return 1 / a.Shape.SurfaceArea()
}

func (a *AreaLight) SampleEmission(u1, u2, u3, u4 float32) (rmath.Ray, rmath.Normal3, float32, float32, color.Color) {
	pLocal, nLocal := a.Shape.Sample(u1, u2)
	dirLocal := cosineSampleHemisphereLocal(nLocal, u3, u4)

	pWorld := a.ToWorld.TransformPoint(pLocal)
	nWorld := a.ToWorld.TransformNormal(nLocal).Normalize()
	dirWorld := a.ToWorld.TransformVector(dirLocal).Normalize()

	ray := rmath.NewRay(pWorld, dirWorld)
	pdfPos := 1 / a.Shape.SurfaceArea()
	pdfDir := absf(nWorld.Dot(dirWorld)) / math.Pi
	return ray, nWorld, pdfPos, pdfDir, a.radiance(nWorld, dirWorld)
}

func (a *AreaLight) EmissionPdf(ray rmath.Ray, n rmath.Normal3) (float32, float32) {
	pdfPos := 1 / a.Shape.SurfaceArea()
	pdfDir := absf(n.Dot(ray.Direction)) / math.Pi
	return pdfPos, pdfDir
}

func (a *AreaLight) Emit(ray rmath.Ray, n rmath.Normal3) color.Color {
	return a.radiance(n, ray.Direction.Negate())
}

func (a *AreaLight) Power() color.Color {
	area := a.Shape.SurfaceArea()
	scale := float32(math.Pi) * area
	if a.OneSided {
		return a.Radiance.Scale(scale)
	}
	return a.Radiance.Scale(2 * scale)
}

func (a *AreaLight) IsDelta() bool   { return false }
func (a *AreaLight) NumSamples() int { return a.samples }

// cosineSampleHemisphereLocal draws a cosine-weighted direction about n,
// building an orthonormal basis from n the same way BSDF does from a
// shading normal.
func cosineSampleHemisphereLocal(n rmath.Normal3, u1, u2 float32) rmath.Vector {
	ns := n.ToVector().Normalize()
	ss, ts := rmath.CoordinateSystem(ns)

	sx := 2*u1 - 1
	sy := 2*u2 - 1
	var r, theta float32
	if sx == 0 && sy == 0 {
		r, theta = 0, 0
	} else if absf(sx) > absf(sy) {
		r = sx
		theta = (math.Pi / 4) * (sy / sx)
	} else {
		r = sy
		theta = (math.Pi / 2) - (math.Pi/4)*(sx/sy)
	}
	x := r * float32(math.Cos(float64(theta)))
	y := r * float32(math.Sin(float64(theta)))
	z := sqrtf(maxf(0, 1-x*x-y*y))

	return ss.Mul(x).Add(ts.Mul(y)).Add(ns.Mul(z))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func sqrtf(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}
