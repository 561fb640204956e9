// Package light implements the light sources from spec 4.10: point
// lights, area lights over any geometry.Shape, and (supplemented from
// original_source's AmbientLight) a constant-radiance ambient term.
// Grounded on original_source/include/lights/light.h's sample/pdf/power
// contract; the teacher engine has no lighting model beyond GPU uniform
// buffers, so this package's shape follows the original C++ base class
// translated into an idiomatic Go interface.
package light

import (
	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/rmath"
)

// Occluder is the shadow-ray query surface the top-level accelerator
// provides; kept minimal so this package doesn't import accel/scenegraph.
type Occluder interface {
	IntersectP(ray rmath.Ray) bool
}

// VisibilityTester defers the shadow ray trace until the caller has
// decided the sampled light's radiance is worth testing, matching
// original_source's OcclusionTester.
type VisibilityTester struct {
	P0, P1 rmath.Point3
	Time   float32
}

func NewVisibilityTester(p0, p1 rmath.Point3, time float32) VisibilityTester {
	return VisibilityTester{P0: p0, P1: p1, Time: time}
}

// Unoccluded traces a shadow ray from P0 to P1, shortened on both ends to
// avoid self-intersection.
func (vt VisibilityTester) Unoccluded(o Occluder) bool {
	d := vt.P1.SubPoint(vt.P0)
	dist := d.Length()
	if dist < 1e-6 {
		return true
	}
	dir := d.Div(dist)
	ray := rmath.Ray{Origin: vt.P0, Direction: dir, TMin: 1e-3, TMax: dist * (1 - 1e-3), Time: vt.Time}
	return !o.IntersectP(ray)
}

// Light is implemented by every light source. SampleLi supports the
// next-event-estimation path (spec 4.11's direct-lighting term);
// SampleEmission/EmissionPdf support the light subpath generation used by
// the bidirectional integrator and the photon-style volume emission pass.
type Light interface {
	// SampleLi returns the incident radiance arriving at p along the
	// sampled direction wi, that direction's pdf (solid angle measure),
	// and a VisibilityTester for the shadow ray.
	SampleLi(p rmath.Point3, u1, u2 float32) (wi rmath.Vector, pdf float32, li color.Color, vt VisibilityTester)
	PdfLi(p rmath.Point3, wi rmath.Vector) float32

	// SampleEmission draws a full emitted ray from the light's surface.
	SampleEmission(u1, u2, u3, u4 float32) (ray rmath.Ray, nLight rmath.Normal3, pdfPos, pdfDir float32, le color.Color)
	EmissionPdf(ray rmath.Ray, n rmath.Normal3) (pdfPos, pdfDir float32)

	// Emit returns the radiance emitted toward -ray.Direction from a ray
	// that directly struck the light's geometry (area lights only;
	// delta lights return black since they have no area to hit).
	Emit(ray rmath.Ray, n rmath.Normal3) color.Color

	Power() color.Color
	IsDelta() bool
	NumSamples() int
}
